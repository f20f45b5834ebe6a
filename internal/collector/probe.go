// Package collector gathers the hardware description of the local machine and
// submits it to the inventory API.
package collector

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"inventario-hardware/internal/models"
)

const gib = 1 << 30

// Snapshot is what the machine reports about itself. The person-related fields
// of a submission come from the operator, not from the probe.
type Snapshot struct {
	NomeDispositivo string
	UsuarioLogado   string
	Processador     string
	Disco           string
	RAM             string
	Monitores       models.Monitores
}

// Prober reads hardware facts through gopsutil and DRM sysfs
type Prober struct {
	DRMRoot string
	Logger  *zap.Logger
}

func NewProber(logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{DRMRoot: "/sys/class/drm", Logger: logger}
}

// Collect never fails on a single probe; a missing fact is left blank and logged
func (p *Prober) Collect(ctx context.Context) Snapshot {
	var s Snapshot

	if h, err := host.InfoWithContext(ctx); err == nil && h.Hostname != "" {
		s.NomeDispositivo = h.Hostname
	} else if name, err := os.Hostname(); err == nil {
		s.NomeDispositivo = name
	}

	if u, err := user.Current(); err == nil {
		s.UsuarioLogado = u.Username
	} else {
		p.Logger.Warn("current user unavailable", zap.Error(err))
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		logical, _ := cpu.CountsWithContext(ctx, true)
		s.Processador = describeCPU(infos[0], logical)
	} else {
		p.Logger.Warn("cpu probe failed", zap.Error(err))
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.RAM = formatGiB(vm.Total)
	} else {
		p.Logger.Warn("memory probe failed", zap.Error(err))
	}

	if parts, err := disk.PartitionsWithContext(ctx, false); err == nil {
		s.Disco = p.describeDisks(ctx, parts)
	} else {
		p.Logger.Warn("disk probe failed", zap.Error(err))
	}

	monitores, err := ReadMonitors(p.DRMRoot)
	if err != nil {
		p.Logger.Warn("monitor probe failed", zap.Error(err))
	}
	if monitores == nil {
		monitores = models.Monitores{}
	}
	s.Monitores = monitores

	return s
}

func describeCPU(info cpu.InfoStat, logical int) string {
	model := strings.TrimSpace(info.ModelName)
	if model == "" {
		model = strings.TrimSpace(info.VendorID)
	}
	if logical > 0 {
		return fmt.Sprintf("%s, %d threads", model, logical)
	}
	return model
}

// describeDisks lists each device once, sized by its largest mounted partition
func (p *Prober) describeDisks(ctx context.Context, parts []disk.PartitionStat) string {
	seen := map[string]bool{}
	var out []string
	for _, part := range parts {
		if seen[part.Device] {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil || usage.Total == 0 {
			p.Logger.Debug("skipping partition", zap.String("device", part.Device), zap.Error(err))
			continue
		}
		seen[part.Device] = true
		out = append(out, fmt.Sprintf("%s: %s", part.Device, formatGiB(usage.Total)))
	}
	return strings.Join(out, ", ")
}

func formatGiB(bytes uint64) string {
	return fmt.Sprintf("%.1f GB", float64(bytes)/gib)
}
