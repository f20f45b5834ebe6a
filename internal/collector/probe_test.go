package collector

import (
	"context"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/stretchr/testify/assert"
)

func TestDescribeCPU(t *testing.T) {
	assert.Equal(t, "Intel(R) Core(TM) i5-8250U CPU @ 1.60GHz, 8 threads",
		describeCPU(cpu.InfoStat{ModelName: " Intel(R) Core(TM) i5-8250U CPU @ 1.60GHz "}, 8))
	assert.Equal(t, "GenuineIntel", describeCPU(cpu.InfoStat{VendorID: "GenuineIntel"}, 0))
}

func TestFormatGiB(t *testing.T) {
	assert.Equal(t, "8.0 GB", formatGiB(8*gib))
	assert.Equal(t, "0.5 GB", formatGiB(gib/2))
}

func TestCollectLocalMachine(t *testing.T) {
	p := NewProber(nil)
	p.DRMRoot = t.TempDir()

	snap := p.Collect(context.Background())
	assert.NotEmpty(t, snap.NomeDispositivo)
	assert.NotNil(t, snap.Monitores)
	assert.Empty(t, snap.Monitores)
}
