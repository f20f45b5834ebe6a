package collector

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"inventario-hardware/internal/models"
)

const edidBlockSize = 128

var edidHeader = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

var (
	ErrEDIDTooShort = errors.New("edid: block shorter than 128 bytes")
	ErrEDIDHeader   = errors.New("edid: bad header")
	ErrEDIDChecksum = errors.New("edid: checksum mismatch")
)

// vendors maps common PNP manufacturer ids to the brand printed on the bezel
var vendors = map[string]string{
	"ACR": "Acer",
	"AOC": "AOC",
	"AUS": "ASUS",
	"BNQ": "BenQ",
	"DEL": "Dell",
	"GSM": "LG",
	"HWP": "HP",
	"LEN": "Lenovo",
	"PHL": "Philips",
	"SAM": "Samsung",
	"SNY": "Sony",
	"VSC": "ViewSonic",
}

// ParseEDID decodes the base block of an EDID blob into a monitor description
func ParseEDID(b []byte) (models.MonitorInfo, error) {
	if len(b) < edidBlockSize {
		return models.MonitorInfo{}, ErrEDIDTooShort
	}
	b = b[:edidBlockSize]
	if !bytes.Equal(b[:8], edidHeader) {
		return models.MonitorInfo{}, ErrEDIDHeader
	}
	var sum byte
	for _, c := range b {
		sum += c
	}
	if sum != 0 {
		return models.MonitorInfo{}, ErrEDIDChecksum
	}

	pnp := pnpID(b[8], b[9])
	info := models.MonitorInfo{Marca: pnp}
	if brand, ok := vendors[pnp]; ok {
		info.Marca = brand
	}

	info.Modelo = displayName(b)
	if info.Modelo == "" {
		info.Modelo = fmt.Sprintf("%s%04X", pnp, uint16(b[10])|uint16(b[11])<<8)
	}

	if w, h := float64(b[21]), float64(b[22]); w > 0 && h > 0 {
		inches := math.Sqrt(w*w+h*h) / 2.54
		info.Tamanho = fmt.Sprintf("%.1f\"", inches)
	}
	return info, nil
}

// pnpID unpacks the three 5-bit letters stored big-endian in bytes 8 and 9
func pnpID(hi, lo byte) string {
	v := uint16(hi)<<8 | uint16(lo)
	letters := []byte{
		byte(v>>10&0x1f) + 'A' - 1,
		byte(v>>5&0x1f) + 'A' - 1,
		byte(v&0x1f) + 'A' - 1,
	}
	return string(letters)
}

// displayName returns the text of the 0xFC monitor name descriptor, if any
func displayName(b []byte) string {
	for off := 54; off+18 <= edidBlockSize; off += 18 {
		d := b[off : off+18]
		if d[0] != 0 || d[1] != 0 || d[3] != 0xfc {
			continue
		}
		text := d[5:]
		if i := bytes.IndexByte(text, 0x0a); i >= 0 {
			text = text[:i]
		}
		return strings.TrimSpace(string(text))
	}
	return ""
}

// ReadMonitors parses every connected output's EDID under a DRM sysfs root
// such as /sys/class/drm. Outputs without a readable, valid EDID are skipped.
func ReadMonitors(root string) (models.Monitores, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*", "edid"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	monitores := models.Monitores{}
	for _, p := range paths {
		status, err := os.ReadFile(filepath.Join(filepath.Dir(p), "status"))
		if err == nil && strings.TrimSpace(string(status)) != "connected" {
			continue
		}
		raw, err := os.ReadFile(p)
		if err != nil || len(raw) == 0 {
			continue
		}
		info, err := ParseEDID(raw)
		if err != nil {
			continue
		}
		monitores = append(monitores, info)
	}
	return monitores, nil
}
