package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-hardware/internal/models"
)

// buildEDID assembles a minimal valid base block
func buildEDID(pnp string, product uint16, widthCM, heightCM byte, name string) []byte {
	b := make([]byte, edidBlockSize)
	copy(b, edidHeader)

	v := uint16(pnp[0]-'A'+1)<<10 | uint16(pnp[1]-'A'+1)<<5 | uint16(pnp[2]-'A'+1)
	b[8], b[9] = byte(v>>8), byte(v)
	b[10], b[11] = byte(product), byte(product>>8)
	b[21], b[22] = widthCM, heightCM

	if name != "" {
		d := b[72:90]
		d[3] = 0xfc
		text := d[5:]
		for i := range text {
			text[i] = 0x20
		}
		n := copy(text, name)
		if n < len(text) {
			text[n] = 0x0a
		}
	}

	var sum byte
	for _, c := range b[:127] {
		sum += c
	}
	b[127] = -sum
	return b
}

func TestParseEDID(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want models.MonitorInfo
	}{
		{
			name: "named LG",
			blob: buildEDID("GSM", 0x5b7f, 53, 30, "24ML600"),
			want: models.MonitorInfo{Marca: "LG", Modelo: "24ML600", Tamanho: "24.0\""},
		},
		{
			name: "unknown vendor without name descriptor",
			blob: buildEDID("XYZ", 0x1234, 0, 0, ""),
			want: models.MonitorInfo{Marca: "XYZ", Modelo: "XYZ1234"},
		},
		{
			name: "name filling the whole descriptor",
			blob: buildEDID("DEL", 1, 60, 34, "DELL P2719HCX"),
			want: models.MonitorInfo{Marca: "Dell", Modelo: "DELL P2719HCX", Tamanho: "27.2\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEDID(tt.blob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEDIDRejectsCorruptBlobs(t *testing.T) {
	good := buildEDID("SAM", 1, 48, 27, "S22F350")

	short := good[:100]

	badHeader := append([]byte(nil), good...)
	badHeader[0] = 0x01

	badSum := append([]byte(nil), good...)
	badSum[127]++

	_, err := ParseEDID(short)
	assert.ErrorIs(t, err, ErrEDIDTooShort)
	_, err = ParseEDID(badHeader)
	assert.ErrorIs(t, err, ErrEDIDHeader)
	_, err = ParseEDID(badSum)
	assert.ErrorIs(t, err, ErrEDIDChecksum)
}

func TestReadMonitors(t *testing.T) {
	root := t.TempDir()

	write := func(output, status string, edid []byte) {
		dir := filepath.Join(root, output)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status+"\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "edid"), edid, 0o644))
	}

	write("card0-HDMI-A-1", "connected", buildEDID("GSM", 1, 53, 30, "24ML600"))
	write("card0-DP-1", "connected", buildEDID("DEL", 2, 60, 34, "P2719H"))
	write("card0-DP-2", "disconnected", buildEDID("SAM", 3, 48, 27, "S22F350"))
	write("card0-eDP-1", "connected", nil)
	write("card0-VGA-1", "connected", []byte("garbage"))

	got, err := ReadMonitors(root)
	require.NoError(t, err)
	// sorted by output path
	assert.Equal(t, models.Monitores{
		{Marca: "Dell", Modelo: "P2719H", Tamanho: "27.2\""},
		{Marca: "LG", Modelo: "24ML600", Tamanho: "24.0\""},
	}, got)
}

func TestReadMonitorsEmptyRoot(t *testing.T) {
	got, err := ReadMonitors(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
