package export

import (
	"bytes"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/goleak"

	"inventario-hardware/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleRecords() []models.HardwareRecord {
	return []models.HardwareRecord{
		{
			ID:              2,
			Secretaria:      "TI",
			Setor:           "Suporte",
			Matricula:       "123",
			UsuarioLogado:   "jsilva",
			NomeCompleto:    "João Silva",
			NomeDispositivo: "PC-07",
			Processador:     "i5",
			Disco:           "256GB SSD",
			RAM:             "8GB",
			Monitores:       models.Monitores{{Marca: "LG", Modelo: "24ML", Tamanho: "24in"}},
			DataColeta:      time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC),
		},
		{
			ID:              1,
			Secretaria:      "Saúde",
			Setor:           "RH",
			Matricula:       "456",
			UsuarioLogado:   "maria",
			NomeCompleto:    "Maria Souza",
			NomeDispositivo: "PC-01",
			Monitores:       models.Monitores{},
			DataColeta:      time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC),
		},
	}
}

func TestFlattenMonitors(t *testing.T) {
	tests := []struct {
		name string
		in   models.Monitores
		want string
	}{
		{"empty", models.Monitores{}, ""},
		{"nil", nil, ""},
		{"single", models.Monitores{{Marca: "LG", Modelo: "24ML", Tamanho: "24in"}}, "LG 24ML 24in"},
		{"missing parts", models.Monitores{{Marca: "Dell"}}, "Dell N/A N/A"},
		{"all missing", models.Monitores{{}}, "N/A N/A N/A"},
		{
			"multiple",
			models.Monitores{{Marca: "LG", Modelo: "24ML", Tamanho: "24in"}, {Modelo: "S22", Tamanho: "22in"}},
			"LG 24ML 24in, N/A S22 22in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenMonitors(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	ts := time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, "02/05/2024 10:00:00", NewFormatter("pt-BR", saoPaulo).FormatTimestamp(ts))
	assert.Equal(t, "05/02/2024 10:00:00 AM", NewFormatter("en-US", saoPaulo).FormatTimestamp(ts))
	assert.Equal(t, "02/05/2024 13:00:00", NewFormatter("not a locale!", nil).FormatTimestamp(ts))

	f := NewFormatter("pt-BR", saoPaulo)
	assert.Equal(t, f.FormatTimestamp(ts), f.FormatTimestamp(ts.In(time.Local)))
}

func readBack(t *testing.T, records []models.HardwareRecord) *xlsx.Sheet {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("pt-BR", time.UTC).Write(&buf, records))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	return file.Sheets[0]
}

func cellString(t *testing.T, sheet *xlsx.Sheet, row, col int) string {
	t.Helper()
	r, err := sheet.Row(row)
	require.NoError(t, err)
	return r.GetCell(col).String()
}

func TestWrite_HeaderRow(t *testing.T) {
	sheet := readBack(t, sampleRecords())
	assert.Equal(t, SheetName, sheet.Name)

	want := []string{
		"ID", "Secretaria", "Setor", "Matrícula", "Nome Completo", "Nome do Dispositivo",
		"Processador", "Disco", "RAM", "Monitores", "Data da Coleta",
	}
	header, err := sheet.Row(0)
	require.NoError(t, err)
	for i, h := range want {
		cell := header.GetCell(i)
		assert.Equal(t, h, cell.String())
		assert.True(t, cell.GetStyle().Font.Bold, "header %q should be bold", h)
	}
}

func TestWrite_DataRows(t *testing.T) {
	records := sampleRecords()
	sheet := readBack(t, records)

	assert.Equal(t, len(records)+1, sheet.MaxRow)

	first, err := sheet.Row(1)
	require.NoError(t, err)
	id, err := first.GetCell(0).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, "TI", cellString(t, sheet, 1, 1))
	assert.Equal(t, "João Silva", cellString(t, sheet, 1, 4))
	assert.Equal(t, "LG 24ML 24in", cellString(t, sheet, 1, 9))
	assert.Equal(t, "02/05/2024 13:00:00", cellString(t, sheet, 1, 10))

	assert.Equal(t, "PC-01", cellString(t, sheet, 2, 5))
	assert.Equal(t, "", cellString(t, sheet, 2, 9))
	assert.False(t, func() bool {
		r, _ := sheet.Row(2)
		return r.GetCell(0).GetStyle().Font.Bold
	}())
}

func TestWrite_NoRecords(t *testing.T) {
	sheet := readBack(t, nil)
	assert.Equal(t, 1, sheet.MaxRow)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_WriterFailure(t *testing.T) {
	err := NewFormatter("pt-BR", time.UTC).Write(failingWriter{}, sampleRecords())

	var exportErr *ExportGenerationError
	require.True(t, errors.As(err, &exportErr))
}
