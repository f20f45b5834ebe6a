// Package export renders inventory records as an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"
	"golang.org/x/text/language"

	"inventario-hardware/internal/models"
)

const (
	// ContentType is the MIME type of the generated document
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// Filename is the name offered to the browser on download
	Filename = "inventario_hardware.xlsx"

	SheetName   = "Inventário de Hardware"
	Unavailable = "N/A"

	headerFill = "FFD3D3D3"
)

// ExportGenerationError wraps any failure while building or writing the workbook
type ExportGenerationError struct {
	Err error
}

func (e *ExportGenerationError) Error() string {
	return fmt.Sprintf("export generation failed: %v", e.Err)
}

func (e *ExportGenerationError) Unwrap() error { return e.Err }

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"ID", 10},
	{"Secretaria", 20},
	{"Setor", 20},
	{"Matrícula", 15},
	{"Nome Completo", 30},
	{"Nome do Dispositivo", 25},
	{"Processador", 30},
	{"Disco", 15},
	{"RAM", 15},
	{"Monitores", 40},
	{"Data da Coleta", 20},
}

// Timestamp layouts per supported locale; the first entry is the fallback.
var (
	supportedLocales = []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}
	localeLayouts    = []string{"02/01/2006 15:04:05", "01/02/2006 3:04:05 PM"}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

// Formatter turns records into a workbook
type Formatter struct {
	Location *time.Location
	layout   string
}

// NewFormatter picks the timestamp layout closest to locale (a BCP 47 tag such as
// "pt-BR"). A nil location means UTC.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{Location: loc, layout: layoutFor(locale)}
}

func layoutFor(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return localeLayouts[0]
	}
	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return localeLayouts[0]
	}
	return localeLayouts[idx]
}

// FormatTimestamp renders t in the formatter's location and locale
func (f *Formatter) FormatTimestamp(t time.Time) string {
	return t.In(f.Location).Format(f.layout)
}

// FlattenMonitors renders each monitor as "marca modelo tamanho", with N/A for
// blank parts, joined by ", ". No monitors gives "".
func FlattenMonitors(monitores models.Monitores) string {
	parts := make([]string, 0, len(monitores))
	for _, m := range monitores {
		parts = append(parts, fmt.Sprintf("%s %s %s", orNA(m.Marca), orNA(m.Modelo), orNA(m.Tamanho)))
	}
	return strings.Join(parts, ", ")
}

func orNA(s string) string {
	if s == "" {
		return Unavailable
	}
	return s
}

// Build creates the workbook: one header row then one row per record, in the
// order given.
func (f *Formatter) Build(records []models.HardwareRecord) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, &ExportGenerationError{Err: err}
	}

	header := sheet.AddRow()
	style := headerStyle()
	for i, col := range columns {
		cell := header.AddCell()
		cell.SetString(col.header)
		cell.SetStyle(style)
		sheet.SetColWidth(i+1, i+1, col.width)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().SetInt64(rec.ID)
		for _, v := range []string{
			rec.Secretaria,
			rec.Setor,
			rec.Matricula,
			rec.NomeCompleto,
			rec.NomeDispositivo,
			rec.Processador,
			rec.Disco,
			rec.RAM,
			FlattenMonitors(rec.Monitores),
			f.FormatTimestamp(rec.DataColeta),
		} {
			row.AddCell().SetString(v)
		}
	}

	return file, nil
}

// Write builds the workbook and serializes it to w
func (f *Formatter) Write(w io.Writer, records []models.HardwareRecord) error {
	file, err := f.Build(records)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return &ExportGenerationError{Err: err}
	}
	return nil
}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Font.Bold = true
	style.Fill = *xlsx.NewFill("solid", headerFill, headerFill)
	style.ApplyFont = true
	style.ApplyFill = true
	return style
}
