package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"inventario-hardware/internal/export"
	"inventario-hardware/internal/models"
)

// RecordLister is the part of the store the export needs
type RecordLister interface {
	ListAll(ctx context.Context) ([]models.HardwareRecord, error)
}

// ExportHandler serves the spreadsheet download
type ExportHandler struct {
	Store     RecordLister
	Formatter *export.Formatter
	Logger    *zap.Logger
	// OnExport, when set, receives the number of data rows of each export
	OnExport func(rows int)
}

// NewExportHandler creates a new export handler
func NewExportHandler(store RecordLister, formatter *export.Formatter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		Store:     store,
		Formatter: formatter,
		Logger:    logger,
	}
}

// ExportExcel re-reads every record and returns them as an .xlsx attachment.
// The workbook is complete in memory before the first byte is sent.
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListAll(r.Context())
	if err != nil {
		WriteStorageError(w, h.Logger, "export", err)
		return
	}

	var buf bytes.Buffer
	if err := h.Formatter.Write(&buf, records); err != nil {
		h.Logger.Error("excel export failed", zap.Error(err), zap.Int("records", len(records)))
		WriteJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   CodeExportFailed,
			Message: "Erro ao gerar o arquivo Excel. Tente novamente mais tarde.",
		})
		return
	}

	if h.OnExport != nil {
		h.OnExport(len(records))
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Warn("excel export interrupted", zap.Error(err))
	}
}
