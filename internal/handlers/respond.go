package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"inventario-hardware/internal/store"
)

// Error codes returned in Response.Error
const (
	CodeInvalidJSON        = "INVALID_JSON"
	CodeValidation         = "VALIDATION_FAILED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeStorageWrite       = "STORAGE_WRITE_REJECTED"
	CodeExportFailed       = "EXPORT_FAILED"
)

// Response is the envelope used by every JSON endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	ID      int64       `json:"id,omitempty"`
	Missing []string    `json:"missing,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteStorageError logs the store failure in full and answers with a category
// only, so driver messages never reach clients.
func WriteStorageError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	resp := Response{
		Success: false,
		Error:   CodeStorageUnavailable,
		Message: "Erro ao processar a requisição. Tente novamente mais tarde.",
	}
	var writeErr *store.StorageWriteError
	if errors.As(err, &writeErr) {
		resp.Error = CodeStorageWrite
		resp.Message = "Os dados enviados foram rejeitados pelo banco de dados."
	}

	logger.Error("storage operation failed",
		zap.String("op", op),
		zap.String("category", resp.Error),
		zap.Error(err),
	)
	WriteJSON(w, http.StatusInternalServerError, resp)
}
