package internal

import (
	"encoding/json"
	"errors"
	"net/http"

	"inventario-hardware/internal/handlers"
	"inventario-hardware/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxSubmissionBytes = 1 << 20

func (s *Server) createHardwareData(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	var in validation.Submission
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.Metrics.observeSubmission(outcomeInvalid)
		handlers.WriteJSON(w, http.StatusBadRequest, handlers.Response{
			Success: false,
			Error:   handlers.CodeInvalidJSON,
			Message: "JSON inválido.",
		})
		return
	}

	rec, err := validation.Validate(in)
	if err != nil {
		s.Metrics.observeSubmission(outcomeInvalid)
		resp := handlers.Response{
			Success: false,
			Error:   handlers.CodeValidation,
			Message: "Dados incompletos. Todos os campos são obrigatórios.",
		}
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			resp.Missing = verr.Missing
		}
		handlers.WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	id, err := s.Store.Insert(r.Context(), rec)
	if err != nil {
		s.Metrics.observeSubmission(outcomeFailed)
		handlers.WriteStorageError(w, s.Logger, "insert", err)
		return
	}

	s.Metrics.observeSubmission(outcomeCreated)
	s.Logger.Info("hardware record registered",
		zap.Int64("id", id),
		zap.String("nome_dispositivo", rec.NomeDispositivo),
		zap.String("secretaria", rec.Secretaria),
	)
	handlers.WriteJSON(w, http.StatusCreated, handlers.Response{
		Success: true,
		Message: "Dados de hardware registrados com sucesso!",
		ID:      id,
	})
}

func (s *Server) listHardwareData(w http.ResponseWriter, r *http.Request) {
	records, err := s.Store.ListAll(r.Context())
	if err != nil {
		handlers.WriteStorageError(w, s.Logger, "list", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, handlers.Response{Success: true, Data: records})
}

func (s *Server) verifyRegistration(w http.ResponseWriter, r *http.Request) {
	nomeDispositivo := chi.URLParam(r, "nomeDispositivo")
	matricula := chi.URLParam(r, "matricula")

	reg, err := s.Store.Lookup(r.Context(), nomeDispositivo, matricula)
	if err != nil {
		handlers.WriteStorageError(w, s.Logger, "lookup", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, reg)
}
