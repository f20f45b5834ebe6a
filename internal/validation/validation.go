// Package validation checks inventory submissions before they reach the store.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"inventario-hardware/internal/models"
)

// Submission is the raw JSON body posted by a collector
type Submission struct {
	Secretaria      string               `json:"secretaria" validate:"required"`
	Setor           string               `json:"setor" validate:"required"`
	Matricula       string               `json:"matricula" validate:"required"`
	UsuarioLogado   string               `json:"usuarioLogado" validate:"required"`
	NomeCompleto    string               `json:"nomeCompleto" validate:"required"`
	NomeDispositivo string               `json:"nomeDispositivo" validate:"required"`
	Processador     string               `json:"processador"`
	Disco           string               `json:"disco"`
	RAM             string               `json:"ram"`
	Monitores       []models.MonitorInfo `json:"monitores"`
}

// ValidationError lists the required fields that were missing or blank
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON names so clients see the keys they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate normalizes a submission and checks the required fields.
// On success it returns a record ready for insertion.
func Validate(in Submission) (models.NewRecord, error) {
	in = normalize(in)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.NewRecord{}, err
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return models.NewRecord{}, &ValidationError{Missing: missing}
	}

	monitores := models.Monitores(in.Monitores)
	if monitores == nil {
		monitores = models.Monitores{}
	}

	return models.NewRecord{
		Secretaria:      in.Secretaria,
		Setor:           in.Setor,
		Matricula:       in.Matricula,
		UsuarioLogado:   in.UsuarioLogado,
		NomeCompleto:    in.NomeCompleto,
		NomeDispositivo: in.NomeDispositivo,
		Processador:     in.Processador,
		Disco:           in.Disco,
		RAM:             in.RAM,
		Monitores:       monitores,
	}, nil
}

func normalize(in Submission) Submission {
	in.Secretaria = strings.TrimSpace(in.Secretaria)
	in.Setor = strings.TrimSpace(in.Setor)
	in.Matricula = strings.TrimSpace(in.Matricula)
	in.UsuarioLogado = strings.TrimSpace(in.UsuarioLogado)
	in.NomeCompleto = strings.TrimSpace(in.NomeCompleto)
	in.NomeDispositivo = strings.TrimSpace(in.NomeDispositivo)
	in.Processador = strings.TrimSpace(in.Processador)
	in.Disco = strings.TrimSpace(in.Disco)
	in.RAM = strings.TrimSpace(in.RAM)

	if len(in.Monitores) > 0 {
		mons := make([]models.MonitorInfo, len(in.Monitores))
		for i, m := range in.Monitores {
			mons[i] = models.MonitorInfo{
				Marca:   strings.TrimSpace(m.Marca),
				Modelo:  strings.TrimSpace(m.Modelo),
				Tamanho: strings.TrimSpace(m.Tamanho),
			}
		}
		in.Monitores = mons
	}
	return in
}
