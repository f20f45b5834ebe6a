package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-hardware/internal/models"
)

func validSubmission() Submission {
	return Submission{
		Secretaria:      "TI",
		Setor:           "Suporte",
		Matricula:       "123",
		UsuarioLogado:   "jsilva",
		NomeCompleto:    "João Silva",
		NomeDispositivo: "PC-07",
		Processador:     "i5",
		Disco:           "256GB SSD",
		RAM:             "8GB",
		Monitores:       []models.MonitorInfo{{Marca: "LG", Modelo: "24ML", Tamanho: "24in"}},
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	rec, err := Validate(validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "TI", rec.Secretaria)
	assert.Equal(t, "PC-07", rec.NomeDispositivo)
	assert.Equal(t, models.Monitores{{Marca: "LG", Modelo: "24ML", Tamanho: "24in"}}, rec.Monitores)
}

func TestValidateRejectsEachMissingField(t *testing.T) {
	tests := []struct {
		field string
		clear func(*Submission)
	}{
		{"secretaria", func(s *Submission) { s.Secretaria = "" }},
		{"setor", func(s *Submission) { s.Setor = "" }},
		{"matricula", func(s *Submission) { s.Matricula = "" }},
		{"usuarioLogado", func(s *Submission) { s.UsuarioLogado = "" }},
		{"nomeCompleto", func(s *Submission) { s.NomeCompleto = "" }},
		{"nomeDispositivo", func(s *Submission) { s.NomeDispositivo = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			in := validSubmission()
			tt.clear(&in)

			_, err := Validate(in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{tt.field}, verr.Missing)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestValidateReportsAllMissingInOrder(t *testing.T) {
	_, err := Validate(Submission{Setor: "Suporte", NomeCompleto: "Ana"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"secretaria", "matricula", "usuarioLogado", "nomeDispositivo"}, verr.Missing)
}

func TestValidateOptionalFields(t *testing.T) {
	in := validSubmission()
	in.Processador = ""
	in.Disco = ""
	in.RAM = ""
	in.Monitores = nil

	rec, err := Validate(in)
	require.NoError(t, err)
	assert.Empty(t, rec.Processador)
	assert.NotNil(t, rec.Monitores)
	assert.Empty(t, rec.Monitores)
}

func TestValidateTrimsWhitespace(t *testing.T) {
	in := validSubmission()
	in.Secretaria = "  TI "
	in.Monitores = []models.MonitorInfo{{Marca: " LG ", Modelo: "24ML"}}

	rec, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, "TI", rec.Secretaria)
	assert.Equal(t, models.Monitores{{Marca: "LG", Modelo: "24ML"}}, rec.Monitores)
}
