package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"inventario-hardware/internal/models"
	"inventario-hardware/internal/validation"
)

// AlreadyRegisteredError is returned by Register when the device or the
// matricula already has a record on the server
type AlreadyRegisteredError struct {
	Registration models.Registration
}

func (e *AlreadyRegisteredError) Error() string {
	switch {
	case e.Registration.MaquinaExiste && e.Registration.MatriculaExiste:
		return "device and matricula are already registered"
	case e.Registration.MaquinaExiste:
		return "device is already registered"
	default:
		return "matricula is already registered"
	}
}

// apiResponse mirrors the server's JSON envelope
type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	ID      int64    `json:"id"`
	Missing []string `json:"missing"`
}

// Client talks to the inventory API
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, logger: logger}
}

// Verify asks whether the device or matricula already has a record
func (c *Client) Verify(ctx context.Context, nomeDispositivo, matricula string) (models.Registration, error) {
	var reg models.Registration
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"nomeDispositivo": nomeDispositivo,
			"matricula":       matricula,
		}).
		SetResult(&reg).
		Get("/api/verificar-cadastro/{nomeDispositivo}/{matricula}")
	if err != nil {
		return models.Registration{}, fmt.Errorf("verify registration: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Registration{}, fmt.Errorf("verify registration: server answered %d", resp.StatusCode())
	}
	return reg, nil
}

// Submit posts one record and returns the id the server assigned
func (c *Client) Submit(ctx context.Context, sub validation.Submission) (int64, error) {
	var result apiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sub).
		SetResult(&result).
		SetError(&result).
		Post("/api/hardware-data")
	if err != nil {
		return 0, fmt.Errorf("submit record: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated {
		c.logger.Error("submission rejected",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("error", result.Error),
			zap.Strings("missing", result.Missing),
		)
		if len(result.Missing) > 0 {
			return 0, &validation.ValidationError{Missing: result.Missing}
		}
		return 0, fmt.Errorf("submit record: server answered %d: %s", resp.StatusCode(), result.Message)
	}

	c.logger.Info("record submitted", zap.Int64("id", result.ID))
	return result.ID, nil
}

// Register refuses to submit when the device or matricula is already known
func (c *Client) Register(ctx context.Context, sub validation.Submission) (int64, error) {
	reg, err := c.Verify(ctx, sub.NomeDispositivo, sub.Matricula)
	if err != nil {
		return 0, err
	}
	if reg.JaExiste {
		return 0, &AlreadyRegisteredError{Registration: reg}
	}
	return c.Submit(ctx, sub)
}

// BuildSubmission merges the operator's answers with a machine snapshot
func BuildSubmission(s Snapshot, secretaria, setor, matricula, nomeCompleto string) validation.Submission {
	return validation.Submission{
		Secretaria:      secretaria,
		Setor:           setor,
		Matricula:       matricula,
		UsuarioLogado:   s.UsuarioLogado,
		NomeCompleto:    nomeCompleto,
		NomeDispositivo: s.NomeDispositivo,
		Processador:     s.Processador,
		Disco:           s.Disco,
		RAM:             s.RAM,
		Monitores:       s.Monitores,
	}
}
