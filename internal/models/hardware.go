package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// HardwareRecord is one inventory submission as stored in hardware_data
type HardwareRecord struct {
	ID              int64     `json:"id"`
	Secretaria      string    `json:"secretaria"`
	Setor           string    `json:"setor"`
	Matricula       string    `json:"matricula"`
	UsuarioLogado   string    `json:"usuarioLogado"`
	NomeCompleto    string    `json:"nomeCompleto"`
	NomeDispositivo string    `json:"nomeDispositivo"`
	Processador     string    `json:"processador"`
	Disco           string    `json:"disco"`
	RAM             string    `json:"ram"`
	Monitores       Monitores `json:"monitores"`
	DataColeta      time.Time `json:"dataColeta"`
}

// NewRecord is a validated record that has not been persisted yet.
// The store assigns ID and DataColeta on insert.
type NewRecord struct {
	Secretaria      string
	Setor           string
	Matricula       string
	UsuarioLogado   string
	NomeCompleto    string
	NomeDispositivo string
	Processador     string
	Disco           string
	RAM             string
	Monitores       Monitores
}

// MonitorInfo describes one display attached to the machine. All fields are optional.
type MonitorInfo struct {
	Marca   string `json:"marca,omitempty"`
	Modelo  string `json:"modelo,omitempty"`
	Tamanho string `json:"tamanho,omitempty"`
}

// Registration reports whether a device or matricula already has a record
type Registration struct {
	JaExiste        bool `json:"jaExiste"`
	MaquinaExiste   bool `json:"maquinaExiste"`
	MatriculaExiste bool `json:"matriculaExiste"`
}

// Monitores is the ordered monitor list of a record, stored as a JSON array
type Monitores []MonitorInfo

// EncodeMonitores serializes monitors to their stored text form.
// A nil or empty list encodes as "[]".
func EncodeMonitores(m Monitores) (string, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]MonitorInfo(m))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeMonitores parses the stored text form. Missing or corrupt input yields an
// empty list, never an error.
func DecodeMonitores(data []byte) Monitores {
	out := Monitores{}
	if len(data) == 0 {
		return out
	}
	var parsed []MonitorInfo
	if err := json.Unmarshal(data, &parsed); err != nil || parsed == nil {
		return out
	}
	return Monitores(parsed)
}

// Value implements the driver.Valuer interface
func (m Monitores) Value() (driver.Value, error) {
	return EncodeMonitores(m)
}

// Scan implements the sql.Scanner interface
func (m *Monitores) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*m = DecodeMonitores(v)
	case string:
		*m = DecodeMonitores([]byte(v))
	default:
		*m = Monitores{}
	}
	return nil
}

// MarshalJSON keeps an empty list as [] instead of null in API responses
func (m Monitores) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]MonitorInfo(m))
}
