// Package store persists hardware inventory records in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"inventario-hardware/internal/models"
)

// Options configures the connection pool
type Options struct {
	DSN           string
	AdminDatabase string // database used to create the target one, "postgres" if empty
	MaxConns      int32
}

// Gateway owns the connection pool and every SQL statement on hardware_data
type Gateway struct {
	db     *sql.DB
	pool   *pgxpool.Pool
	conn   *pgx.ConnConfig
	admin  string
	logger *zap.Logger
}

// NewGateway wraps an existing handle. Provision on such a gateway only creates
// the table; the database must already exist.
func NewGateway(db *sql.DB, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{db: db, logger: logger}
}

// Open builds the shared pool. No connection is made until the first operation,
// so Provision can still create a missing database.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Gateway, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid database DSN: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, &StorageUnavailableError{Op: "open", Err: err}
	}

	g := NewGateway(stdlib.OpenDBFromPool(pool), logger)
	g.pool = pool
	g.conn = cfg.ConnConfig
	g.admin = opts.AdminDatabase
	if g.admin == "" {
		g.admin = "postgres"
	}
	return g, nil
}

// Close releases every pooled connection
func (g *Gateway) Close() error {
	err := g.db.Close()
	if g.pool != nil {
		g.pool.Close()
	}
	return err
}

// Ping checks that the store answers
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return &StorageUnavailableError{Op: "ping", Err: err}
	}
	return nil
}

const insertSQL = `
	INSERT INTO hardware_data
		(secretaria, setor, matricula, usuario_logado, nome_completo, nome_dispositivo,
		 processador, disco, ram, monitores)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	RETURNING id`

// Insert stores a validated record and returns the id assigned by the store.
// data_coleta is set by the column default.
func (g *Gateway) Insert(ctx context.Context, rec models.NewRecord) (int64, error) {
	monitores := rec.Monitores
	if monitores == nil {
		monitores = models.Monitores{}
	}

	var id int64
	err := g.db.QueryRowContext(ctx, insertSQL,
		rec.Secretaria, rec.Setor, rec.Matricula, rec.UsuarioLogado, rec.NomeCompleto,
		rec.NomeDispositivo, rec.Processador, rec.Disco, rec.RAM, monitores,
	).Scan(&id)
	if err != nil {
		return 0, classify("insert", err)
	}

	g.logger.Debug("hardware record inserted",
		zap.Int64("id", id),
		zap.String("nome_dispositivo", rec.NomeDispositivo),
	)
	return id, nil
}

const listSQL = `
	SELECT id, secretaria, setor, matricula, usuario_logado, nome_completo, nome_dispositivo,
	       processador, disco, ram, monitores, data_coleta
	FROM hardware_data
	ORDER BY data_coleta DESC, id DESC`

// ListAll returns every record, most recent collection first
func (g *Gateway) ListAll(ctx context.Context) ([]models.HardwareRecord, error) {
	rows, err := g.db.QueryContext(ctx, listSQL)
	if err != nil {
		return nil, classify("list", err)
	}
	defer rows.Close()

	records := []models.HardwareRecord{}
	for rows.Next() {
		var r models.HardwareRecord
		if err := rows.Scan(
			&r.ID, &r.Secretaria, &r.Setor, &r.Matricula, &r.UsuarioLogado, &r.NomeCompleto,
			&r.NomeDispositivo, &r.Processador, &r.Disco, &r.RAM, &r.Monitores, &r.DataColeta,
		); err != nil {
			return nil, classify("list", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", err)
	}

	g.logger.Debug("hardware records listed", zap.Int("count", len(records)))
	return records, nil
}

const lookupSQL = `
	SELECT
		EXISTS (SELECT 1 FROM hardware_data WHERE nome_dispositivo = $1),
		EXISTS (SELECT 1 FROM hardware_data WHERE matricula = $2)`

// Lookup reports whether a device name or a matricula already has a record
func (g *Gateway) Lookup(ctx context.Context, nomeDispositivo, matricula string) (models.Registration, error) {
	var reg models.Registration
	err := g.db.QueryRowContext(ctx, lookupSQL, nomeDispositivo, matricula).
		Scan(&reg.MaquinaExiste, &reg.MatriculaExiste)
	if err != nil {
		return models.Registration{}, classify("lookup", err)
	}
	reg.JaExiste = reg.MaquinaExiste || reg.MatriculaExiste
	return reg, nil
}
