package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS hardware_data (
		id BIGSERIAL PRIMARY KEY,
		secretaria VARCHAR(100) NOT NULL,
		setor VARCHAR(100) NOT NULL,
		matricula VARCHAR(20) NOT NULL,
		usuario_logado VARCHAR(100) NOT NULL,
		nome_completo VARCHAR(200) NOT NULL,
		nome_dispositivo VARCHAR(100) NOT NULL,
		processador VARCHAR(200) NOT NULL DEFAULT '',
		disco VARCHAR(100) NOT NULL DEFAULT '',
		ram VARCHAR(100) NOT NULL DEFAULT '',
		monitores JSONB NOT NULL DEFAULT '[]'::jsonb,
		data_coleta TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Provision creates the database and the hardware_data table when missing.
// It never drops or alters existing objects, so it is safe on every start.
func (g *Gateway) Provision(ctx context.Context) error {
	if err := g.ensureDatabase(ctx); err != nil {
		return err
	}
	if _, err := g.db.ExecContext(ctx, createTableSQL); err != nil {
		return &StorageUnavailableError{Op: "provision", Err: err}
	}
	g.logger.Info("hardware_data table ready")
	return nil
}

func (g *Gateway) ensureDatabase(ctx context.Context) error {
	if g.conn == nil || g.conn.Database == "" {
		return nil
	}
	name := g.conn.Database

	adminCfg := g.conn.Copy()
	adminCfg.Database = g.admin
	conn, err := pgx.ConnectConfig(ctx, adminCfg)
	if err != nil {
		return &StorageUnavailableError{Op: "provision", Err: err}
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists); err != nil {
		return &StorageUnavailableError{Op: "provision", Err: err}
	}
	if exists {
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeDuplicateDatabase {
			return nil
		}
		return &StorageUnavailableError{Op: "provision", Err: err}
	}
	g.logger.Info("database created", zap.String("database", name))
	return nil
}

// Truncate removes every record and restarts the id sequence
func (g *Gateway) Truncate(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, "TRUNCATE hardware_data RESTART IDENTITY"); err != nil {
		return classify("truncate", err)
	}
	return nil
}
