package internal

import (
	"context"
	"net/http"

	"inventario-hardware/internal/config"
	"inventario-hardware/internal/export"
	"inventario-hardware/internal/handlers"
	"inventario-hardware/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RecordStore is what the HTTP layer needs from the persistence gateway
type RecordStore interface {
	Insert(ctx context.Context, rec models.NewRecord) (int64, error)
	ListAll(ctx context.Context) ([]models.HardwareRecord, error)
	Lookup(ctx context.Context, nomeDispositivo, matricula string) (models.Registration, error)
	Ping(ctx context.Context) error
}

type Server struct {
	Store   RecordStore
	Router  *chi.Mux
	Metrics *Metrics
	Logger  *zap.Logger
}

func NewServer(store RecordStore, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:   store,
		Router:  chi.NewRouter(),
		Metrics: NewMetrics(),
		Logger:  logger,
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(requestLogger(logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", s.dbPing)

	s.mountInventoryRoutes(s.Router, export.NewFormatter(cfg.ExportLocale, loc))

	return s, nil
}

func (s *Server) mountInventoryRoutes(r chi.Router, formatter *export.Formatter) {
	r.Post("/api/hardware-data", s.createHardwareData)
	r.Get("/api/hardware-data", s.listHardwareData)
	r.Get("/api/verificar-cadastro/{nomeDispositivo}/{matricula}", s.verifyRegistration)

	exportHandler := handlers.NewExportHandler(s.Store, formatter, s.Logger)
	exportHandler.OnExport = s.Metrics.observeExport
	r.Get("/exportar-excel", exportHandler.ExportExcel)
}

func (s *Server) dbPing(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Ping(r.Context()); err != nil {
		s.Logger.Warn("database ping failed", zap.Error(err))
		http.Error(w, "db: unavailable", http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("db: ok")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
