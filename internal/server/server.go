package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quotebridge/internal/config"
	"quotebridge/internal/directory"
	"quotebridge/internal/pipeline"
	"quotebridge/internal/storage"
)

type Server struct {
	cfg  config.Config
	db   *storage.DB
	proc *pipeline.ProcessingService
	dir  *directory.Directory
}

func New(cfg config.Config, db *storage.DB) *Server {
	return &Server{
		cfg:  cfg,
		db:   db,
		proc: pipeline.NewProcessingService(db, cfg),
		dir:  directory.New(cfg.ResellerFile),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/process-quote", s.handleProcessQuote)
	r.Get("/download", s.handleDownloadLatest)
	r.Get("/download/{runID}", s.handleDownloadRun)
	r.Get("/resellers", s.handleResellers)
	r.Get("/uploads", s.handleUploads)
	return r
}
