// Package api is the HTTP surface over the ingest, categorization and rule
// services. It holds no logic of its own beyond request decoding and error
// classification.
package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/evalind/kortkoll/internal/database/repository"
	"github.com/evalind/kortkoll/internal/service"
	"github.com/evalind/kortkoll/internal/statement"
)

// Server routes HTTP requests to the core services.
type Server struct {
	log zerolog.Logger

	ingest     *service.IngestService
	rules      *service.RuleService
	categories *service.CategoryService
	overlaps   *service.OverlapService

	transactions *repository.TransactionRepo
	categoryRepo *repository.CategoryRepo
	ruleRepo     *repository.RuleRepo
}

// Deps bundles the server's collaborators.
type Deps struct {
	Ingest     *service.IngestService
	Rules      *service.RuleService
	Categories *service.CategoryService
	Overlaps   *service.OverlapService

	Transactions *repository.TransactionRepo
	CategoryRepo *repository.CategoryRepo
	RuleRepo     *repository.RuleRepo
}

func New(log zerolog.Logger, d Deps) *Server {
	return &Server{
		log:          log,
		ingest:       d.Ingest,
		rules:        d.Rules,
		categories:   d.Categories,
		overlaps:     d.Overlaps,
		transactions: d.Transactions,
		categoryRepo: d.CategoryRepo,
		ruleRepo:     d.RuleRepo,
	}
}

// Handler builds the routing table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /transactions/overlaps", s.handleOverlaps)
	mux.HandleFunc("PUT /transactions/{id}/category", s.handleAssignCategory)
	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /categories/{name}", s.handleDeleteCategory)
	mux.HandleFunc("GET /category-rules", s.handleListRules)
	mux.HandleFunc("POST /category-rules", s.handleCreateRule)
	mux.HandleFunc("PUT /category-rules/{keyword}", s.handleUpdateRule)
	mux.HandleFunc("GET /source-files", s.handleSourceFiles)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	var h http.Handler = mux
	h = CORS(h)
	h = RequestLogger(s.log)(h)
	h = Recovery(s.log)(h)
	return h
}

// writeDomainError maps core errors to their HTTP classification.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, statement.ErrBadFormat):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReserved):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
