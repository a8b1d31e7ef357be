package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"quotebridge/internal"
	"quotebridge/internal/pipeline"
)

// handleProcessQuote runs the whole pipeline for one uploaded spreadsheet.
// Parameter problems are 400s; pipeline failures are 422s that name the rule
// that triggered, so the caller can act on them.
func (s *Server) handleProcessQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(int64(s.cfg.MaxUploadMB) << 20); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	params, err := paramsFromForm(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	blob, err := io.ReadAll(file)
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}

	result, err := s.proc.ProcessFile(header.Filename, blob, params)
	if err != nil {
		httpError(w, pipelineStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runId":  result.RunID,
		"rows":   result.Rows,
		"output": filepath.Base(result.OutputPath),
	})
}

func paramsFromForm(r *http.Request) (pipeline.Params, error) {
	reseller := strings.TrimSpace(r.FormValue("reseller"))
	if reseller == "" {
		return pipeline.Params{}, errors.New("reseller is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(r.FormValue("currency")))
	if currency == "" {
		return pipeline.Params{}, errors.New("currency is required")
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("exchange_rate")), 64)
	if err != nil || rate <= 0 {
		return pipeline.Params{}, errors.New("exchange_rate must be a positive number")
	}
	margin, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("margin_pct")), 64)
	if err != nil {
		return pipeline.Params{}, errors.New("margin_pct must be a number")
	}

	return pipeline.Params{
		Reseller:     reseller,
		EndUser:      strings.TrimSpace(r.FormValue("end_user")),
		Currency:     currency,
		ExchangeRate: rate,
		MarginPct:    margin,
	}, nil
}

func pipelineStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedCurrency):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrFileUnreadable),
		errors.Is(err, pipeline.ErrHeaderNotFound),
		errors.Is(err, pipeline.ErrSchemaMismatch),
		errors.Is(err, pipeline.ErrEmptyResult):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleDownloadLatest(w http.ResponseWriter, r *http.Request) {
	upload, err := s.db.LatestProcessed()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	s.serveArtifact(w, r, upload)
}

func (s *Server) handleDownloadRun(w http.ResponseWriter, r *http.Request) {
	upload, err := s.db.GetUploadByRunID(chi.URLParam(r, "runID"))
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	if upload != nil && upload.Status != internal.UploadStatusProcessed {
		upload = nil
	}
	s.serveArtifact(w, r, upload)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, upload *internal.UploadRow) {
	if upload == nil || upload.OutputRef == "" {
		httpError(w, http.StatusNotFound, errors.New("no exported file found"))
		return
	}
	if _, err := os.Stat(upload.OutputRef); err != nil {
		httpError(w, http.StatusNotFound, errors.New("no exported file found"))
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(upload.OutputRef)+`"`)
	http.ServeFile(w, r, upload.OutputRef)
}

func (s *Server) handleResellers(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.dir.List()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUploads(w http.ResponseWriter, _ *http.Request) {
	uploads, err := s.db.ListUploads(50)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	type uploadView struct {
		RunID    string `json:"runId"`
		Filename string `json:"filename"`
		Status   string `json:"status"`
		Rows     int    `json:"rows"`
		Error    string `json:"error,omitempty"`
		Created  string `json:"createdAt"`
	}
	out := make([]uploadView, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, uploadView{RunID: u.RunID, Filename: u.Filename, Status: u.Status, Rows: u.RowCount, Error: u.Error, Created: u.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
