package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/nlsearch/internal/dataset"
	"github.com/hyperjump/nlsearch/internal/models"
	"github.com/hyperjump/nlsearch/internal/ranking"
	"github.com/hyperjump/nlsearch/pkg/tree"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.InlineSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("nodes", req.Data.Count()))
	s.respondJSON(w, http.StatusOK, s.search(req.Data, "", &req.SearchRequest))
}

func (s *Server) handleDatasetSearch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ds, ok := s.lookup(w, name)
	if !ok {
		return
	}
	var req models.SearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("dataset search request", zap.String("dataset", name), zap.String("query", req.Query))
	s.respondJSON(w, http.StatusOK, s.search(ds.Root, name, &req))
}

func (s *Server) search(data *tree.Node, datasetName string, req *models.SearchRequest) *models.SearchResponse {
	resp := models.NewSearchResponse(req, s.engine.Execute(data, req.Query, req.Options))
	resp.Dataset = datasetName
	return resp
}

func (s *Server) handleDatasetsList(w http.ResponseWriter, r *http.Request) {
	list := s.datasets.List()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"datasets": list, "total": len(list)})
}

func (s *Server) handleDatasetGet(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.lookup(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":      ds.Name,
		"nodes":     ds.Nodes,
		"loaded_at": ds.LoadedAt,
		"data":      ds.Root,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	defaults := s.engine.Defaults()
	var maxResults interface{} = defaults.MaxResults
	if defaults.MaxResults == ranking.NoLimit {
		maxResults = nil
	}
	resp := map[string]interface{}{
		"version":        s.version,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"datasets":       s.datasets.Len(),
		"config": map[string]interface{}{
			"min_score":      defaults.MinScore,
			"max_results":    maxResults,
			"search_keys":    defaults.SearchKeys,
			"case_sensitive": defaults.CaseSensitive,
			"stemmer":        s.stemmer,
			"similarity":     s.similarity,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(w http.ResponseWriter, name string) (*dataset.Dataset, bool) {
	ds, err := s.datasets.Get(name)
	if errors.Is(err, dataset.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "dataset not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("dataset lookup failed", zap.String("dataset", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return ds, true
}

// decode reads a JSON body into v, answering 413 or 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		if errors.Is(err, tree.ErrTooDeep) {
			s.respondError(w, http.StatusBadRequest, "data nested too deeply")
			return false
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("write response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
