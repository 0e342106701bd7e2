package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/job-autofill/internal/autofill"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/server/middleware"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// FillRequest is the body of POST /fill.
type FillRequest struct {
	HTML    string `json:"html"`
	URL     string `json:"url"`
	InFrame bool   `json:"in_frame"`
}

// FillResponse is the body returned by POST /fill. HTML is the document
// with every write applied; it is empty when the fill was blocked.
type FillResponse struct {
	Report  types.FillReport `json:"report"`
	Blocked bool             `json:"blocked"`
	HTML    string           `json:"html,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFill runs one pass over the posted page with the caller's profile.
func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	var req FillRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.HTML == "" {
		s.errorResponse(w, http.StatusBadRequest, "html is required")
		return
	}

	doc, err := dom.Parse(req.HTML)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	store, err := s.storeFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	p, err := profile.Load(r.Context(), store)
	if err != nil {
		s.logger.Error("failed to load profile", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	report, err := autofill.Run(r.Context(), autofill.Page{Doc: doc, URL: req.URL, InFrame: req.InFrame}, p, s.logger)
	var blocked *autofill.BlockedContextError
	switch {
	case errors.As(err, &blocked):
		s.jsonResponse(w, http.StatusOK, FillResponse{Report: report, Blocked: true})
		return
	case err != nil:
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filled, err := doc.HTML()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, FillResponse{Report: report, HTML: filled})
}

// handleGetProfile returns the stored profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	store, err := s.storeFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	p, err := profile.Load(r.Context(), store)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handlePutProfile writes a partial profile. Keys not in the body are kept.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var values profile.Values
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&values); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	store, err := s.storeFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := profile.Save(r.Context(), store, values); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	p, err := profile.Load(r.Context(), store)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// storeFor returns the store holding the caller's profile. With auth enabled
// and a Postgres store, each token's profile ID selects its own rows.
func (s *Server) storeFor(r *http.Request) (profile.Store, error) {
	if s.jwtService == nil {
		return s.store, nil
	}
	id, err := middleware.GetProfileID(r)
	if err != nil {
		return nil, err
	}
	if pg, ok := s.store.(*profile.PostgresStore); ok {
		return pg.ForProfile(id), nil
	}
	return s.store, nil
}
