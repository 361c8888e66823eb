package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/grammar-checker/internal/check"
)

// persistTimeout bounds the best-effort storage write so a slow database
// cannot hold up the response.
const persistTimeout = 3 * time.Second

// CheckGrammarRequest is the request envelope for /check_grammar.
type CheckGrammarRequest struct {
	Data CheckRequestData `json:"data"`
}

// CheckRequestData carries the text to check.
type CheckRequestData struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Validate validates the CheckGrammarRequest using the validator.
func (r *CheckGrammarRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CheckGrammarResponse is the response body for /check_grammar.
type CheckGrammarResponse struct {
	ID     string        `json:"id"`
	Result *check.Result `json:"result"`
}

// handleCheckGrammar runs the grammar check pipeline for the posted text.
func (s *Server) handleCheckGrammar(w http.ResponseWriter, r *http.Request) {
	var req CheckGrammarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No text provided")
		return
	}

	result, err := s.checker.Check(r.Context(), req.Data.Text)
	if err != nil {
		log.Printf("Grammar check failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), "Grammar checking failed: "+err.Error())
		return
	}

	id := s.persist(r.Context(), req.Data.Text, result)
	s.jsonResponse(w, http.StatusOK, CheckGrammarResponse{ID: id, Result: result})
}

// persist writes the result best-effort. Storage failures are logged and
// never surfaced; the response carries a generated ID either way.
func (s *Server) persist(ctx context.Context, text string, result *check.Result) string {
	if s.store == nil {
		return uuid.New().String()
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	id, err := s.store.SaveCheck(saveCtx, text, result)
	if err != nil {
		log.Printf("Failed to persist check result: %v", err)
		return uuid.New().String()
	}
	return id.String()
}

// handleGetCheck returns a previously persisted check result.
func (s *Server) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid check ID format")
		return
	}

	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Check not found")
		return
	}

	record, err := s.store.GetCheck(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Check not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}
