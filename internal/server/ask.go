package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type askRequest struct {
	Question *string `json:"question"`
}

type askResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type askHandler struct {
	answerer Answerer
}

func (h *askHandler) RegisterRoutes(r chi.Router) {
	r.Post("/ask", h.handleAsk)
}

func (h *askHandler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload askRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if payload.Question == nil {
		respondError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), *payload.Question)
	if err != nil {
		log.Error().Err(err).Str("question", *payload.Question).Msg("answer failed")
		respondError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}
	respondJSON(w, http.StatusOK, askResponse{Question: *payload.Question, Answer: answer})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
