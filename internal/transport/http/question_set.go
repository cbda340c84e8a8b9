package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"livequiz-coordinator/internal/app"
	"livequiz-coordinator/internal/domain"
)

// QuestionSetHandler serves the active question bank to clients.
type QuestionSetHandler struct {
	questions app.QuestionRepository
	setID     string
}

func NewQuestionSetHandler(questions app.QuestionRepository, setID string) *QuestionSetHandler {
	return &QuestionSetHandler{questions: questions, setID: setID}
}

func (h *QuestionSetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	set, err := h.questions.GetQuestionSet(r.Context(), h.setID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionSetNotFound) {
			http.Error(w, "question set not found", http.StatusNotFound)
			return
		}
		log.Printf("load question set: %v", err)
		http.Error(w, "failed to load question set", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(set)
}
