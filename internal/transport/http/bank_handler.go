package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

// BankHandler exposes read and append operations on question banks.
type BankHandler struct {
	service *app.QuizService
	logger  *slog.Logger
}

func NewBankHandler(service *app.QuizService, logger *slog.Logger) *BankHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BankHandler{service: service, logger: logger}
}

type bankResponse struct {
	ID        string                `json:"id"`
	Questions []domain.QuestionView `json:"questions"`
}

func (h *BankHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.service.Bank(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bankResponse{ID: bank.ID, Questions: bank.Views()})
}

func (h *BankHandler) AppendQuestion(w http.ResponseWriter, r *http.Request) {
	var draft domain.QuestionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "malformed question body"})
		return
	}
	q, err := h.service.AppendQuestion(r.Context(), r.PathValue("id"), draft)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q.View())
}

func (h *BankHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuestion):
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrBankNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
	default:
		h.logger.Error("bank request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMux wires the health, websocket and bank routes.
func NewMux(service *app.QuizService, defaultBank string, logger *slog.Logger) *http.ServeMux {
	ws := NewWSHandler(service, defaultBank, logger)
	banks := NewBankHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	mux.HandleFunc("GET /banks/{id}", banks.GetBank)
	mux.HandleFunc("POST /banks/{id}/questions", banks.AppendQuestion)
	return mux
}
