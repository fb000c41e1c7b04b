package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

type WSHandler struct {
	service     *app.QuizService
	defaultBank string
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultBank string, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

type sessionPayload struct {
	SessionID string                `json:"sessionId"`
	BankID    string                `json:"bankId"`
	Questions []domain.QuestionView `json:"questions"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets; each connection is one quiz session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	c, bank, err := h.service.Start(ctx, bankID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := c.ID()
	defer h.service.End(ctx, sessionID)

	updates, cancel, err := h.service.Subscribe(ctx, sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only the writer goroutine touches conn for writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write error", "session", sessionID, "err", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{
		SessionID: sessionID,
		BankID:    bank.ID,
		Questions: bank.Views(),
	}}

	go func() {
		defer close(updatesDone)
		var lastResult time.Time
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				msgs := []outboundMessage[any]{{Type: "state", Payload: snap}}
				if snap.Result != nil && !snap.Result.SubmittedAt.Equal(lastResult) {
					lastResult = snap.Result.SubmittedAt
					msgs = append(msgs, outboundMessage[any]{Type: "results", Payload: snap.Result})
				}
				for _, msg := range msgs {
					select {
					case send <- msg:
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reply := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		}
	}
	replyErr := func(err error) {
		reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}})
				continue
			}
			if err := h.service.SelectAnswer(ctx, sessionID, payload.QuestionIndex, payload.OptionIndex); err != nil {
				replyErr(err)
			}
		case "next":
			if err := h.service.Next(ctx, sessionID); err != nil {
				replyErr(err)
			}
		case "previous":
			if err := h.service.Previous(ctx, sessionID); err != nil {
				replyErr(err)
			}
		case "submit":
			if _, err := h.service.Submit(ctx, sessionID); err != nil {
				replyErr(err)
			}
		case "restart":
			// The question list goes out before the new attempt's first state frame.
			restarted, err := h.service.Bank(ctx, bankID)
			if err != nil {
				replyErr(err)
				continue
			}
			reply(outboundMessage[any]{Type: "session", Payload: sessionPayload{
				SessionID: sessionID,
				BankID:    restarted.ID,
				Questions: restarted.Views(),
			}})
			if err := h.service.RestartWith(ctx, sessionID, restarted); err != nil {
				replyErr(err)
			}
		case "stats":
			stats, err := h.service.Stats(ctx, sessionID)
			if err != nil {
				replyErr(err)
				continue
			}
			reply(outboundMessage[any]{Type: "stats", Payload: stats})
		default:
			reply(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
