package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"livequiz-coordinator/internal/app"
	"livequiz-coordinator/internal/domain"
	"livequiz-coordinator/internal/scoring"
)

// WSHandler bridges websocket connections to the session coordinator. The
// connection id is minted here on upgrade; the application never sees the
// socket itself.
type WSHandler struct {
	coordinator *app.Coordinator
	questions   app.QuestionRepository
	setID       string
	upgrader    websocket.Upgrader
}

// NewWSHandler wires the coordinator and, optionally, a question repository
// used to fill in a score when a completion payload carries answers only.
func NewWSHandler(coordinator *app.Coordinator, questions app.QuestionRepository, setID string) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		questions:   questions,
		setID:       setID,
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

type registerPayload struct {
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}

type progressPayload struct {
	QuestionIndex int `json:"questionIndex"`
	Score         int `json:"score"`
}

type completedPayload struct {
	Score         *int            `json:"score"`
	Answers       []domain.Answer `json:"answers"`
	WalletAddress string          `json:"walletAddress"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ServeWS upgrades the request, subscribes the client to coordinator
// broadcasts and pumps inbound intents until the connection drops. A
// transport-level close is treated as a permanent departure.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("client connected: %s", connID)

	events, cancel := h.coordinator.Subscribe()
	defer cancel()
	defer func() {
		h.coordinator.Apply(app.Disconnect{ConnID: connID})
		log.Printf("client disconnected: %s", connID)
	}()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	pumpDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(pumpDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: ev.Name, Payload: ev.Payload}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r, connID, inbound)
	}

	close(closeSignals)
	<-pumpDone
	close(send)
	<-writerDone
}

// dispatch translates one inbound envelope into a coordinator intent.
// Malformed payloads are dropped; the coordinator never faults the caller.
func (h *WSHandler) dispatch(r *http.Request, connID string, inbound inboundMessage) {
	switch inbound.Type {
	case "register":
		var payload registerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			log.Printf("invalid register payload from %s: %v", connID, err)
			return
		}
		h.coordinator.Apply(app.Register{
			ConnID:        connID,
			Name:          payload.Name,
			WalletAddress: payload.WalletAddress,
		})
	case "start-quiz":
		h.coordinator.Apply(app.StartQuiz{ConnID: connID})
	case "question-progress":
		var payload progressPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			log.Printf("invalid progress payload from %s: %v", connID, err)
			return
		}
		h.coordinator.Apply(app.ReportProgress{
			ConnID:        connID,
			QuestionIndex: payload.QuestionIndex,
			Score:         payload.Score,
		})
	case "quiz-completed":
		var payload completedPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			log.Printf("invalid completion payload from %s: %v", connID, err)
			return
		}
		h.coordinator.Apply(app.CompleteQuiz{
			ConnID:  connID,
			Score:   h.finalScore(r, payload),
			Answers: payload.Answers,
		})
	default:
		log.Printf("unsupported message type %q from %s", inbound.Type, connID)
	}
}

// finalScore trusts the client-reported score when present and only falls
// back to server-side scoring for payloads that carry answers without one.
func (h *WSHandler) finalScore(r *http.Request, payload completedPayload) int {
	if payload.Score != nil {
		return *payload.Score
	}
	if h.questions == nil || len(payload.Answers) == 0 {
		return 0
	}
	set, err := h.questions.GetQuestionSet(r.Context(), h.setID)
	if err != nil {
		log.Printf("score fallback failed: %v", err)
		return 0
	}
	return scoring.Score(set, payload.Answers)
}
