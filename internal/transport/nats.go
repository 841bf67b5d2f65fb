// Package transport exposes the assistant over NATS request/reply, the bus
// the dashboard backend already speaks. One subject per operation: chat
// submission, conversation reset, and activity log retrieval.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/supplysight/assistant-core/internal/assist/model"
	"github.com/supplysight/assistant-core/internal/assist/session"
	"github.com/supplysight/assistant-core/internal/reply"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

type Config struct {
	URL             string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	ChatSubject     string `envconfig:"NATS_CHAT_SUBJECT" default:"assist.chat"`
	ResetSubject    string `envconfig:"NATS_RESET_SUBJECT" default:"assist.reset"`
	ActivitySubject string `envconfig:"NATS_ACTIVITY_SUBJECT" default:"assist.activity"`
	Timeout         int    `envconfig:"NATS_TIMEOUT" default:"30"`
	ServiceName     string `envconfig:"SERVICE_NAME" default:"assistant-core"`
}

type ChatRequest struct {
	SessionID    string           `json:"session_id"`
	Message      string           `json:"message"`
	ForcedIntent model.IntentType `json:"forced_intent,omitempty"`
}

type ChatResponse struct {
	SessionID    string          `json:"session_id"`
	Messages     []model.Message `json:"messages"`
	Action       *model.Action   `json:"action,omitempty"`
	Connectivity reply.Status    `json:"connectivity"`
	Error        string          `json:"error,omitempty"`
}

type ResetRequest struct {
	SessionID string `json:"session_id"`
}

type ResetResponse struct {
	SessionID string        `json:"session_id"`
	Greeting  model.Message `json:"greeting"`
	Error     string        `json:"error,omitempty"`
}

type ActivityRequest struct {
	SessionID string `json:"session_id"`
}

type ActivityResponse struct {
	SessionID string                `json:"session_id"`
	Entries   []model.ActivityEntry `json:"entries"`
	Error     string                `json:"error,omitempty"`
}

// NATSTransport subscribes the session manager to the assistant subjects.
type NATSTransport struct {
	conn     *nats.Conn
	cfg      Config
	sessions *session.Manager
	prober   *reply.Prober
}

func NewNATSTransport(cfg Config, sessions *session.Manager, prober *reply.Prober) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(time.Duration(cfg.Timeout)*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logx.Info().Str("url", cfg.URL).Msg("connected to NATS server")

	return &NATSTransport{
		conn:     conn,
		cfg:      cfg,
		sessions: sessions,
		prober:   prober,
	}, nil
}

func (nt *NATSTransport) Start() error {
	subs := map[string]nats.MsgHandler{
		nt.cfg.ChatSubject:     nt.handleChat,
		nt.cfg.ResetSubject:    nt.handleReset,
		nt.cfg.ActivitySubject: nt.handleActivity,
	}
	for subject, handler := range subs {
		if _, err := nt.conn.Subscribe(subject, handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		logx.Info().Str("subject", subject).Msg("subscribed")
	}
	return nil
}

func (nt *NATSTransport) handleChat(msg *nats.Msg) {
	var req ChatRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		logx.Error().Err(err).Msg("error parsing chat request")
		nt.respond(msg, &ChatResponse{Error: "invalid request format"})
		return
	}
	if req.SessionID == "" {
		nt.respond(msg, &ChatResponse{Error: "session_id is required"})
		return
	}
	// A forced intent may legitimately arrive with empty text; free text
	// submissions may not.
	if req.Message == "" && !req.ForcedIntent.Valid() {
		nt.respond(msg, &ChatResponse{SessionID: req.SessionID, Error: "message is required"})
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()

	turn, err := nt.sessions.Submit(ctx, req.SessionID, req.Message, req.ForcedIntent)
	if err != nil {
		if errors.Is(err, session.ErrBusy) {
			nt.respond(msg, &ChatResponse{SessionID: req.SessionID, Error: "a submission is already in flight"})
			return
		}
		logx.Error().Err(err).Str("session", req.SessionID).Msg("error processing chat submission")
		nt.respond(msg, &ChatResponse{SessionID: req.SessionID, Error: "failed to process submission"})
		return
	}

	nt.respond(msg, &ChatResponse{
		SessionID:    req.SessionID,
		Messages:     turn.Messages,
		Action:       turn.Action,
		Connectivity: nt.prober.Status(),
	})
}

func (nt *NATSTransport) handleReset(msg *nats.Msg) {
	var req ResetRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		logx.Error().Err(err).Msg("error parsing reset request")
		nt.respond(msg, &ResetResponse{Error: "invalid request format"})
		return
	}
	if req.SessionID == "" {
		nt.respond(msg, &ResetResponse{Error: "session_id is required"})
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()

	greeting, err := nt.sessions.Reset(ctx, req.SessionID)
	if err != nil {
		logx.Error().Err(err).Str("session", req.SessionID).Msg("error resetting session")
		nt.respond(msg, &ResetResponse{SessionID: req.SessionID, Error: "failed to reset session"})
		return
	}

	nt.respond(msg, &ResetResponse{SessionID: req.SessionID, Greeting: greeting})
}

func (nt *NATSTransport) handleActivity(msg *nats.Msg) {
	var req ActivityRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		logx.Error().Err(err).Msg("error parsing activity request")
		nt.respond(msg, &ActivityResponse{Error: "invalid request format"})
		return
	}
	if req.SessionID == "" {
		nt.respond(msg, &ActivityResponse{Error: "session_id is required"})
		return
	}

	ctx, cancel := nt.requestContext()
	defer cancel()

	entries, err := nt.sessions.Activity(ctx, req.SessionID)
	if err != nil {
		logx.Error().Err(err).Str("session", req.SessionID).Msg("error loading activity log")
		nt.respond(msg, &ActivityResponse{SessionID: req.SessionID, Error: "failed to load activity log"})
		return
	}

	nt.respond(msg, &ActivityResponse{SessionID: req.SessionID, Entries: entries})
}

func (nt *NATSTransport) respond(msg *nats.Msg, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logx.Error().Err(err).Msg("failed to marshal response")
		return
	}
	if err := msg.Respond(data); err != nil {
		logx.Error().Err(err).Msg("failed to send response")
	}
}

func (nt *NATSTransport) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(nt.cfg.Timeout)*time.Second)
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		if err := nt.conn.Drain(); err != nil {
			nt.conn.Close()
			return err
		}
		logx.Info().Msg("NATS connection drained")
	}
	return nil
}
