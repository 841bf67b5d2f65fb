// Package session owns per-session conversation state and runs the
// submission pipeline: classify, resolve, dispatch, then the conversational
// reply. The transcript and activity log are mutated only here, via
// append-only operations.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/supplysight/assistant-core/internal/assist/classify"
	"github.com/supplysight/assistant-core/internal/assist/model"
	"github.com/supplysight/assistant-core/internal/assist/resolve"
	errx "github.com/supplysight/assistant-core/internal/core/error"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

// ErrBusy is returned while a previous submission for the same session is
// still in flight. The caller retries after the current turn settles; there
// is no in-flight cancellation.
var ErrBusy = errx.New(nil, http.StatusConflict, "a submission is already in flight for this session")

// Replier generates the conversational reply that follows the delegation
// pipeline. Implementations never fail: when the assistant runtime is
// unavailable they return a fixed apology instead.
type Replier interface {
	Reply(ctx context.Context, transcript []model.Message) string
}

// NavigateFunc receives every dispatched action. What happens after the call
// (route change, panel toggle) is the embedding application's concern.
type NavigateFunc func(model.Action)

// greetingSuggestions are attached to the greeting message after a reset.
var greetingSuggestions = []string{
	"Show purchase orders overview",
	"Run a quick sync",
	"Open settings",
}

// Manager runs the submission pipeline for all sessions.
type Manager struct {
	repo       model.SessionRepository
	classifier *classify.Classifier
	resolver   *resolve.Resolver
	replier    Replier
	navigate   NavigateFunc

	activityCap int
	greeting    string

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewManager(
	repo model.SessionRepository,
	classifier *classify.Classifier,
	resolver *resolve.Resolver,
	replier Replier,
	navigate NavigateFunc,
	cfg model.SessionConfig,
) *Manager {
	return &Manager{
		repo:        repo,
		classifier:  classifier,
		resolver:    resolver,
		replier:     replier,
		navigate:    navigate,
		activityCap: cfg.ActivityCap,
		greeting:    cfg.Greeting,
		inFlight:    make(map[string]bool),
	}
}

// TurnResult holds everything one submission appended or dispatched.
type TurnResult struct {
	Messages []model.Message
	Action   *model.Action
}

// Submit runs one full pipeline pass for the session. The pipeline is
// stateless per invocation: no slot filling, no carried state between turns
// other than the transcript and activity log. Each submission produces at
// least one assistant message.
func (m *Manager) Submit(ctx context.Context, sessionID, text string, forced model.IntentType) (*TurnResult, error) {
	if !m.acquire(sessionID) {
		return nil, ErrBusy
	}
	defer m.release(sessionID)

	turn := &TurnResult{}

	userMsg := model.NewMessage(model.RoleUser, text)
	if err := m.repo.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return nil, err
	}
	turn.Messages = append(turn.Messages, userMsg)

	// Delegation pipeline. A classification miss is a valid outcome: only
	// the conversational reply below runs in that case.
	if intent, ok := m.classifier.Classify(text, forced); ok {
		resolution := m.resolver.Resolve(ctx, intent)
		if err := m.dispatch(ctx, sessionID, intent, resolution, turn); err != nil {
			return nil, err
		}
	} else {
		logx.Debug().Str("session", sessionID).Msg("no intent classified")
	}

	// Conversational reply, sequenced strictly after the delegation
	// pipeline within the same submission.
	transcript, err := m.repo.LoadTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	replyMsg := model.NewMessage(model.RoleAssistant, m.replier.Reply(ctx, transcript))
	if err := m.repo.AppendMessage(ctx, sessionID, replyMsg); err != nil {
		return nil, err
	}
	turn.Messages = append(turn.Messages, replyMsg)

	return turn, nil
}

// dispatch surfaces the resolution: the message becomes an assistant
// transcript entry with no suggestions, and the action (when present) is
// handed to the navigation callback and recorded in the activity log.
func (m *Manager) dispatch(ctx context.Context, sessionID string, intent model.Intent, res model.Resolution, turn *TurnResult) error {
	if res.Message != "" {
		msg := model.NewMessage(model.RoleAssistant, res.Message)
		if err := m.repo.AppendMessage(ctx, sessionID, msg); err != nil {
			return err
		}
		turn.Messages = append(turn.Messages, msg)
	}

	if res.Action == nil {
		return nil
	}

	action := *res.Action
	if m.navigate != nil {
		m.navigate(action)
	}
	turn.Action = &action

	entry := model.NewActivityEntry(action.Type, activityContext(intent, action))
	if err := m.repo.AppendActivity(ctx, sessionID, entry, m.activityCap); err != nil {
		return err
	}

	logx.Info().
		Str("session", sessionID).
		Str("action", string(action.Type)).
		Str("context", entry.Context).
		Msg("action dispatched")
	return nil
}

// activityContext derives the optional context string for an activity entry:
// the resolved PO number (else the original query) for purchase-order
// actions, the original query for supplier actions, absent otherwise.
func activityContext(intent model.Intent, action model.Action) string {
	switch action.Type {
	case model.IntentOpenPurchaseOrder:
		if action.OrderNumber != "" {
			return action.OrderNumber
		}
		return intent.Query
	case model.IntentOpenActiveSuppliers:
		return intent.Query
	}
	return ""
}

// Reset replaces the session transcript with a single fresh greeting and
// clears the activity log.
func (m *Manager) Reset(ctx context.Context, sessionID string) (model.Message, error) {
	greeting := model.NewMessage(model.RoleAssistant, m.greeting)
	greeting.Suggestions = append([]string(nil), greetingSuggestions...)
	if err := m.repo.Reset(ctx, sessionID, greeting); err != nil {
		return model.Message{}, err
	}
	return greeting, nil
}

// Transcript returns the session transcript in display order.
func (m *Manager) Transcript(ctx context.Context, sessionID string) ([]model.Message, error) {
	return m.repo.LoadTranscript(ctx, sessionID)
}

// Activity returns the session activity log, most recent first.
func (m *Manager) Activity(ctx context.Context, sessionID string) ([]model.ActivityEntry, error) {
	return m.repo.LoadActivity(ctx, sessionID)
}

func (m *Manager) acquire(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[sessionID] {
		return false
	}
	m.inFlight[sessionID] = true
	return true
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	delete(m.inFlight, sessionID)
	m.mu.Unlock()
}
