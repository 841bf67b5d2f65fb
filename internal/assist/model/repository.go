package model

import "context"

// SessionRepository persists per-session conversation state: the append-only
// transcript and the bounded, most-recent-first activity log. The session
// manager is the only writer.
type SessionRepository interface {
	// AppendMessage appends a message to the session transcript.
	AppendMessage(ctx context.Context, sessionID string, msg Message) error

	// LoadTranscript returns the transcript in insertion order.
	LoadTranscript(ctx context.Context, sessionID string) ([]Message, error)

	// AppendActivity prepends an activity entry, evicting the oldest entries
	// beyond cap.
	AppendActivity(ctx context.Context, sessionID string, entry ActivityEntry, cap int) error

	// LoadActivity returns the activity log, most recent first.
	LoadActivity(ctx context.Context, sessionID string) ([]ActivityEntry, error)

	// Reset replaces the transcript with the single greeting message and
	// clears the activity log.
	Reset(ctx context.Context, sessionID string, greeting Message) error
}
