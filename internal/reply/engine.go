// Package reply generates the conversational reply that follows the
// delegation pipeline, backed by a Gemini chat model. The runtime is treated
// as an optional capability: when it is missing or failing, Reply falls back
// to a fixed apology and the service keeps routing normally.
package reply

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/supplysight/assistant-core/internal/assist/model"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

// Apology is the fixed reply used whenever the assistant runtime cannot
// produce one. Routing has already happened by the time this is shown.
const Apology = "Sorry, I can't write a full reply right now, but I can still open the right workspace for you."

// maxHistoryMessages bounds how much transcript is sent to the model.
const maxHistoryMessages = 12

// Engine wraps the Gemini chat model behind the Replier contract.
type Engine struct {
	model        *gemini.ChatModel
	modelName    string
	systemPrompt string

	// unix nanos of the most recent generation failure; read by the prober.
	lastFailure atomic.Int64
}

// NewEngine builds the reply engine. A missing API key is not an error: the
// engine starts in offline mode and every reply is the apology.
func NewEngine(ctx context.Context, apiKey, baseURL string, cfg model.ReplyConfig) (*Engine, error) {
	e := &Engine{modelName: cfg.Model}

	sys, err := renderSystemPrompt(ctx)
	if err != nil {
		return nil, err
	}
	e.systemPrompt = sys

	if apiKey == "" {
		logx.Warn().Msg("no Gemini API key configured, reply engine starts offline")
		return e, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("error creating Gemini client, reply engine starts offline")
		return e, nil
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("error creating reply model, reply engine starts offline")
		return e, nil
	}

	e.model = chatModel
	return e, nil
}

// Available reports whether a chat model is wired at all.
func (e *Engine) Available() bool {
	return e != nil && e.model != nil
}

// Reply generates the assistant reply for the transcript. It never fails:
// every error path terminates in the fixed apology.
func (e *Engine) Reply(ctx context.Context, transcript []model.Message) string {
	if !e.Available() {
		return Apology
	}

	out, err := e.model.Generate(ctx, e.buildMessages(transcript))
	if err != nil {
		e.lastFailure.Store(time.Now().UnixNano())
		logx.Warn().Err(err).Str("model", e.modelName).Msg("reply generation failed")
		return Apology
	}
	content := ""
	if out != nil {
		content = strings.TrimSpace(out.Content)
	}
	if content == "" {
		e.lastFailure.Store(time.Now().UnixNano())
		logx.Warn().Str("model", e.modelName).Msg("reply generation returned empty content")
		return Apology
	}
	return content
}

func (e *Engine) buildMessages(transcript []model.Message) []*schema.Message {
	recent := transcript
	if len(recent) > maxHistoryMessages {
		recent = recent[len(recent)-maxHistoryMessages:]
	}

	msgs := make([]*schema.Message, 0, len(recent)+1)
	msgs = append(msgs, schema.SystemMessage(e.systemPrompt))
	for _, m := range recent {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case model.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		case model.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		}
	}
	return msgs
}

// recentFailure reports whether a generation failed within the window.
func (e *Engine) recentFailure(window time.Duration) bool {
	last := e.lastFailure.Load()
	if last == 0 {
		return false
	}
	return time.Since(time.Unix(0, last)) < window
}
