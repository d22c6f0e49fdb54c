// Package gateway turns an inbound chat request into a model reply and records
// the completed turn in the session store.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/cloudwego/eino/schema"

	apperrors "github.com/zhouzirui/aoc-chat/backend/internal/errors"
	"github.com/zhouzirui/aoc-chat/backend/internal/model/chat"
)

// ErrCompleterUnavailable is reported when no model backend is configured.
var ErrCompleterUnavailable = errors.New("completion service not configured")

// Completer produces the next assistant message for a conversation.
type Completer interface {
	Complete(ctx context.Context, history []*schema.Message, query string) (string, error)
}

// SessionRecorder folds a completed turn into session storage.
type SessionRecorder interface {
	RecordTurn(ctx context.Context, sessionID, userMessage, reply string) (chat.Session, error)
}

// Request is one chat submission. History is kept as raw JSON so entries with
// an unexpected shape can be skipped individually.
type Request struct {
	Message   string
	History   json.RawMessage
	SessionID string
}

// Gateway validates, completes and records chat turns.
type Gateway struct {
	completer Completer
	sessions  SessionRecorder
}

// New wires a gateway. completer may be nil, in which case every submission
// fails as an external service error.
func New(completer Completer, sessions SessionRecorder) *Gateway {
	return &Gateway{completer: completer, sessions: sessions}
}

// Submit runs one chat turn and returns the assistant reply. The session store
// is only touched after the model answered.
func (g *Gateway) Submit(ctx context.Context, req Request) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", apperrors.NewValidationError("Message is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}

	if g.completer == nil {
		log.Printf("[chat] session=%s rejected: %v", sessionID, ErrCompleterUnavailable)
		return "", apperrors.NewExternalServiceError("completion", ErrCompleterUnavailable)
	}

	history := FilterHistory(req.History)

	reply, err := g.completer.Complete(ctx, history, message)
	if err != nil {
		log.Printf("[chat] completion failed for session=%s: %v", sessionID, err)
		return "", apperrors.NewExternalServiceError("completion", err)
	}

	if _, err := g.sessions.RecordTurn(ctx, sessionID, message, reply); err != nil {
		return "", err
	}

	return reply, nil
}

// FilterHistory keeps the user and assistant entries of raw whose content is
// a JSON string, preserving order. Anything else is dropped silently.
func FilterHistory(raw json.RawMessage) []*schema.Message {
	if len(raw) == 0 {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	history := make([]*schema.Message, 0, len(entries))
	for _, entry := range entries {
		var item struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(entry, &item); err != nil {
			continue
		}
		if !chat.IsConversational(item.Role) {
			continue
		}

		// null would otherwise decode into an empty string.
		trimmed := bytes.TrimSpace(item.Content)
		if len(trimmed) == 0 || trimmed[0] != '"' {
			continue
		}
		var content string
		if err := json.Unmarshal(trimmed, &content); err != nil {
			continue
		}

		history = append(history, &schema.Message{
			Role:    schema.RoleType(item.Role),
			Content: content,
		})
	}

	return history
}
