// Package widget is the chat widget controller: it owns the visible
// conversation and the session id, and allows one outstanding proxy request
// at a time.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"biocryptor/internal/domain"
	"biocryptor/internal/i18n"
	"biocryptor/internal/markdown"
)

var (
	ErrEmptyMessage = errors.New("widget: message is empty")
	ErrBusy         = errors.New("widget: a reply is still pending")
	// ErrConversationReset is returned by Send when NewChat was called while
	// the request was in flight. The late reply is discarded.
	ErrConversationReset = errors.New("widget: conversation was reset")
)

type State int

const (
	StateIdle State = iota
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting-reply"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is what the proxy returns for one message.
type Result struct {
	Response  string
	SessionID string
}

// Sender delivers one message to the chat proxy.
type Sender interface {
	Send(ctx context.Context, message, sessionID string) (Result, error)
}

// networkFailure is implemented by errors that never reached the proxy.
type networkFailure interface {
	NetworkFailure() bool
}

type Controller struct {
	sender Sender
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	loc       i18n.Localizer
	messages  []domain.ChatMessage
	sessionID string
	state     State
	epoch     uint64
	cancel    context.CancelFunc
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func NewController(sender Sender, loc i18n.Localizer, opts ...Option) (*Controller, error) {
	if sender == nil {
		return nil, errors.New("widget: sender must not be nil")
	}
	c := &Controller{
		sender: sender,
		logger: slog.Default(),
		now:    time.Now,
		loc:    loc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send appends the user turn immediately, waits for the proxy and appends
// the assistant turn. Proxy failures become a localized assistant turn and
// are not returned as errors. It returns the appended assistant turn.
func (c *Controller) Send(ctx context.Context, input string) (domain.ChatMessage, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state == StateAwaitingReply {
		c.mu.Unlock()
		return domain.ChatMessage{}, ErrBusy
	}
	newConversation := len(c.messages) == 0
	c.messages = append(c.messages, c.newMessage(text, domain.RoleUser))
	c.state = StateAwaitingReply
	epoch := c.epoch
	sessionID := c.sessionID
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	res, err := c.sender.Send(reqCtx, text, sessionID)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug("dropping reply for reset conversation", "session_id", sessionID)
		return domain.ChatMessage{}, ErrConversationReset
	}
	c.state = StateIdle
	c.cancel = nil

	if err != nil {
		c.logger.Error("chat proxy request failed", "session_id", sessionID, "err", err)
		reply := c.newMessage(c.loc.T(errorKey(err)), domain.RoleAssistant)
		c.messages = append(c.messages, reply)
		return reply, nil
	}

	if newConversation || c.sessionID == "" {
		c.sessionID = res.SessionID
	}
	reply := c.newMessage(res.Response, domain.RoleAssistant)
	c.messages = append(c.messages, reply)
	return reply, nil
}

// NewChat clears the conversation and the session id from any state and
// cancels an outstanding request.
func (c *Controller) NewChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.epoch++
	c.messages = nil
	c.sessionID = ""
	c.state = StateIdle
}

func (c *Controller) SetLanguage(lang i18n.Language) {
	c.mu.Lock()
	c.loc = i18n.New(lang)
	c.mu.Unlock()
}

func (c *Controller) Localizer() i18n.Localizer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the conversation with response times filled in
// for assistant turns that answer a user turn.
func (c *Controller) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return withResponseTimes(c.messages)
}

// Entry is one rendered transcript line.
type Entry struct {
	Message domain.ChatMessage
	Author  string
	HTML    string
}

// View renders the conversation for display in the current language.
func (c *Controller) View() []Entry {
	c.mu.Lock()
	msgs := withResponseTimes(c.messages)
	loc := c.loc
	c.mu.Unlock()

	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		author := loc.T(i18n.KeyChatYou)
		if m.Role == domain.RoleAssistant {
			author = loc.T(i18n.KeyChatAssistant)
		}
		entries = append(entries, Entry{
			Message: m,
			Author:  author,
			HTML:    markdown.Render(m.Content),
		})
	}
	return entries
}

func (c *Controller) newMessage(content string, role domain.Role) domain.ChatMessage {
	now := c.now()
	return domain.ChatMessage{
		ID:        domain.NewMessageID(now),
		Content:   content,
		Role:      role,
		Timestamp: now,
	}
}

func errorKey(err error) string {
	var nf networkFailure
	if errors.As(err, &nf) && nf.NetworkFailure() {
		return i18n.KeyErrorNetwork
	}
	return i18n.KeyErrorAPIConnection
}

func withResponseTimes(msgs []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	for i := 1; i < len(out); i++ {
		if out[i].Role == domain.RoleAssistant && out[i-1].Role == domain.RoleUser {
			out[i].ResponseTime = FormatResponseTime(out[i].Timestamp.Sub(out[i-1].Timestamp))
		}
	}
	return out
}

// FormatResponseTime renders an elapsed time as "<1sn", "42sn" or "2d 5sn".
func FormatResponseTime(d time.Duration) string {
	seconds := int(d / time.Second)
	switch {
	case seconds < 1:
		return "<1sn"
	case seconds < 60:
		return fmt.Sprintf("%dsn", seconds)
	default:
		return fmt.Sprintf("%dd %dsn", seconds/60, seconds%60)
	}
}
