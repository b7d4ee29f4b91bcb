package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"biocryptor/internal/domain"
	"biocryptor/internal/integrations/langflow"
	"biocryptor/internal/metrics"
)

const defaultMaxMessage = 8000

// Upstream runs the chat flow for one message.
type Upstream interface {
	Run(ctx context.Context, sessionID, message string) (langflow.Reply, error)
}

type SendInput struct {
	Message   string
	SessionID string
}

type SendOutput struct {
	Response  string
	SessionID string
}

// RelayService forwards chat messages to the upstream flow and normalizes the
// result. It holds no per-conversation state.
type RelayService struct {
	upstream      Upstream
	maxMessageLen int
	now           func() time.Time
}

func NewRelayService(u Upstream, maxMessageLen int) (*RelayService, error) {
	if u == nil {
		return nil, errors.New("usecase: upstream must not be nil")
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessage
	}
	return &RelayService{
		upstream:      u,
		maxMessageLen: maxMessageLen,
		now:           time.Now,
	}, nil
}

func (s *RelayService) Send(ctx context.Context, in SendInput) (SendOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return SendOutput{}, newError(ErrorValidation, "empty_message", nil)
	}
	if utf8.RuneCountInString(in.Message) > s.maxMessageLen {
		return SendOutput{}, newError(ErrorValidation, "message_too_long", nil)
	}

	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = domain.NewSessionID(s.now())
		metrics.SessionsStarted.Inc()
	}

	reply, err := s.upstream.Run(ctx, sessionID, in.Message)
	if err != nil {
		return SendOutput{}, classify(err)
	}

	out := SendOutput{Response: reply.Text, SessionID: reply.SessionID}
	if out.SessionID == "" {
		out.SessionID = sessionID
	}
	return out, nil
}

func classify(err error) *Error {
	var statusErr *langflow.HTTPStatusError
	var transportErr *langflow.TransportError
	switch {
	case errors.As(err, &statusErr):
		e := newError(ErrorUpstream, "langflow_status", err)
		e.Status = statusErr.HTTPStatusCode()
		e.Detail = statusErr.Body
		return e
	case errors.Is(err, langflow.ErrMalformedResponse):
		return newError(ErrorResponseParse, "langflow_malformed_json", err)
	case errors.Is(err, langflow.ErrUnexpectedShape):
		return newError(ErrorContentShape, "langflow_unexpected_shape", err)
	case errors.As(err, &transportErr):
		return newError(ErrorNetwork, "langflow_unreachable", err)
	default:
		return newError(ErrorUnknown, "relay_failed", err)
	}
}
