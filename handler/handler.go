package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"biocryptor/internal/metrics"
	"biocryptor/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

const (
	msgMessageRequired  = "Message is required"
	msgInvalidBody      = "Request body must be a JSON object"
	msgMessageTooLong   = "Message is too long"
	msgMethodNotAllowed = "Method not allowed"
	msgUpstreamFailed   = "Upstream request failed: "
	msgParseFailed      = "Could not parse the chat service response"
	msgShapeUnexpected  = "Unexpected response format from the chat service"
	msgUnknown          = "An unknown error occurred"
)

// Relayer is implemented by *usecase.RelayService.
type Relayer interface {
	Send(ctx context.Context, in usecase.SendInput) (usecase.SendOutput, error)
}

type chatRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler is the chat proxy function.
type Handler struct {
	relay  Relayer
	logger *slog.Logger
}

func NewHandler(relay Relayer, logger *slog.Logger) (*Handler, error) {
	if relay == nil {
		return nil, errors.New("handler: relay must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{relay: relay, logger: logger}, nil
}

// Handle answers one API Gateway proxy event. It never returns a non-nil
// error: every failure is translated into an HTTP response.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	log := h.logger.With("correlation_id", corrID)

	switch event.HTTPMethod {
	case http.MethodOptions:
		return preflight(corrID), nil
	case http.MethodPost:
	default:
		metrics.RelayRequestsTotal.WithLabelValues("METHOD_NOT_ALLOWED").Inc()
		return jsonResponse(http.StatusMethodNotAllowed, corrID, errorResponse{Error: msgMethodNotAllowed}), nil
	}

	raw, err := requestBody(event)
	if err != nil {
		log.Warn("undecodable request body", "err", err)
		metrics.RelayRequestsTotal.WithLabelValues(string(usecase.ErrorValidation)).Inc()
		return jsonResponse(http.StatusBadRequest, corrID, errorResponse{Error: msgInvalidBody}), nil
	}

	var req chatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Warn("invalid request body", "err", err)
		metrics.RelayRequestsTotal.WithLabelValues(string(usecase.ErrorValidation)).Inc()
		return jsonResponse(http.StatusBadRequest, corrID, errorResponse{Error: msgInvalidBody}), nil
	}
	if req.Message == nil {
		metrics.RelayRequestsTotal.WithLabelValues(string(usecase.ErrorValidation)).Inc()
		return jsonResponse(http.StatusBadRequest, corrID, errorResponse{Error: msgMessageRequired}), nil
	}

	out, err := h.relay.Send(ctx, usecase.SendInput{
		Message:   *req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		status, body, code := mapError(err)
		metrics.RelayRequestsTotal.WithLabelValues(code).Inc()
		if code == string(usecase.ErrorValidation) {
			log.Warn("chat request rejected", "code", code, "err", err)
		} else {
			log.Error("chat relay failed", "code", code, "status", status, "err", err)
		}
		return jsonResponse(status, corrID, body), nil
	}

	metrics.RelayRequestsTotal.WithLabelValues("OK").Inc()
	log.Info("chat relayed", "session_id", out.SessionID)
	return jsonResponse(http.StatusOK, corrID, chatResponse{
		Response:  out.Response,
		SessionID: out.SessionID,
	}), nil
}

// requestBody returns the raw JSON body. An absent body is treated as an
// empty object so that it fails on the missing message.
func requestBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("handler: decode base64 body: %w", err)
		}
		body = string(decoded)
	}
	if strings.TrimSpace(body) == "" {
		return []byte("{}"), nil
	}
	return []byte(body), nil
}

func mapError(err error) (int, errorResponse, string) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, errorResponse{Error: msgUnknown}, string(usecase.ErrorUnknown)
	}
	code := string(ue.Code)
	switch ue.Code {
	case usecase.ErrorValidation:
		if ue.Reason == "message_too_long" {
			return http.StatusBadRequest, errorResponse{Error: msgMessageTooLong}, code
		}
		return http.StatusBadRequest, errorResponse{Error: msgMessageRequired}, code
	case usecase.ErrorUpstream:
		status := ue.Status
		// Only statuses API Gateway cannot return are replaced.
		if status < 300 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, errorResponse{Error: msgUpstreamFailed + ue.Detail}, code
	case usecase.ErrorResponseParse:
		return http.StatusBadRequest, errorResponse{Error: msgParseFailed}, code
	case usecase.ErrorContentShape:
		return http.StatusBadRequest, errorResponse{Error: msgShapeUnexpected}, code
	case usecase.ErrorNetwork:
		return http.StatusInternalServerError, errorResponse{Error: msgUnknown}, code
	default:
		return http.StatusInternalServerError, errorResponse{Error: msgUnknown}, string(usecase.ErrorUnknown)
	}
}

func correlationID(headers map[string]string) string {
	if v := headerValue(headers, correlationHeader); v != "" {
		return v
	}
	return uuid.NewString()
}

// headerValue looks a header up case-insensitively; API Gateway passes
// header names through as the client sent them.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func corsHeaders(corrID string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		correlationHeader:              corrID,
	}
}

func preflight(corrID string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(corrID),
		Body:       "",
	}
}

func jsonResponse(status int, corrID string, payload any) events.APIGatewayProxyResponse {
	headers := corsHeaders(corrID)
	headers["Content-Type"] = "application/json"

	body, err := json.Marshal(payload)
	if err != nil {
		// Only reachable with an unmarshalable payload type.
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       fmt.Sprintf(`{"error":%q}`, msgUnknown),
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}
