package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"biocryptor/internal/integrations/langflow"
	"biocryptor/internal/usecase"
)

type stubRelay struct {
	out    usecase.SendOutput
	err    error
	in     usecase.SendInput
	called bool
}

func (s *stubRelay) Send(_ context.Context, in usecase.SendInput) (usecase.SendOutput, error) {
	s.in = in
	s.called = true
	return s.out, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(t *testing.T, r Relayer) *Handler {
	t.Helper()
	h, err := NewHandler(r, quietLogger())
	require.NoError(t, err)
	return h
}

func makeEvent(body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/chat",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func parseBody[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func requireCORS(t *testing.T, resp events.APIGatewayProxyResponse) {
	t.Helper()
	require.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	require.NotEmpty(t, resp.Headers["X-Correlation-Id"])
}

func TestNewHandler_ValidatesDependency(t *testing.T) {
	_, err := NewHandler(nil, nil)
	require.Error(t, err)
}

func TestHandle_HappyPath(t *testing.T) {
	relay := &stubRelay{out: usecase.SendOutput{Response: "hello", SessionID: "s-1"}}
	h := newTestHandler(t, relay)

	resp, err := h.Handle(context.Background(), makeEvent(`{"message":"What is BioCryptor?","sessionId":"s-1"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, usecase.SendInput{Message: "What is BioCryptor?", SessionID: "s-1"}, relay.in)
	require.Equal(t, "application/json", resp.Headers["Content-Type"])
	requireCORS(t, resp)

	out := parseBody[chatResponse](t, resp.Body)
	require.Equal(t, "hello", out.Response)
	require.Equal(t, "s-1", out.SessionID)
}

func TestHandle_ExactContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"outputs":[{"outputs":[{"results":{"message":{"text":"hi there"}}}]}]}`))
	}))
	defer srv.Close()

	client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	relay, err := usecase.NewRelayService(client, 0)
	require.NoError(t, err)
	h := newTestHandler(t, relay)

	resp, err := h.Handle(context.Background(), makeEvent(`{"message":"hello","sessionId":"s1"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"response":"hi there","sessionId":"s1"}`, resp.Body)
}

func TestHandle_Preflight(t *testing.T) {
	relay := &stubRelay{}
	h := newTestHandler(t, relay)

	event := makeEvent("")
	event.HTTPMethod = http.MethodOptions
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Body)
	require.Equal(t, "POST, OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
	requireCORS(t, resp)
	require.False(t, relay.called)
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, ""} {
		relay := &stubRelay{}
		h := newTestHandler(t, relay)

		event := makeEvent(`{"message":"hi"}`)
		event.HTTPMethod = method
		resp, err := h.Handle(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "method=%q", method)
		requireCORS(t, resp)
		require.False(t, relay.called)
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	relay := &stubRelay{}
	h := newTestHandler(t, relay)

	resp, err := h.Handle(context.Background(), makeEvent(`not-json`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	requireCORS(t, resp)
	require.False(t, relay.called)
}

func TestHandle_MissingMessage(t *testing.T) {
	for _, body := range []string{``, `{}`, `null`, `{"sessionId":"s1"}`} {
		relay := &stubRelay{}
		h := newTestHandler(t, relay)

		resp, err := h.Handle(context.Background(), makeEvent(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body=%q", body)
		require.Equal(t, "Message is required", parseBody[errorResponse](t, resp.Body).Error)
		require.False(t, relay.called)
	}
}

func TestHandle_EmptyMessageNeverReachesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("upstream must not be called")
	}))
	defer srv.Close()

	client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	relay, err := usecase.NewRelayService(client, 0)
	require.NoError(t, err)
	h := newTestHandler(t, relay)

	for _, msg := range []string{`""`, `"   "`, `"\n\t"`} {
		resp, err := h.Handle(context.Background(), makeEvent(`{"message":`+msg+`}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Message is required", parseBody[errorResponse](t, resp.Body).Error)
	}
}

func TestHandle_Base64Body(t *testing.T) {
	relay := &stubRelay{out: usecase.SendOutput{Response: "ok", SessionID: "s"}}
	h := newTestHandler(t, relay)

	event := makeEvent(base64.StdEncoding.EncodeToString([]byte(`{"message":"hi"}`)))
	event.IsBase64Encoded = true
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hi", relay.in.Message)

	event.Body = "%%%"
	resp, err = h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandle_MapsUseCaseErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "validation", err: &usecase.Error{Code: usecase.ErrorValidation, Reason: "empty_message"}, status: http.StatusBadRequest, msg: "Message is required"},
		{name: "too long", err: &usecase.Error{Code: usecase.ErrorValidation, Reason: "message_too_long"}, status: http.StatusBadRequest, msg: "Message is too long"},
		{name: "upstream 401", err: &usecase.Error{Code: usecase.ErrorUpstream, Reason: "langflow_status", Status: http.StatusUnauthorized, Detail: "bad key"}, status: http.StatusUnauthorized, msg: "Upstream request failed: bad key"},
		{name: "upstream 503", err: &usecase.Error{Code: usecase.ErrorUpstream, Reason: "langflow_status", Status: http.StatusServiceUnavailable}, status: http.StatusServiceUnavailable, msg: "Upstream request failed: "},
		{name: "parse", err: &usecase.Error{Code: usecase.ErrorResponseParse, Reason: "langflow_malformed_json"}, status: http.StatusBadRequest, msg: msgParseFailed},
		{name: "shape", err: &usecase.Error{Code: usecase.ErrorContentShape, Reason: "langflow_unexpected_shape"}, status: http.StatusBadRequest, msg: msgShapeUnexpected},
		{name: "network", err: &usecase.Error{Code: usecase.ErrorNetwork, Reason: "langflow_unreachable"}, status: http.StatusInternalServerError, msg: msgUnknown},
		{name: "upstream 304", err: &usecase.Error{Code: usecase.ErrorUpstream, Reason: "langflow_status", Status: http.StatusNotModified}, status: http.StatusNotModified, msg: "Upstream request failed: "},
		{name: "upstream status unset", err: &usecase.Error{Code: usecase.ErrorUpstream, Reason: "langflow_status"}, status: http.StatusBadGateway, msg: "Upstream request failed: "},
		{name: "unknown code", err: &usecase.Error{Code: usecase.ErrorUnknown, Reason: "relay_failed"}, status: http.StatusInternalServerError, msg: msgUnknown},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, msg: msgUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, &stubRelay{err: tc.err})

			resp, err := h.Handle(context.Background(), makeEvent(`{"message":"hello"}`))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			require.Equal(t, "application/json", resp.Headers["Content-Type"])
			requireCORS(t, resp)
			require.Equal(t, tc.msg, parseBody[errorResponse](t, resp.Body).Error)
		})
	}
}

func TestHandle_UpstreamStatusEndToEnd(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("upstream says no"))
		}))

		client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
		require.NoError(t, err)
		relay, err := usecase.NewRelayService(client, 0)
		require.NoError(t, err)

		resp, err := newTestHandler(t, relay).Handle(context.Background(), makeEvent(`{"message":"hello"}`))
		srv.Close()
		require.NoError(t, err)
		require.Equal(t, status, resp.StatusCode)
		require.Equal(t, "Upstream request failed: upstream says no", parseBody[errorResponse](t, resp.Body).Error)
	}
}

func TestHandle_MalformedUpstreamBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"outputs": [`))
	}))
	defer srv.Close()

	client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	relay, err := usecase.NewRelayService(client, 0)
	require.NoError(t, err)

	resp, err := newTestHandler(t, relay).Handle(context.Background(), makeEvent(`{"message":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, msgParseFailed, parseBody[errorResponse](t, resp.Body).Error)
}

func TestHandle_UsesProvidedCorrelationID_CaseInsensitive(t *testing.T) {
	h := newTestHandler(t, &stubRelay{out: usecase.SendOutput{Response: "ok", SessionID: "s"}})

	event := makeEvent(`{"message":"hello"}`)
	event.Headers["x-correlation-id"] = "corr-123"
	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, "corr-123", resp.Headers["X-Correlation-Id"])
}

func TestHeaderValue(t *testing.T) {
	headers := map[string]string{"accept-language": " tr-TR ", "X-Empty": "  "}
	require.Equal(t, "tr-TR", headerValue(headers, "Accept-Language"))
	require.Empty(t, headerValue(headers, "X-Empty"))
	require.Empty(t, headerValue(nil, "Accept-Language"))
}

func TestHandle_UnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	srv.Close()

	relay, err := usecase.NewRelayService(client, 0)
	require.NoError(t, err)

	resp, err := newTestHandler(t, relay).Handle(context.Background(), makeEvent(`{"message":"hello","sessionId":"s1"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, msgUnknown, parseBody[errorResponse](t, resp.Body).Error)
	requireCORS(t, resp)
}

func TestHandle_UpstreamRedirectStatusPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		_, _ = w.Write([]byte("pick one"))
	}))
	defer srv.Close()

	client, err := langflow.NewClient(srv.URL, "flow", langflow.StaticCredentials{}, langflow.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	relay, err := usecase.NewRelayService(client, 0)
	require.NoError(t, err)

	resp, err := newTestHandler(t, relay).Handle(context.Background(), makeEvent(`{"message":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusMultipleChoices, resp.StatusCode)
	require.Equal(t, "Upstream request failed: pick one", parseBody[errorResponse](t, resp.Body).Error)
}
