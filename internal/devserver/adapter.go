package devserver

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 64 << 10

// LambdaHandler is the API Gateway proxy function signature.
type LambdaHandler interface {
	Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// lambdaAdapter serves a LambdaHandler over plain HTTP.
type lambdaAdapter struct {
	fn     LambdaHandler
	logger *slog.Logger
}

func (a lambdaAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, `{"error":"Request body too large"}`, http.StatusRequestEntityTooLarge)
		return
	}

	resp, err := a.fn.Handle(r.Context(), toProxyRequest(r, body))
	if err != nil {
		a.logger.Error("lambda handler returned error", "err", err)
		http.Error(w, `{"error":"An unknown error occurred"}`, http.StatusInternalServerError)
		return
	}
	writeProxyResponse(w, resp, a.logger)
}

func toProxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	query := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return events.APIGatewayProxyRequest{
		Resource:                        r.URL.Path,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               map[string][]string(r.Header.Clone()),
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: map[string][]string(r.URL.Query()),
		Body:                            string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  chimw.GetReqID(r.Context()),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Identity:   events.APIGatewayRequestIdentity{SourceIP: r.RemoteAddr},
		},
	}
}

func writeProxyResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse, logger *slog.Logger) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			logger.Error("undecodable base64 response body", "err", err)
			http.Error(w, `{"error":"An unknown error occurred"}`, http.StatusInternalServerError)
			return
		}
		body = decoded
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn("write response body", "err", err)
	}
}
