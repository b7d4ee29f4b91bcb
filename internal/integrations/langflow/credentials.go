package langflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Credentials are sent on every run-flow call: APIKey as x-api-key and Token
// as a bearer token.
type Credentials struct {
	APIKey string
	Token  string
}

type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials serves credentials taken from the environment. Empty
// values are allowed; the upstream then rejects the call.
type StaticCredentials Credentials

func (s StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// BatchGetter is satisfied by *paramstore.Client.
type BatchGetter interface {
	GetParameters(ctx context.Context, names ...string) (map[string]string, error)
}

// tokenPayload is the JSON shape stored in each SSM parameter.
type tokenPayload struct {
	Token string `json:"token"`
}

// ParamStoreCredentials loads credentials from <prefix>/langflow-api-key and
// <prefix>/hf-token on first use. Successful loads are cached for the life of
// the process; failures are retried on the next call.
type ParamStoreCredentials struct {
	getter BatchGetter
	prefix string

	mu     sync.RWMutex
	loaded bool
	creds  Credentials
}

func NewParamStoreCredentials(getter BatchGetter, prefix string) (*ParamStoreCredentials, error) {
	if getter == nil {
		return nil, errors.New("langflow: paramstore getter must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("langflow: parameter prefix must not be empty")
	}
	return &ParamStoreCredentials{getter: getter, prefix: prefix}, nil
}

func (p *ParamStoreCredentials) apiKeyName() string { return p.prefix + "/langflow-api-key" }
func (p *ParamStoreCredentials) tokenName() string  { return p.prefix + "/hf-token" }

func (p *ParamStoreCredentials) Credentials(ctx context.Context) (Credentials, error) {
	p.mu.RLock()
	if p.loaded {
		creds := p.creds
		p.mu.RUnlock()
		return creds, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return p.creds, nil
	}

	vals, err := p.getter.GetParameters(ctx, p.apiKeyName(), p.tokenName())
	if err != nil {
		return Credentials{}, fmt.Errorf("langflow: fetch credentials from paramstore: %w", err)
	}
	apiKey, err := decodeToken(vals[p.apiKeyName()])
	if err != nil {
		return Credentials{}, fmt.Errorf("langflow: api key: %w", err)
	}
	token, err := decodeToken(vals[p.tokenName()])
	if err != nil {
		return Credentials{}, fmt.Errorf("langflow: bearer token: %w", err)
	}

	p.creds = Credentials{APIKey: apiKey, Token: token}
	p.loaded = true
	return p.creds, nil
}

func decodeToken(raw string) (string, error) {
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("unmarshal paramstore value as JSON: %w", err)
	}
	if tp.Token == "" {
		return "", errors.New("token is empty")
	}
	return tp.Token, nil
}
