// Package app wires the chat proxy function from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"biocryptor/handler"
	"biocryptor/internal/config"
	"biocryptor/internal/integrations/langflow"
	"biocryptor/internal/integrations/paramstore"
	"biocryptor/internal/usecase"
)

// NewLogger returns a slog logger at the configured level. JSON output is
// for CloudWatch, text output for local runs.
func NewLogger(cfg *config.Config, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Credentials picks SSM when a parameter prefix is configured and the
// environment values otherwise.
func Credentials(ctx context.Context, cfg *config.Config) (langflow.CredentialSource, error) {
	if cfg.ParamPrefix == "" {
		return langflow.StaticCredentials{APIKey: cfg.APIKey, Token: cfg.Token}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, fmt.Errorf("app: create SSM client: %w", err)
	}
	creds, err := langflow.NewParamStoreCredentials(ssmClient, cfg.ParamPrefix)
	if err != nil {
		return nil, fmt.Errorf("app: create credential source: %w", err)
	}
	return creds, nil
}

// NewHandler builds the proxy function on top of the given credentials.
func NewHandler(cfg *config.Config, creds langflow.CredentialSource, logger *slog.Logger) (*handler.Handler, error) {
	client, err := langflow.NewClient(cfg.LangflowBaseURL, cfg.FlowID, creds, langflow.WithTimeout(cfg.UpstreamTimeout))
	if err != nil {
		return nil, fmt.Errorf("app: create langflow client: %w", err)
	}
	relay, err := usecase.NewRelayService(client, cfg.MaxMessageLength)
	if err != nil {
		return nil, fmt.Errorf("app: create relay service: %w", err)
	}
	h, err := handler.NewHandler(relay, logger)
	if err != nil {
		return nil, fmt.Errorf("app: create handler: %w", err)
	}
	return h, nil
}
