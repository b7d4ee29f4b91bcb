package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"biocryptor/internal/cli"
	"biocryptor/internal/config"
	"biocryptor/internal/i18n"
	"biocryptor/internal/integrations/proxyclient"
	"biocryptor/internal/widget"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env file", "err", err)
	}

	url := flag.String("url", envOr("CHAT_PROXY_URL", "http://localhost:8888/api/chat"), "chat proxy endpoint")
	lang := flag.String("lang", "", "display language (en or tr); defaults to $LANG")
	html := flag.Bool("html", false, "print replies as rendered HTML")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	verbose := flag.Bool("v", false, "log request failures to stderr")
	flag.Parse()

	level := slog.LevelError + 4
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	selected := localeLanguage(os.Getenv("LANG"))
	if *lang != "" {
		l, ok := i18n.ParseLanguage(*lang)
		if !ok {
			logger.Error("unsupported language", "lang", *lang)
			os.Exit(2)
		}
		selected = l
	}

	client, err := proxyclient.New(*url, proxyclient.WithHTTPClient(&http.Client{Timeout: *timeout}))
	if err != nil {
		slog.Error("failed to create proxy client", "err", err)
		os.Exit(1)
	}
	ctrl, err := widget.NewController(client, i18n.New(selected), widget.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create chat controller", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repl := cli.NewREPL(ctrl, os.Stdout)
	repl.HTML = *html
	if err := repl.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		slog.Error("chat ended", "err", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// localeLanguage reads a POSIX locale such as "tr_TR.UTF-8".
func localeLanguage(locale string) i18n.Language {
	tag, _, _ := strings.Cut(locale, ".")
	if l, ok := i18n.ParseLanguage(strings.ReplaceAll(tag, "_", "-")); ok {
		return l
	}
	return i18n.English
}
