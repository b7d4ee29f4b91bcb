// Package cli is a line-oriented front end for the chat widget.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"biocryptor/internal/i18n"
	"biocryptor/internal/widget"
)

// REPL reads one message per line and prints the assistant replies.
type REPL struct {
	ctrl *widget.Controller
	out  io.Writer
	// HTML prints rendered markdown instead of the raw reply.
	HTML bool
}

func NewREPL(ctrl *widget.Controller, out io.Writer) *REPL {
	return &REPL{ctrl: ctrl, out: out}
}

// Run loops until in is exhausted, /quit is entered or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	r.banner()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		r.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := r.command(line)
			if err != nil {
				fmt.Fprintf(r.out, "! %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		loc := r.ctrl.Localizer()
		fmt.Fprintf(r.out, "%s\n", loc.T(i18n.KeyChatThinking))
		reply, err := r.ctrl.Send(ctx, line)
		switch {
		case errors.Is(err, widget.ErrConversationReset):
			continue
		case err != nil:
			fmt.Fprintf(r.out, "! %v\n", err)
			continue
		}
		r.printReply(loc, reply.Content)
	}
}

func (r *REPL) command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/new":
		r.ctrl.NewChat()
		fmt.Fprintf(r.out, "-- %s --\n", r.ctrl.Localizer().T(i18n.KeyChatNewChat))
		r.banner()
		return false, nil
	case "/lang":
		if len(fields) != 2 {
			return false, errors.New("usage: /lang <en|tr>")
		}
		lang, ok := i18n.ParseLanguage(fields[1])
		if !ok {
			return false, fmt.Errorf("unsupported language %q", fields[1])
		}
		r.ctrl.SetLanguage(lang)
		r.banner()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s (try /new, /lang, /quit)", fields[0])
	}
}

func (r *REPL) banner() {
	loc := r.ctrl.Localizer()
	fmt.Fprintf(r.out, "%s | %s\n", loc.T(i18n.KeyChatTitle), loc.T(i18n.KeyChatSubtitle))
	if len(r.ctrl.Messages()) == 0 {
		fmt.Fprintf(r.out, "%s\n", loc.T(i18n.KeyChatStartMessage))
	}
}

func (r *REPL) prompt() {
	fmt.Fprintf(r.out, "%s> ", r.ctrl.Localizer().T(i18n.KeyChatYou))
}

func (r *REPL) printReply(loc i18n.Localizer, content string) {
	view := r.ctrl.View()
	if len(view) == 0 {
		return
	}
	last := view[len(view)-1]
	body := content
	if r.HTML {
		body = strings.TrimRight(last.HTML, "\n")
	}
	if last.Message.ResponseTime != "" {
		fmt.Fprintf(r.out, "%s (%s):\n%s\n", loc.T(i18n.KeyChatAssistant), last.Message.ResponseTime, body)
		return
	}
	fmt.Fprintf(r.out, "%s:\n%s\n", loc.T(i18n.KeyChatAssistant), body)
}
