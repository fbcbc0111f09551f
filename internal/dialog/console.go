package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ConsolePrompter drives the modal dialog surface over stdin/stdout. It is
// the default host implementation; a windowed shell can swap in its own
// Prompter without touching the broker.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
	log zerolog.Logger
}

func NewConsolePrompter(log zerolog.Logger) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		log: log,
	}
}

func (p *ConsolePrompter) PromptPermission(ctx context.Context, prompt PermissionPrompt) (PromptChoice, error) {
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n", prompt.Title, prompt.Message, prompt.Detail)
	fmt.Fprintln(p.out, "  [1] Open System Preferences")
	fmt.Fprintln(p.out, "  [2] Cancel")
	fmt.Fprintln(p.out, "  [3] I've already done this")
	fmt.Fprint(p.out, "> ")

	line, err := p.readLine(ctx)
	if err != nil {
		return ChoiceCancel, err
	}

	switch strings.TrimSpace(line) {
	case "1":
		return ChoiceOpenSettings, nil
	case "3":
		return ChoiceAlreadyGranted, nil
	default:
		return ChoiceCancel, nil
	}
}

func (p *ConsolePrompter) SaveFile(ctx context.Context, req SaveRequest) (string, error) {
	fmt.Fprintf(p.out, "\n%s (default %q, blank to cancel)\n", req.ButtonLabel, req.DefaultName)
	for _, f := range req.Filters {
		fmt.Fprintf(p.out, "  %s: %s\n", f.Name, strings.Join(f.Extensions, ", "))
	}
	fmt.Fprint(p.out, "path> ")

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *ConsolePrompter) Confirm(ctx context.Context, title, message string) (bool, error) {
	fmt.Fprintf(p.out, "\n%s\n%s [y/N] ", title, message)

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (p *ConsolePrompter) Alert(ctx context.Context, title, message string) error {
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, message)
	return nil
}

func (p *ConsolePrompter) ShowError(title, message string) {
	fmt.Fprintf(p.out, "\nERROR: %s\n%s\n", title, message)
}

// readLine blocks on stdin but still honors context cancellation; an
// abandoned read goroutine is accepted since stdin reads cannot be
// interrupted portably.
func (p *ConsolePrompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && res.line == "" {
			return "", fmt.Errorf("read dialog input: %w", res.err)
		}
		return res.line, nil
	}
}

// ConsoleSharer prints the share-sheet payload. Real share-sheet integration
// belongs to the mobile shell, which supplies its own Sharer.
type ConsoleSharer struct {
	out io.Writer
	log zerolog.Logger
}

func NewConsoleSharer(log zerolog.Logger) *ConsoleSharer {
	return &ConsoleSharer{out: os.Stdout, log: log}
}

func (s *ConsoleSharer) Share(ctx context.Context, req ShareRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\n%s\n%s\n%s\n", req.DialogTitle, req.Text, req.URL)
	return nil
}
