package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"doclib/internal/logger"
	"doclib/internal/render"
)

// Run starts the interactive session: banner, health check, then one command
// per line until an exit token or end of input. The returned error is non-nil
// only when the session could not start at all.
func Run(ctx context.Context, gw Gateway, view Displayer, out io.Writer) error {
	fmt.Fprintln(out, render.Bold.Render("Document Library Chat"))
	fmt.Fprintln(out, render.Rule(40))

	if err := printHealthBanner(ctx, gw, out); err != nil {
		return err
	}

	interp := NewInterpreter(gw, view, out)

	// When stdin is piped there is no terminal to line-edit; read plainly
	// and echo each command for transcript readability.
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runPiped(ctx, interp, out)
	}
	return runInteractive(ctx, interp, out)
}

func printHealthBanner(ctx context.Context, gw Gateway, out io.Writer) error {
	h, err := gw.Health(ctx)
	if err != nil {
		return err
	}

	if h.Status == "healthy" {
		fmt.Fprintf(out, "Server: %s | Type 'help' for commands\n\n", render.Green.Render("connected"))
		return nil
	}

	fmt.Fprintf(out, "Server: %s (some services unavailable)\n", render.Yellow.Render("degraded"))
	if !h.EmbeddingServer {
		fmt.Fprintf(out, "  %s Embedding server unavailable\n", render.Red.Render("!"))
	}
	if !h.LLMServer {
		fmt.Fprintf(out, "  %s LLM server unavailable\n", render.Red.Render("!"))
	}
	if !h.Database {
		fmt.Fprintf(out, "  %s Database unavailable\n", render.Red.Render("!"))
	}
	fmt.Fprintln(out)
	return nil
}

func prompt() string {
	return render.GreenBold.Render("You:") + " "
}

func runInteractive(ctx context.Context, interp *Interpreter, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(),
		HistoryFile:     filepath.Join(os.TempDir(), "doclib-history"),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt, io.EOF:
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		default:
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		logger.Debug("input: %q", input)

		if interp.Execute(ctx, input) {
			return nil
		}
	}
}

func runPiped(ctx context.Context, interp *Interpreter, out io.Writer) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		fmt.Fprintf(out, "%s%s\n", prompt(), input)

		if interp.Execute(ctx, input) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nGoodbye!")
	return nil
}
