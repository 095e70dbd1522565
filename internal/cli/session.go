package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/permitpath/permitpath"
	"github.com/permitpath/permitpath/internal/presentation/tui"
	"github.com/permitpath/permitpath/pkg/domain"
)

// RunWalkthrough executes a single interactive permit walkthrough.
func RunWalkthrough(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if !opts.JSON {
		tui.PrintBanner(permitpath.Version)
	}

	app, err := NewApp(opts, logger)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()
	ctx := sigCtx.Context

	sessionID := opts.SessionID
	var prompt *domain.Prompt

	if opts.Fresh && sessionID != "" {
		// Discard any previous state under this ID before starting over.
		_ = app.EndWalkthrough(ctx, sessionID)
	}

	resumed := false
	if sessionID != "" && !opts.Fresh {
		prompt, err = app.NextQuestion(ctx, sessionID)
		switch {
		case err == nil:
			resumed = true
		case errors.Is(err, domain.ErrSessionNotFound):
			// Fall through and start a new walkthrough.
		default:
			return err
		}
	}

	if !resumed {
		sessionID, prompt, err = app.StartWalkthrough(ctx, opts.ProjectType)
		if err != nil {
			return err
		}
	}

	logSessionStatus(logger, sessionID, resumed, opts.JSON)

	render := tui.NewRenderer()
	reader := bufio.NewScanner(os.Stdin)

	for prompt != nil {
		displayPrompt(prompt, render, opts.JSON)

		if !reader.Scan() {
			if err := reader.Err(); err != nil {
				return err
			}
			if sig := sigCtx.Signal(); sig != nil {
				fmt.Println()
			}
			printSystemMessage("Walkthrough paused. Resume with --session %s", sessionID)
			return nil
		}
		line := strings.TrimSpace(reader.Text())

		handled, quit, err := handleCommand(ctx, app, sessionID, line, &prompt, opts.JSON)
		if err != nil {
			return err
		}
		if quit {
			printSystemMessage("Walkthrough paused. Resume with --session %s", sessionID)
			return nil
		}
		if handled {
			continue
		}

		value := parseInput(prompt.Question, line, opts.JSON)

		next, validation, err := app.SubmitAnswer(ctx, sessionID, prompt.Question.ID, value)
		if err != nil {
			return err
		}
		if !validation.Valid {
			printValidationError(validation.Error, opts.JSON)
			continue
		}
		prompt = next
	}

	return finishWalkthrough(ctx, app, sessionID, opts)
}

// handleCommand intercepts slash commands typed in place of an answer.
// Returns handled=false for ordinary answers.
func handleCommand(ctx context.Context, app *permitpath.App, sessionID, line string, prompt **domain.Prompt, jsonMode bool) (handled, quit bool, err error) {
	if !strings.HasPrefix(line, "/") {
		return false, false, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, true, nil
	case "/review":
		items, err := app.Review(ctx, sessionID)
		if err != nil {
			return true, false, err
		}
		printReview(items, jsonMode)
		return true, false, nil
	case "/back":
		if len(fields) < 2 {
			printSystemMessage("Usage: /back <question-id>")
			return true, false, nil
		}
		p, err := app.Rewind(ctx, sessionID, fields[1])
		if errors.Is(err, domain.ErrNotInHistory) {
			printSystemMessage("'%s' has not been answered yet.", fields[1])
			return true, false, nil
		}
		if err != nil {
			return true, false, err
		}
		*prompt = p
		return true, false, nil
	default:
		printSystemMessage("Unknown command %s (try /back, /review, /quit)", fields[0])
		return true, false, nil
	}
}

func logSessionStatus(logger *slog.Logger, sessionID string, resumed, quiet bool) {
	if resumed {
		logger.Info("walkthrough resumed", "session_id", sessionID)
		if !quiet {
			printSystemMessage("Resuming walkthrough '%s'...", sessionID)
		}
	} else {
		logger.Info("walkthrough started", "session_id", sessionID)
		if !quiet {
			printSystemMessage("Walkthrough '%s' started.", sessionID)
		}
	}
}

// displayPrompt prints the current question, its options and progress.
func displayPrompt(p *domain.Prompt, render func(string) (string, error), jsonMode bool) {
	if jsonMode {
		data, _ := json.Marshal(p)
		fmt.Println(string(data))
		return
	}

	fmt.Println()
	fmt.Printf("Question %d of ~%d  %s\n", p.Number, p.Total, tui.ProgressBar(p.Progress, 20))

	text := p.Question.Text
	if rendered, err := render(text); err == nil {
		text = strings.TrimRight(rendered, "\n")
	}
	fmt.Println(text)

	switch p.Question.Type {
	case domain.KindYesNo:
		fmt.Println("  [yes/no]")
	case domain.KindSelect, domain.KindMultiSelect:
		for _, opt := range p.Question.Options {
			fmt.Printf("  - %s: %s\n", opt.Value, opt.Label)
		}
		if p.Question.Type == domain.KindMultiSelect {
			fmt.Println("  (comma-separated values)")
		}
	case domain.KindNumber:
		if p.Question.Unit != "" {
			fmt.Printf("  (in %s)\n", p.Question.Unit)
		}
	}
	fmt.Print("> ")
}

// parseInput converts a raw input line into the answer value the
// question expects. Unparseable input is passed through as-is so
// validation can report the proper message.
func parseInput(q domain.Question, line string, jsonMode bool) any {
	if jsonMode {
		var v any
		if err := json.Unmarshal([]byte(line), &v); err == nil {
			return v
		}
		return line
	}

	if line == "" {
		return nil
	}

	switch q.Type {
	case domain.KindYesNo:
		switch strings.ToLower(line) {
		case "y", "yes":
			return "yes"
		case "n", "no":
			return "no"
		}
		return line
	case domain.KindNumber:
		if n, ok := domain.ParseNumber(line); ok {
			return n
		}
		return line
	case domain.KindMultiSelect:
		parts := strings.Split(line, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		return values
	default:
		return line
	}
}

func printValidationError(message string, jsonMode bool) {
	if jsonMode {
		data, _ := json.Marshal(map[string]any{"valid": false, "error": message})
		fmt.Println(string(data))
		return
	}
	p := termenv.ColorProfile()
	fmt.Println(termenv.String("  ✗ " + message).Foreground(p.Color("#f87171")))
}
