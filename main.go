// folio is a terminal portfolio.
//
// It shows a single scrolling page (hero, work history, tech stack,
// projects and an ask-me chat) whose sections animate in the first time
// they scroll into view. Questions go to a remote answer service.
//
// Usage:
//
//	folio [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: $XDG_CONFIG_HOME/folio/config.toml)
//	-plain          Print the page once without the interactive UI
//	-ask string     Ask one question, print the answer and exit
//	-verbose        Enable debug logging
//	-version        Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/folio/pkg/app"
	"gitlab.com/tinyland/lab/folio/pkg/askclient"
	"gitlab.com/tinyland/lab/folio/pkg/chat"
	"gitlab.com/tinyland/lab/folio/pkg/config"
	"gitlab.com/tinyland/lab/folio/pkg/content"
	"gitlab.com/tinyland/lab/folio/pkg/terminal"
	"gitlab.com/tinyland/lab/folio/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		plain       = flag.Bool("plain", false, "Print the page once without the interactive UI")
		question    = flag.String("ask", "", "Ask one question, print the answer and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("folio %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(*configPath, *plain, *question, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, plain bool, question string, verbose bool) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog := setupLogging(cfg.General, verbose)
	defer closeLog()

	page, err := content.LoadFile(cfg.General.ContentFile)
	if err != nil {
		return err
	}

	client := askclient.New(askclient.Config{
		BaseURL:   cfg.Chat.Endpoint,
		Timeout:   cfg.Chat.Timeout.Duration,
		CacheSize: cfg.Chat.CacheSize,
		CacheTTL:  cfg.Chat.CacheTTL.Duration,
		Logger:    logger.With("component", "askclient"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	caps := terminal.DetectCapabilities()
	logger.Info("starting folio",
		"version", version,
		"terminal", caps.Term.String(),
		"tty", caps.TTY,
		"cols", caps.Size.Cols,
		"rows", caps.Size.Rows,
		"endpoint", cfg.Chat.Endpoint,
	)

	var palette *theme.Theme
	if cfg.General.ThemeFile != "" {
		t, err := theme.LoadFile(cfg.General.ThemeFile)
		if err != nil {
			return err
		}
		palette = &t
	}

	opts := app.Options{
		Config:     cfg,
		Theme:      palette,
		Content:    page,
		Asker:      client,
		Profile:    caps.Profile,
		Hyperlinks: caps.Hyperlinks,
		Logger:     logger,
	}

	switch {
	case question != "":
		return askOnce(ctx, client, page, question, caps.Hyperlinks, logger)

	case plain || !caps.Interactive():
		fmt.Print(app.RenderPlain(opts, caps.Size.Cols))
		return nil

	default:
		model := app.NewAppModel(opts)
		defer model.Close()

		progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
		if caps.Mouse {
			progOpts = append(progOpts, tea.WithMouseCellMotion())
		}
		if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logger.Error("TUI error", "error", err)
			return err
		}
		return nil
	}
}

// askOnce runs one question through the chat controller, so the output
// matches what the widget would show.
func askOnce(ctx context.Context, asker chat.Asker, page *content.Content, question string, hyperlinks bool, logger *slog.Logger) error {
	c := chat.NewController(asker, logger.With("component", "chat"))
	c.SetInput(question)
	if !c.Send(ctx) {
		return errors.New("empty question")
	}

	links := chat.Links{GitHub: page.Links.GitHub, LinkedIn: page.Links.LinkedIn, Email: page.Links.Email}
	var answers []string
	for _, msg := range c.Transcript() {
		if msg.Sender != chat.AI || msg.Pending || msg.Text == chat.PlaceholderText {
			continue
		}
		text := msg.Text
		if hyperlinks {
			text = chat.Format(text, links)
		}
		answers = append(answers, text)
	}
	fmt.Println(strings.Join(answers, "\n"))

	if c.Outcome() == chat.Failed {
		return errors.New("answer service unavailable")
	}
	return nil
}

// setupLogging opens the configured log file. The TUI owns the terminal, so
// logs never go to stderr; if the file cannot be opened logging is
// discarded.
func setupLogging(cfg config.GeneralConfig, verbose bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if cfg.LogFile != "" {
		if err := ensureLogDir(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "folio: log directory: %v\n", err)
		} else if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "folio: open log file: %v\n", err)
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn
}

func ensureLogDir(logFile string) error {
	return os.MkdirAll(filepath.Dir(logFile), 0o755)
}
