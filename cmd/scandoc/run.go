package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"scandoc_cli/pkg/ask"
	"scandoc_cli/pkg/config"
	"scandoc_cli/pkg/lineio"
	"scandoc_cli/pkg/logging"
	"scandoc_cli/pkg/ui"
	"scandoc_cli/pkg/version"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	ConfigPath string
	EnvFile    string
	Server     string
	LogLevel   string
	Plain      bool
	Raw        bool
}

func optionsFromContext(c *cli.Context) globalOptions {
	return globalOptions{
		ConfigPath: c.String("config"),
		EnvFile:    c.String("env-file"),
		Server:     c.String("server"),
		LogLevel:   c.String("log-level"),
		Plain:      c.Bool("plain"),
		Raw:        c.Bool("raw"),
	}
}

// resolveConfig merges the config file, .env, the environment and flags, in
// increasing order of precedence.
func resolveConfig(opts globalOptions, getenv func(string) string) (config.Config, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return config.Config{}, err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("error loading config: %w", err)
	}

	cfg = config.ApplyEnv(cfg, getenv)
	if v := strings.TrimSpace(opts.Server); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session is the resolved state shared by every command.
type session struct {
	opts   globalOptions
	cfg    config.Config
	client *ask.Client
	logs   *logging.Sink
}

func (s *session) Close() {
	if err := s.logs.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
	}
}

// setup resolves configuration, starts logging and builds the ask client.
func setup(c *cli.Context, command string) (*session, error) {
	opts := optionsFromContext(c)
	cfg, err := resolveConfig(opts, os.Getenv)
	if err != nil {
		return nil, err
	}

	logs, err := logging.Open(cfg, command)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Warning: file logging disabled: %v\n", err)
	}

	client, err := ask.NewClient(cfg.ServerURL, cfg.AskPath, ask.WithUserAgent(cfg.UserAgent))
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	slog.Info("scandoc_start",
		"version", version.Summary(),
		"endpoint", client.Endpoint(),
		"log_file", logs.Path,
	)
	return &session{opts: opts, cfg: cfg, client: client, logs: logs}, nil
}

func runInteractive(c *cli.Context) error {
	s, err := setup(c, "interactive")
	if err != nil {
		return err
	}
	defer s.Close()
	opts, cfg, client := s.opts, s.cfg, s.client

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Plain || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		slog.Info("frontend_selected", "frontend", "lineio", "plain_flag", opts.Plain)
		return lineio.Run(ctx, client, c.App.Reader, c.App.Writer, lineOptions(opts, c.App.Writer))
	}

	slog.Info("frontend_selected", "frontend", "tui")
	model := ui.NewModel(ctx, client, ui.Options{
		ServerURL: cfg.ServerURL,
		Theme:     cfg.Theme,
	})
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func runAsk(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: %s ask QUERY...", appName)
	}

	s, err := setup(c, "ask")
	if err != nil {
		return err
	}
	defer s.Close()
	opts, client := s.opts, s.client

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lineio.AskOnce(ctx, client, query, c.App.Writer, lineOptions(opts, c.App.Writer)); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

func lineOptions(opts globalOptions, out io.Writer) lineio.Options {
	lo := lineio.Options{Raw: opts.Raw}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		lo.Styled = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			lo.Width = w
		}
	}
	return lo
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
