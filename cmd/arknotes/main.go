package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"arknotes/internal/adapters/editor"
	"arknotes/internal/adapters/filesystem"
	"arknotes/internal/adapters/markdown"
	"arknotes/internal/adapters/remote"
	"arknotes/internal/adapters/tui"
	"arknotes/internal/application/remotesync"
	"arknotes/internal/application/workspace"
	"arknotes/internal/config"
	"arknotes/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.Open(cfg.Home, cfg.LogLevel, "arknotes")
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.Logger

	// Initialize adapters
	repo := filesystem.NewRepository(cfg.Home, log)
	doc, err := repo.LoadDocument()
	if err != nil {
		return err
	}
	settings, err := repo.LoadSettings()
	if err != nil {
		return err
	}
	session, err := repo.LoadSession()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable session")
		session = nil
	}

	client := remote.NewClient(cfg.Remote, remote.WithLogger(log), remote.WithSession(session))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := repo.Watch(ctx, filesystem.DefaultDebounce)
	if err != nil {
		log.Warn().Err(err).Msg("external changes will not be picked up")
	}

	// Create and run TUI app
	app := tui.NewApp(doc, settings, tui.Deps{
		Repo:         repo,
		Archive:      repo,
		Editor:       editor.NewOpener(""),
		Markdown:     markdown.NewRenderer(markdown.StyleNoTTY),
		Sync:         remotesync.NewService(client, log),
		Session:      session,
		Changes:      changes,
		Layout:       workspace.Layout{Cell: cfg.Cell},
		SyncInterval: cfg.SyncInterval,
		Log:          log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	log.Info().Str("home", cfg.Home).Bool("logged_in", session != nil).Msg("starting")
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
