package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"flowribbon/internal/app"
	"flowribbon/internal/config"
	"flowribbon/internal/dataset"
	"flowribbon/internal/logger"
	"flowribbon/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run holds everything main does so deferred cleanup happens before exit.
func run(args []string) error {
	fs := flag.NewFlagSet("flowribbon", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "config file (json, yaml or toml)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: flowribbon [--config file] [dataset]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		cfg.Dataset = fs.Arg(0)
	}

	lg, closer, err := logger.Open(logger.Config{
		Level:     cfg.Log.Level,
		Console:   cfg.Log.Console,
		Component: "flowribbon",
	}, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	coords := dataset.Default()
	if cfg.Dataset != "" {
		coords, err = dataset.Load(cfg.Dataset)
		if err != nil {
			lg.Error().Err(err).Str("path", cfg.Dataset).Msg("failed to load dataset")
			return err
		}
	}
	lg.Info().Str("path", cfg.Dataset).Int("points", len(coords)).Msg("dataset loaded")

	state, err := app.New(cfg, coords, lg)
	if err != nil {
		lg.Error().Err(err).Msg("startup failed")
		return err
	}

	m := tui.New(state, cfg.Frame.FPS)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		lg.Error().Err(err).Msg("program exited with error")
		return err
	}
	return nil
}
