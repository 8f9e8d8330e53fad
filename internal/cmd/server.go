package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Azarattum/ColorHoster/internal/logging"
	"github.com/Azarattum/ColorHoster/internal/openrgb"
	"github.com/Azarattum/ColorHoster/internal/profiles"
	"github.com/Azarattum/ColorHoster/internal/registry"
	"github.com/Azarattum/ColorHoster/internal/via"
)

// Server is the default command: it loads VIA device definitions, brings up
// the device registry, and serves the OpenRGB SDK protocol until the
// process is signalled to stop.
type Server struct {
	Dir         string   `short:"d" help:"Directory of VIA keyboard-definition JSON files" type:"existingdir"`
	Files       []string `short:"j" help:"Explicit VIA keyboard-definition JSON files" type:"existingfile"`
	Passthrough bool     `short:"b" help:"Do not reset keyboard brightness on startup"`
	ProfilesDir string   `name:"profiles" help:"Directory for saved lighting profiles" default:"profiles" placeholder:"DIR"`
	Port        int      `short:"p" help:"OpenRGB SDK server port" default:"6742"`
	Service     string   `short:"s" help:"Manage the background service" enum:",create,delete,start,stop" default:""`
}

// Run is called by Kong when the server command is executed (the CLI's
// default command, so it also runs when no subcommand is given).
func (s *Server) Run(logger *slog.Logger, rawLogger logging.RawLogger) error {
	if s.Service != "" {
		return s.runService(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx, logger, rawLogger)
}

// Serve wires the parsed device configs into a registry and runs the
// OpenRGB server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, logger *slog.Logger, rawLogger logging.RawLogger) error {
	configs, err := s.loadConfigs()
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		return fmt.Errorf("no VIA keyboard definitions found (use -d or -j)")
	}
	names := make([]string, len(configs))
	for i, cfg := range configs {
		names[i] = cfg.Name
	}
	logger.Info("loaded keyboard definitions", "count", len(configs), "names", names)

	reg, err := registry.New(ctx, configs, logger)
	if err != nil {
		return fmt.Errorf("failed to start device registry: %w", err)
	}
	defer reg.Close()

	if !s.Passthrough {
		for _, kb := range reg.All() {
			kb.ResetBrightness()
		}
	}

	if err := profiles.EnsureDir(s.ProfilesDir); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	srv := openrgb.New(reg, s.ProfilesDir, logger)
	srv.SetRawLogger(rawLogger)

	addr := fmt.Sprintf(":%d", s.Port)
	ln, err := srv.Listen(addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	logger.Info("OpenRGB SDK server listening", "addr", addr)

	return srv.Serve(ctx, ln)
}

func (s *Server) loadConfigs() ([]*via.Config, error) {
	var paths []string
	if s.Dir != "" {
		entries, err := os.ReadDir(s.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read device directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			paths = append(paths, filepath.Join(s.Dir, e.Name()))
		}
	}
	paths = append(paths, s.Files...)

	var configs []*via.Config
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		cfg, err := via.Parse(data)
		if err != nil {
			// A malformed definition is skipped rather than aborting startup;
			// the rest of the fleet should still come up.
			continue
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}
