//go:build !linux && !windows

package cmd

import (
	"fmt"
	"log/slog"
)

func install(logger *slog.Logger) error {
	return fmt.Errorf("service management is not supported on this platform")
}

func uninstall(logger *slog.Logger) error {
	return fmt.Errorf("service management is not supported on this platform")
}

func startService(logger *slog.Logger) error {
	return fmt.Errorf("service management is not supported on this platform")
}

func stopService(logger *slog.Logger) error {
	return fmt.Errorf("service management is not supported on this platform")
}
