package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// currentExecutable resolves the path used in generated service unit files.
func currentExecutable() (string, error) {
	return os.Executable()
}

// runService dispatches the -s flag to the platform-specific service
// manager. install/uninstall/startService/stopService are implemented per
// GOOS in install_linux.go, install_windows.go and install_other.go.
func (s *Server) runService(logger *slog.Logger) error {
	switch s.Service {
	case "create":
		return install(logger)
	case "delete":
		return uninstall(logger)
	case "start":
		return startService(logger)
	case "stop":
		return stopService(logger)
	default:
		return fmt.Errorf("unknown service action: %s", s.Service)
	}
}
