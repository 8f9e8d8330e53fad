//go:build windows

package cmd

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

const serviceName = "ColorHoster"

func install(logger *slog.Logger) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	if existing, err := m.OpenService(serviceName); err == nil {
		existing.Close()
		return fmt.Errorf("service %s already exists", serviceName)
	}

	winSvc, err := m.CreateService(serviceName, exePath, mgr.Config{
		DisplayName: "ColorHoster OpenRGB SDK server",
		StartType:   mgr.StartAutomatic,
	})
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer winSvc.Close()

	logger.Info("ColorHoster Windows service installed", "exe", exePath)
	return startService(logger)
}

func uninstall(logger *slog.Logger) error {
	if err := stopService(logger); err != nil {
		logger.Warn("failed to stop service before removal", "error", err)
	}

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	winSvc, err := m.OpenService(serviceName)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer winSvc.Close()

	if err := winSvc.Delete(); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	logger.Info("ColorHoster Windows service removed")
	return nil
}

func startService(logger *slog.Logger) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	winSvc, err := m.OpenService(serviceName)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer winSvc.Close()

	if err := winSvc.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	logger.Info("ColorHoster service started")
	return nil
}

func stopService(logger *slog.Logger) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	winSvc, err := m.OpenService(serviceName)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer winSvc.Close()

	if _, err := winSvc.Control(svc.Stop); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	logger.Info("ColorHoster service stopped")
	return nil
}
