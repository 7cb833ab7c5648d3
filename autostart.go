package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"go.uber.org/zap"
)

func setupAutostart(enable bool, log *zap.Logger) error {
	// Get the executable path
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	app := &autostart.App{
		Name:        "timehub",
		DisplayName: "TimeHub",
		Exec:        []string{execPath},
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		log.Info("autostart enabled", zap.String("exec", execPath))
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		log.Info("autostart disabled")
	}

	return nil
}
