//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errNoService = errors.New("service installation requires systemd on linux")

func install(serviceArgs, *slog.Logger) error { return errNoService }

func uninstall(*slog.Logger) error { return errNoService }
