//go:build !linux

package cmd

import (
	"errors"
	"log/slog"

	"github.com/makbe/makbe/internal/log"
)

func (c *Host) Run(*slog.Logger, log.RawLogger) error {
	return errors.New("host mode requires linux")
}
