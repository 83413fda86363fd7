//go:build !linux

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/makbe/makbe/report"
)

func newUinput(string, string, *slog.Logger) (report.Reporter, io.Closer, error) {
	return nil, nil, errors.New("uinput output requires linux")
}
