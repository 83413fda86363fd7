//go:build linux

package cmd

import (
	"io"
	"log/slog"

	"github.com/makbe/makbe/report"
)

func newUinput(path, name string, logger *slog.Logger) (report.Reporter, io.Closer, error) {
	u, err := report.NewUinput(path, name, logger)
	if err != nil {
		return nil, nil, err
	}
	return u, u, nil
}
