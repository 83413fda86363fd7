//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

const (
	serviceName = "makbe.service"
	servicePath = "/etc/systemd/system/makbe.service"
)

func install(args serviceArgs, logger *slog.Logger) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	if err := os.WriteFile(servicePath, []byte(systemdUnitContent(exePath, args)), 0o644); err != nil {
		return err
	}
	for _, step := range [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	} {
		if err := runSystemctl(step...); err != nil {
			return err
		}
	}

	logger.Info("makbe systemd service installed", "path", servicePath, "exe", exePath, "layout", args.layout)
	return nil
}

func uninstall(logger *slog.Logger) error {
	var errs []error
	if err := runSystemctl("stop", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := runSystemctl("disable", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("makbe systemd service removed", "path", servicePath)
	return nil
}

// systemdUnitContent returns a unit that restarts the scan loop when it
// exits with an error.
func systemdUnitContent(exePath string, args serviceArgs) string {
	return fmt.Sprintf(`[Unit]
Description=makbe keyboard controller
After=systemd-udev-settle.service

[Service]
Type=simple
ExecStart=%q run --layout %q --bus %d --output %s
Restart=on-failure
RestartSec=1

[Install]
WantedBy=multi-user.target
`, exePath, args.layout, args.bus, args.output)
}

func runSystemctl(args ...string) error {
	cmd := exec.Command("systemctl", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
