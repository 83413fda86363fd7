package cmd

import "log/slog"

// Check validates a layout and summarizes it.
type Check struct {
	LayoutFlag `embed:""`
}

func (c *Check) Run(logger *slog.Logger) error {
	kb, err := c.keyboard(logger)
	if err != nil {
		return err
	}

	wired := 0
	for _, ref := range kb.Pool.Refs() {
		if len(kb.Pins(ref)) == 0 {
			logger.Warn("Switch is not wired to any pin", "switch", kb.Pool.Name(ref))
			continue
		}
		wired++
	}
	for _, d := range kb.Devices {
		if !d.HasAssigned() {
			logger.Warn("Device has no switch with actions", "device", d)
			continue
		}
		logger.Debug("Device", "device", d, "pins", d.Family().Pins())
	}
	logger.Info("Layout OK",
		"name", kb.Name,
		"switches", kb.Pool.Len(),
		"wired", wired,
		"devices", len(kb.Devices),
		"unbound_pins", kb.Unbound(),
		"host_keys", kb.HostKeys(),
		"debounce", kb.Debounce)
	return nil
}
