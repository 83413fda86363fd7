//go:build linux

package report

import (
	"fmt"
	"log/slog"

	"github.com/bendahl/uinput"
)

// Uinput reports through a virtual keyboard created on /dev/uinput.
type Uinput struct {
	*Keys
	kbd uinput.Keyboard
}

// NewUinput creates a virtual keyboard named name on the uinput device at path.
func NewUinput(path, name string, logger *slog.Logger) (*Uinput, error) {
	kbd, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard: %w", err)
	}
	return &Uinput{Keys: NewKeys(kbd, logger), kbd: kbd}, nil
}

// Close releases held keys and destroys the virtual keyboard.
func (u *Uinput) Close() error {
	relErr := u.ReleaseAll()
	if err := u.kbd.Close(); err != nil {
		return err
	}
	return relErr
}
