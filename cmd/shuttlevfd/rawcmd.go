package main

import (
	"fmt"
	"os"

	"github.com/sagostin/shuttle-vfd/pkg/config"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// cmdRaw sends one frame given as hex, bypassing the session entirely.
// Useful for poking at the controller's undocumented commands.
func cmdRaw(cfg *config.Config, hex string) error {
	f, err := vfd.ParseFrame(hex)
	if err != nil {
		return err
	}

	snd, err := openSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	defer snd.Close()

	if *verbose {
		fmt.Fprintf(os.Stderr, "[RAW] Sending %s (%s)\n", f, f.Command())
	}

	if err := snd.SendFrame(f); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}
	return nil
}
