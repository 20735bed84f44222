package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sagostin/shuttle-vfd/pkg/attr"
	"github.com/sagostin/shuttle-vfd/pkg/config"
	"github.com/sagostin/shuttle-vfd/pkg/console"
	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/server"
	"github.com/sagostin/shuttle-vfd/pkg/usbfs"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// withSession runs fn against a freshly opened session.
func withSession(cfg *config.Config, fn func(s *display.Session) error) error {
	s, snd, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer snd.Close()
	return fn(s)
}

func cmdList(cfg *config.Config) error {
	found, err := usbfs.Find(cfg.Device.SysfsRoot, cfg.Device.VendorID, cfg.Device.ProductIDs...)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("no display found")
		return nil
	}
	for _, d := range found {
		fmt.Printf("%s  %s\n", d.DevfsPath, d)
	}
	return nil
}

func cmdText(cfg *config.Config, message string) error {
	return withSession(cfg, func(s *display.Session) error {
		// the panel may still be in clock mode from an earlier run
		if err := s.Clear(); err != nil {
			return err
		}
		return s.WriteText([]byte(message))
	})
}

func cmdStyle(cfg *config.Config, style, message string) error {
	align, err := vfd.ParseAlignment(style)
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *display.Session) error {
		s.SetAlignment(align)
		if err := s.Clear(); err != nil {
			return err
		}
		return s.WriteText([]byte(message))
	})
}

func cmdIcons(cfg *config.Config, tokens string) error {
	return withSession(cfg, func(s *display.Session) error {
		if err := s.WriteIcons(tokens); err != nil {
			return err
		}
		fmt.Print(s.Icons())
		return nil
	})
}

func cmdMode(cfg *config.Config, keyword string) error {
	mode, err := vfd.ParseMode(keyword)
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *display.Session) error {
		return showMode(s, mode)
	})
}

// showMode renders mode on a fresh session. The panel may still be in clock
// mode from an earlier run, so text mode starts with a full clear.
func showMode(s *display.Session, mode vfd.Mode) error {
	if mode == vfd.ModeText {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	return s.SetMode(mode)
}

func cmdClear(cfg *config.Config) error {
	return withSession(cfg, func(s *display.Session) error {
		return s.Clear()
	})
}

func cmdShell(cfg *config.Config) error {
	return withSession(cfg, func(s *display.Session) error {
		if err := s.Init(greeting(cfg)); err != nil {
			return err
		}
		c := console.New(attr.New(s), os.Stdin, os.Stdout)
		c.SetPrompt(true)
		return c.Run()
	})
}

func cmdServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withSession(cfg, func(s *display.Session) error {
		if err := s.Init(greeting(cfg)); err != nil {
			return err
		}
		return server.New(attr.New(s), cfg.Server.Socket).Run(ctx)
	})
}
