package vfd

import (
	"errors"
	"fmt"
)

// Protocol and session errors.
var (
	// ErrUnknownIcon indicates an icon token that matches nothing.
	ErrUnknownIcon = errors.New("unknown icon")

	// ErrInvalidArgument indicates an unrecognized mode or style keyword.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport indicates the frame sender failed.
	ErrTransport = errors.New("transport failure")

	// ErrTimeSource indicates the current time could not be read.
	ErrTimeSource = errors.New("time source unavailable")

	// ErrFrameFormat indicates a malformed raw frame.
	ErrFrameFormat = errors.New("malformed frame")
)

// UnknownIconError reports a single token that did not resolve.
type UnknownIconError struct {
	Token string
}

func (e *UnknownIconError) Error() string {
	return fmt.Sprintf("unknown icon %q", e.Token)
}

func (e *UnknownIconError) Unwrap() error {
	return ErrUnknownIcon
}
