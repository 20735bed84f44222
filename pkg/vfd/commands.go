// Package vfd implements the frame protocol of the Shuttle XPC front-panel VFD.
//
// The display is a 20x1 character VFD (5x8 dot cells) driven by a Princeton
// PT6314 controller sitting behind a Cypress CY7C63723C USB micro. Every
// message is exactly 8 bytes: a command nibble, a payload length nibble and
// up to 7 payload bytes. The controller never acknowledges anything, so the
// sender has to pace frames itself (DefaultFrameDelay).
package vfd

import "time"

const (
	// Width is the number of character cells on the display.
	Width = 20

	// FrameSize is the size of every protocol message.
	FrameSize = 8

	// PayloadSize is the maximum payload carried by one frame.
	PayloadSize = FrameSize - 1

	// DefaultFrameDelay is how long the controller needs to absorb a frame.
	DefaultFrameDelay = 24 * time.Millisecond

	// DefaultClockSettle is the extra pause between the clock data frame and
	// the clock show frame.
	DefaultClockSettle = 20 * time.Millisecond
)

// USB identifiers of the supported panels.
const (
	VendorID = 0x051C

	ProductG5M = 0x0003
	ProductG2  = 0x0005
)

// ProductIDs lists every product id known to carry this VFD.
var ProductIDs = []uint16{ProductG5M, ProductG2}

// Command is the high nibble of the first frame byte.
type Command byte

const (
	CmdClear     Command = 0x1 // clear text and icons, or just the cursor
	CmdClockShow Command = 0x3 // switch to the controller's built-in clock
	CmdIcons     Command = 0x7 // icon mask, 4 x 5 bits
	CmdText      Command = 0x9 // up to 7 characters at the cursor
	CmdClockData Command = 0xD // set the controller's clock
)

// Payload values for CmdClear and CmdClockShow.
const (
	clearAll    = 0x01 // text + icons
	clearCursor = 0x02 // reset the text cursor, keep the text
	clockShow   = 0x03
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdClear:
		return "clear"
	case CmdClockShow:
		return "clock-show"
	case CmdIcons:
		return "icons"
	case CmdText:
		return "text"
	case CmdClockData:
		return "clock-data"
	default:
		return "unknown"
	}
}
