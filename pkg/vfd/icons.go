package vfd

import (
	"errors"
	"fmt"
	"strings"
)

// Mask is the icon state of the display.
//
// Bits 0-14 are the base field, one bit per icon. Bits 15-18 are the volume
// field, which holds a level 0-12 rather than a set of bits. Clear and Set
// live above the wire range and only ever appear in an accumulated request.
type Mask uint32

// Base icons.
const (
	IconTelevision  Mask = 1 << 0
	IconCDDVD       Mask = 1 << 1
	IconMusic       Mask = 1 << 2
	IconRadio       Mask = 1 << 3
	IconClock       Mask = 1 << 4
	IconPause       Mask = 1 << 5
	IconPlay        Mask = 1 << 6
	IconRecord      Mask = 1 << 7
	IconRewind      Mask = 1 << 8
	IconCamera      Mask = 1 << 9
	IconMute        Mask = 1 << 10
	IconRepeat      Mask = 1 << 11
	IconReverse     Mask = 1 << 12
	IconFastForward Mask = 1 << 13
	IconStop        Mask = 1 << 14
)

const (
	volumeShift = 15

	// MaxVolume is the highest volume level the panel shows.
	MaxVolume = 12

	// BaseMask selects the base field.
	BaseMask Mask = 0x7FFF

	// VolumeMask selects the volume field.
	VolumeMask Mask = 0xF << volumeShift

	// All turns every base icon on with volume at its maximum.
	All Mask = BaseMask | MaxVolume<<volumeShift

	// Clear forces the whole mask to zero.
	Clear Mask = 1 << 28

	// Set assigns the accumulated mask instead of toggling it.
	Set Mask = 1 << 29
)

// Volume returns the mask value for a volume level.
func Volume(level int) Mask {
	return Mask(level) << volumeShift & VolumeMask
}

// Base returns the base field.
func (m Mask) Base() Mask {
	return m & BaseMask
}

// Volume returns the volume level, 0 when off.
func (m Mask) Volume() int {
	return int(m&VolumeMask) >> volumeShift
}

// WithVolume replaces the volume level, keeping the base field.
func (m Mask) WithVolume(level int) Mask {
	return m&^VolumeMask | Volume(level)
}

// Has reports whether every bit of icon is set.
func (m Mask) Has(icon Mask) bool {
	return m&icon == icon
}

// Icon is one entry of the icon catalog.
type Icon struct {
	Name    string
	AltName string // empty when the icon has a single name
	Value   Mask
}

// Label returns the name used when reporting the icon.
func (i Icon) Label() string {
	if i.AltName != "" {
		return i.AltName
	}
	return i.Name
}

// baseIcons is ordered the way icon state is reported.
var baseIcons = []Icon{
	{"clk", "clock", IconClock},
	{"rad", "radio", IconRadio},
	{"mus", "music", IconMusic},
	{"cd", "dvd", IconCDDVD},
	{"tv", "tele", IconTelevision},
	{"cam", "camera", IconCamera},
	{"rew", "rewind", IconRewind},
	{"rec", "record", IconRecord},
	{"pl", "play", IconPlay},
	{"pa", "pause", IconPause},
	{"st", "stop", IconStop},
	{"ff", "", IconFastForward},
	{"rev", "reverse", IconReverse},
	{"rep", "repeat", IconRepeat},
	{"mute", "vol0", IconMute},
}

var controlIcons = []Icon{
	{"all", "world", All},
	{"clear", "none", Clear},
	{"=", "", Set},
}

// iconsByName indexes primary and alternate names.
var iconsByName = func() map[string]Mask {
	m := make(map[string]Mask, 2*(len(baseIcons)+len(controlIcons)))
	for _, list := range [][]Icon{baseIcons, controlIcons} {
		for _, icon := range list {
			m[icon.Name] = icon.Value
			if icon.AltName != "" {
				m[icon.AltName] = icon.Value
			}
		}
	}
	return m
}()

// Icons returns the 15 base icons in reporting order.
func Icons() []Icon {
	out := make([]Icon, len(baseIcons))
	copy(out, baseIcons)
	return out
}

// Resolve maps one token to its mask value. Besides the catalog names it
// accepts vol1 through vol12.
func Resolve(token string) (Mask, error) {
	if v, ok := iconsByName[token]; ok {
		return v, nil
	}

	switch {
	case len(token) == 4 && strings.HasPrefix(token, "vol") &&
		token[3] >= '1' && token[3] <= '9':
		return Volume(int(token[3] - '0')), nil
	case len(token) == 5 && strings.HasPrefix(token, "vol1") &&
		token[4] >= '0' && token[4] <= '2':
		return Volume(10 + int(token[4]-'0')), nil
	}

	return 0, &UnknownIconError{Token: token}
}

// Tokenize splits an icon request on commas, spaces and newlines. Input
// stops at the first NUL. Empty tokens are dropped.
func Tokenize(input string) []string {
	if i := strings.IndexByte(input, 0); i >= 0 {
		input = input[:i]
	}
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n'
	})
}

// Apply resolves tokens and folds them into current.
//
// Resolved values are OR-ed into one request, with the last volume level
// replacing earlier ones, then:
//   - Clear anywhere in the request switches everything off;
//   - Set assigns the request as the new state;
//   - a request carrying a volume level replaces the current level, and
//     asking again for the level already shown turns the volume off; base
//     bits in the same request still toggle;
//   - otherwise the request toggles base icons.
//
// Unknown tokens are skipped. The returned error joins one
// *UnknownIconError per skipped token and does not invalidate the mask.
func Apply(current Mask, tokens []string) (Mask, error) {
	var req Mask
	var errs []error

	for _, tok := range tokens {
		v, err := Resolve(tok)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		// the volume field holds one level; the last one asked for wins
		if v&VolumeMask != 0 {
			req = req.WithVolume(v.Volume())
		}
		req |= v &^ VolumeMask
	}

	var next Mask
	switch {
	case req&Clear != 0:
		next = 0
	case req&Set != 0:
		next = req &^ Set
	case req >= Volume(1):
		if current&VolumeMask == req&VolumeMask {
			req &= BaseMask
		}
		next = current.Base() ^ req
	default:
		next = current ^ req
	}

	return next, errors.Join(errs...)
}

// IconNames lists the set base icons in catalog order, followed by volN
// when a volume level is shown.
func IconNames(m Mask) []string {
	var names []string
	for _, icon := range baseIcons {
		if m&icon.Value != 0 {
			names = append(names, icon.Label())
		}
	}
	if v := m.Volume(); v > 0 {
		names = append(names, fmt.Sprintf("vol%d", v))
	}
	return names
}

// FormatIcons renders IconNames space separated, or "none".
func FormatIcons(m Mask) string {
	names := IconNames(m)
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}
