package terminal

import (
	"strconv"
	"strings"

	"github.com/maddestlabs/tstorie/pkg/events"
)

// Key codes for non-printable keys, carved out of the Unicode
// private-use area so ASCII control codes and named keys share one
// KeyCode space.
const (
	KeyEscape uint32 = 0xE000 + iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
)

// Parser turns a stream of raw stdin bytes into InputEvent values,
// buffering a partial escape sequence across Feed calls the way a
// terminal's read loop delivers bytes in arbitrary chunk boundaries.
// Handles single-byte keys, CSI cursor keys, and SGR mouse reports
// (CSI < btn ; x ; y M/m).
type Parser struct {
	pending []byte
}

// NewParser returns an empty Parser.
func NewParser() *Parser { return &Parser{} }

// Feed appends data to the parser's buffer and returns every complete
// event it can decode from the result, leaving any trailing partial
// escape sequence buffered for the next call.
func (p *Parser) Feed(data []byte) []events.InputEvent {
	p.pending = append(p.pending, data...)
	var out []events.InputEvent

	for len(p.pending) > 0 {
		n, evs := decodeOne(p.pending)
		if n == 0 {
			// Incomplete sequence at the tail; wait for more bytes.
			break
		}
		out = append(out, evs...)
		p.pending = p.pending[n:]
	}
	return out
}

// decodeOne attempts to decode from the front of buf. Returns the
// number of bytes consumed (0 means "need more data") and the events
// produced; a printable ASCII byte yields two, the Key carrying its
// keysym and then the Text carrying the grapheme.
func decodeOne(buf []byte) (int, []events.InputEvent) {
	b := buf[0]

	if b == 0x1b {
		n, ev, ok := decodeEscape(buf)
		if !ok {
			return n, nil
		}
		return n, []events.InputEvent{ev}
	}
	if b == '\r' || b == '\n' {
		return 1, []events.InputEvent{events.Key(KeyEnter, events.Mods{}, events.Press)}
	}
	if b == '\t' {
		return 1, []events.InputEvent{events.Key(KeyTab, events.Mods{}, events.Press)}
	}
	if b == 0x7f {
		return 1, []events.InputEvent{events.Key(KeyBackspace, events.Mods{}, events.Press)}
	}
	if b < 0x20 {
		return 1, []events.InputEvent{events.Key(uint32(b), events.Mods{Ctrl: true}, events.Press)}
	}
	if b < 0x80 {
		return 1, []events.InputEvent{keyForPrintable(b), events.TextEvent(string(b))}
	}

	// Multi-byte UTF-8: consume the full rune as one grapheme-ish text
	// event. Combining sequences are reassembled upstream by the layer
	// that accumulates TextEvents into grapheme clusters, not here.
	n := utf8SeqLen(b)
	if n == 0 {
		// Invalid lead byte; drop it and keep decoding.
		return 1, nil
	}
	if n > len(buf) {
		return 0, nil
	}
	return n, []events.InputEvent{events.TextEvent(string(buf[:n]))}
}

// keyForPrintable maps a printable ASCII byte to its Key event. Letters
// use the lowercase letter as keysym with Shift set for uppercase, so
// bindings match on one code regardless of case; everything else keys
// on the byte itself.
func keyForPrintable(b byte) events.InputEvent {
	mods := events.Mods{}
	if b >= 'A' && b <= 'Z' {
		mods.Shift = true
		b += 'a' - 'A'
	}
	return events.Key(uint32(b), mods, events.Press)
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// decodeEscape handles the ESC-prefixed family: Alt+<char>, CSI cursor
// and editing keys, and CSI SGR mouse reports. SS3 sequences (ESC O ...)
// and unrecognised CSI sequences are consumed without an event, so no
// function-key events are produced. A lone ESC byte stays buffered until
// the next byte arrives and is then read as an Alt prefix; KeyEscape is
// never emitted.
func decodeEscape(buf []byte) (int, events.InputEvent, bool) {
	if len(buf) == 1 {
		return 0, events.InputEvent{}, false // wait for more: could be Alt+key or bare Esc
	}
	if buf[1] != '[' && buf[1] != 'O' {
		// Alt+<char>: treat as the char with Alt set.
		return 2, events.Key(uint32(buf[1]), events.Mods{Alt: true}, events.Press), true
	}

	if len(buf) == 2 {
		return 0, events.InputEvent{}, false
	}

	// Find the terminating byte of the CSI/SS3 sequence: a letter or '~'.
	end := -1
	for i := 2; i < len(buf); i++ {
		c := buf[i]
		if (c >= '@' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '~' {
			end = i
			break
		}
	}
	if end == -1 {
		if len(buf) > 32 {
			// Malformed or unrecognised sequence this long; drop the
			// prefix rather than stalling forever.
			return 2, events.InputEvent{}, false
		}
		return 0, events.InputEvent{}, false
	}

	seq := buf[:end+1]
	n := end + 1

	if buf[1] == '[' && buf[2] == '<' {
		ev, ok := decodeSGRMouse(seq)
		return n, ev, ok
	}

	switch string(seq) {
	case "\x1b[A":
		return n, events.Key(KeyUp, events.Mods{}, events.Press), true
	case "\x1b[B":
		return n, events.Key(KeyDown, events.Mods{}, events.Press), true
	case "\x1b[C":
		return n, events.Key(KeyRight, events.Mods{}, events.Press), true
	case "\x1b[D":
		return n, events.Key(KeyLeft, events.Mods{}, events.Press), true
	case "\x1b[H", "\x1b[1~":
		return n, events.Key(KeyHome, events.Mods{}, events.Press), true
	case "\x1b[F", "\x1b[4~":
		return n, events.Key(KeyEnd, events.Mods{}, events.Press), true
	case "\x1b[3~":
		return n, events.Key(KeyDelete, events.Mods{}, events.Press), true
	default:
		// Unrecognised CSI sequence (e.g. a Kitty-keyboard response or
		// device status report); consume it silently rather than
		// re-parsing it byte-by-byte as text.
		return n, events.InputEvent{}, false
	}
}

// decodeSGRMouse decodes "\x1b[<btn;x;y M" (press) or "...m" (release)
// into a mouse event. x/y in the wire format are 1-based.
func decodeSGRMouse(seq []byte) (events.InputEvent, bool) {
	body := string(seq[3 : len(seq)-1]) // strip "\x1b[<" and trailing M/m
	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return events.InputEvent{}, false
	}
	btn, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return events.InputEvent{}, false
	}
	released := seq[len(seq)-1] == 'm'

	mods := events.Mods{
		Shift: btn&4 != 0,
		Alt:   btn&8 != 0,
		Ctrl:  btn&16 != 0,
	}
	motion := btn&32 != 0
	px, py := uint16(x-1), uint16(y-1)

	if motion {
		return events.MouseMoveEvent(px, py, mods), true
	}

	// The wheel bit must be tested before the low-2-bit button code:
	// wheel reports are 64 (up) / 65 (down), whose low bits collide
	// with left/middle.
	var button events.MouseButtonID
	if btn&64 != 0 {
		if btn&0x1 != 0 {
			button = events.MouseScrollDown
		} else {
			button = events.MouseScrollUp
		}
	} else {
		switch btn & 0x3 {
		case 0:
			button = events.MouseLeft
		case 1:
			button = events.MouseMiddle
		case 2:
			button = events.MouseRight
		default:
			// 3 is the X10 "no button" marker; SGR encodes release via
			// the trailing 'm' instead, so nothing to report here.
			return events.InputEvent{}, false
		}
	}
	action := events.Press
	if released {
		action = events.Release
	}
	return events.MouseButtonEvent(px, py, button, action, mods), true
}
