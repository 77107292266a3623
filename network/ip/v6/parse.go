package ipv6

import (
	"github.com/pkg/errors"
)

type state uint8

const (
	// stateStart handles a leading "::".
	stateStart state = iota
	// stateGroupOrCompress is positioned at the start of a group or at the
	// second ':' of a "::".
	stateGroupOrCompress
	// stateInGroup reads up to four hex digits.
	stateInGroup
	// stateAfterGroup decides what the character after a group means.
	stateAfterGroup
	// stateInEmbeddedIPv4 reads a dotted-decimal tail.
	stateInEmbeddedIPv4
	stateDone
)

const noCompress = -1

type parser struct {
	input string
	pos   int

	pieces     Addr
	pieceIndex int
	compress   int

	// Group being read.
	value  uint16
	length int
}

// ParseAddr parses s, the text between a URL host's '[' and ']'.
func ParseAddr(s string) (Addr, error) {
	p := &parser{input: s, compress: noCompress}
	if err := p.run(); err != nil {
		return Addr{}, err
	}
	return p.pieces, nil
}

func (p *parser) run() error {
	var err error
	for st := stateStart; st != stateDone; {
		switch st {
		case stateStart:
			st, err = p.start()
		case stateGroupOrCompress:
			st, err = p.groupOrCompress()
		case stateInGroup:
			st = p.inGroup()
		case stateAfterGroup:
			st, err = p.afterGroup()
		case stateInEmbeddedIPv4:
			st, err = p.inEmbeddedIPv4()
		}
		if err != nil {
			return err
		}
	}

	return p.expandCompression()
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) fail(err error) error {
	return errors.Wrapf(err, "offset %d of %q", p.pos, p.input)
}

func (p *parser) start() (state, error) {
	if c, ok := p.peek(); !ok || c != ':' {
		return stateGroupOrCompress, nil
	}

	if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
		return stateDone, p.fail(ErrMalformedAddress)
	}

	p.pos += 2
	p.pieceIndex++
	p.compress = p.pieceIndex
	return stateGroupOrCompress, nil
}

func (p *parser) groupOrCompress() (state, error) {
	c, ok := p.peek()
	if !ok {
		return stateDone, nil
	}

	if p.pieceIndex == groups {
		return stateDone, p.fail(ErrTooManyGroups)
	}

	if c == ':' {
		if p.compress != noCompress {
			return stateDone, p.fail(ErrDoubleCompression)
		}
		p.pos++
		p.pieceIndex++
		p.compress = p.pieceIndex
		return stateGroupOrCompress, nil
	}

	return stateInGroup, nil
}

func (p *parser) inGroup() state {
	p.value, p.length = 0, 0
	for p.length < 4 {
		c, ok := p.peek()
		if !ok {
			break
		}
		d, ok := hexValue(c)
		if !ok {
			break
		}

		p.value = p.value*0x10 + d
		p.pos++
		p.length++
	}
	return stateAfterGroup
}

func (p *parser) afterGroup() (state, error) {
	c, ok := p.peek()
	switch {
	case ok && c == '.':
		if p.length == 0 {
			return stateDone, p.fail(ErrMalformedEmbeddedIPv4)
		}
		// The digits just read are the first decimal octet.
		p.pos -= p.length
		if p.pieceIndex > groups-2 {
			return stateDone, p.fail(ErrEmbeddedIPv4TooLate)
		}
		return stateInEmbeddedIPv4, nil

	case ok && c == ':':
		p.pos++
		if p.pos == len(p.input) {
			return stateDone, p.fail(ErrTrailingColon)
		}

	case ok:
		return stateDone, p.fail(ErrMalformedAddress)
	}

	p.pieces[p.pieceIndex] = p.value
	p.pieceIndex++
	return stateGroupOrCompress, nil
}

// inEmbeddedIPv4 reads exactly four decimal octets separated by '.', folding
// each pair into one group. It always consumes the rest of the input.
func (p *parser) inEmbeddedIPv4() (state, error) {
	seen := 0
	for p.pos < len(p.input) {
		if seen > 0 {
			if p.input[p.pos] != '.' || seen == 4 {
				return stateDone, p.fail(ErrMalformedEmbeddedIPv4)
			}
			p.pos++
		}

		octet, err := p.octet()
		if err != nil {
			return stateDone, err
		}

		p.pieces[p.pieceIndex] = p.pieces[p.pieceIndex]*0x100 + octet
		seen++
		if seen == 2 || seen == 4 {
			p.pieceIndex++
		}
	}

	if seen != 4 {
		return stateDone, p.fail(ErrMalformedEmbeddedIPv4)
	}
	return stateDone, nil
}

// octet reads one decimal number in 0-255 without leading zeros.
func (p *parser) octet() (uint16, error) {
	c, ok := p.peek()
	if !ok || !isDigit(c) {
		return 0, p.fail(ErrMalformedEmbeddedIPv4)
	}

	var n uint16
	for digits := 0; ; digits++ {
		c, ok := p.peek()
		if !ok || !isDigit(c) {
			return n, nil
		}
		if digits > 0 && n == 0 {
			return 0, p.fail(ErrMalformedEmbeddedIPv4)
		}

		n = n*10 + uint16(c-'0')
		if n > 255 {
			return 0, p.fail(ErrMalformedEmbeddedIPv4)
		}
		p.pos++
	}
}

// expandCompression moves the groups read after "::" to the end of the
// address, leaving the compressed span zero.
func (p *parser) expandCompression() error {
	if p.compress == noCompress {
		if p.pieceIndex != groups {
			return errors.Wrapf(ErrWrongGroupCount, "%d groups in %q", p.pieceIndex, p.input)
		}
		return nil
	}

	swaps := p.pieceIndex - p.compress
	for dst := groups - 1; dst != 0 && swaps > 0; dst, swaps = dst-1, swaps-1 {
		src := p.compress + swaps - 1
		p.pieces[dst], p.pieces[src] = p.pieces[src], p.pieces[dst]
	}
	return nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func hexValue(c byte) (uint16, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint16(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint16(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint16(c-'A') + 10, true
	}
	return 0, false
}
