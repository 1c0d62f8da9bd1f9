package parser

import "github.com/heathj/goxml/parser/spec"

const (
	utfLead0 = 0xef
	utfLead1 = 0xbb
	utfLead2 = 0xbf
)

// utf8ByteTable maps a lead byte to the number of bytes in its sequence.
// Invalid leads get 1 so junk input still moves forward.
var utf8ByteTable = [256]int{
	//	0	1	2	3	4	5	6	7	8	9	a	b	c	d	e	f
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x00
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x10
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x20
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x30
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x40
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x50
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x60
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x70	end of ASCII range
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x80 0x80 to 0xc1 invalid
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x90
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xa0
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xb0
	1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xc0 0xc2 to 0xdf 2 byte
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xd0
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // 0xe0 0xe0 to 0xef 3 byte
	4, 4, 4, 4, 4, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0xf0 0xf0 to 0xf4 4 byte, 0xf5 and higher invalid
}

// convertUTF32ToUTF8 encodes a code point as UTF-8. Code points at
// 0x200000 and above are rejected with a nil result.
func convertUTF32ToUTF8(input uint32) []byte {
	const (
		byteMask = 0xBF
		byteMark = 0x80
	)
	firstByteMark := [5]byte{0x00, 0x00, 0xC0, 0xE0, 0xF0}

	var length int
	switch {
	case input < 0x80:
		length = 1
	case input < 0x800:
		length = 2
	case input < 0x10000:
		length = 3
	case input < 0x200000:
		length = 4
	default:
		return nil
	}

	out := make([]byte, length)
	for i := length - 1; i > 0; i-- {
		out[i] = byte((input | byteMark) & byteMask)
		input >>= 6
	}
	out[0] = byte(input) | firstByteMark[length]
	return out
}

// isAlpha is deliberately generous: every byte at 127 and above counts as
// a letter, since the parser cannot classify the full unicode set.
func isAlpha(b byte) bool {
	if b < 127 {
		return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	}
	return true
}

func isAlphaNum(b byte) bool {
	if b < 127 {
		return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
	}
	return true
}

func isWhiteSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

type entity struct {
	str string
	chr byte
}

// The output encoder (spec.EscapeText) hardcodes the same five
// characters; changing the entries here breaks the serialize/parse cycle.
var entities = [5]entity{
	{"&amp;", '&'},
	{"&lt;", '<'},
	{"&gt;", '>'},
	{"&quot;", '"'},
	{"&apos;", '\''},
}

// getEntity decodes the reference starting at buf[i] (which is '&') into
// the bytes of one logical character and the position just past it. An
// unrecognized reference yields the raw '&' and advances one byte; a
// malformed numeric reference abandons the region.
func (p *Parser) getEntity(i int) ([]byte, int) {
	buf := p.buf
	if i+1 < len(buf) && buf[i+1] == '#' && i+2 < len(buf) {
		var ucs uint32
		var q int

		if buf[i+2] == 'x' {
			// Hexadecimal.
			if i+3 >= len(buf) {
				return nil, len(buf)
			}
			for q = i + 3; q < len(buf) && buf[q] != ';'; q++ {
				c := buf[q]
				switch {
				case c >= '0' && c <= '9':
					ucs = ucs*16 + uint32(c-'0')
				case c >= 'a' && c <= 'f':
					ucs = ucs*16 + uint32(c-'a'+10)
				case c >= 'A' && c <= 'F':
					ucs = ucs*16 + uint32(c-'A'+10)
				default:
					return nil, len(buf)
				}
			}
			if q >= len(buf) {
				return nil, len(buf)
			}
		} else {
			// Decimal.
			for q = i + 2; q < len(buf) && buf[q] != ';'; q++ {
				c := buf[q]
				if c < '0' || c > '9' {
					return nil, len(buf)
				}
				ucs = ucs*10 + uint32(c-'0')
			}
			if q >= len(buf) {
				return nil, len(buf)
			}
		}

		if p.encoding == spec.EncodingUTF8 {
			return convertUTF32ToUTF8(ucs), q + 1
		}
		return []byte{byte(ucs)}, q + 1
	}

	for _, e := range entities {
		if stringEqual(buf, i, e.str, false) {
			return []byte{e.chr}, i + len(e.str)
		}
	}

	// Not an entity after all. Emit the '&' itself rather than losing it.
	return []byte{buf[i]}, i + 1
}

// getChar reads one logical character: an entity reference decodes to its
// character, anything else passes through as 1-4 raw bytes depending on
// the lead byte (always 1 in legacy mode).
func (p *Parser) getChar(i int) ([]byte, int) {
	buf := p.buf
	if buf[i] == '&' {
		return p.getEntity(i)
	}

	length := 1
	if p.encoding == spec.EncodingUTF8 {
		length = utf8ByteTable[buf[i]]
		if length == 0 {
			length = 1
		}
	}
	if i+length > len(buf) {
		length = len(buf) - i
	}
	return buf[i : i+length], i + length
}
