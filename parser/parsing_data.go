package parser

import "github.com/heathj/goxml/parser/spec"

// parsingData tracks the (row, col) cursor for one parse. stamp is the
// highest input offset whose line/column has already been credited;
// Stamp only ever moves it forward.
type parsingData struct {
	cursor  spec.Cursor
	stamp   int
	tabsize int
}

func newParsingData(tabsize, row, col int) *parsingData {
	return &parsingData{
		cursor:  spec.Cursor{Row: row, Col: col},
		tabsize: tabsize,
	}
}

// Stamp advances the cursor from the last stamped offset to target,
// accounting for CR/LF/CRLF/LFCR line endings, tab stops, zero-width
// 0xEF-led triples, and multi-byte characters in UTF-8 mode. A tab size
// below 1 disables tracking entirely.
func (d *parsingData) Stamp(buf []byte, target int, encoding spec.Encoding) {
	if d.tabsize < 1 {
		return
	}
	if target > len(buf) {
		target = len(buf)
	}

	row := d.cursor.Row
	col := d.cursor.Col
	p := d.stamp

	for p < target {
		switch buf[p] {
		case 0:
			// Never advance past a terminating null.
			d.cursor.Row = row
			d.cursor.Col = col
			d.stamp = p
			return

		case '\r':
			row++
			col = 0
			p++
			// A \r\n pair counts as a single new line.
			if p < len(buf) && buf[p] == '\n' {
				p++
			}

		case '\n':
			row++
			col = 0
			p++
			// \n\r still turns up on some arcane platforms.
			if p < len(buf) && buf[p] == '\r' {
				p++
			}

		case '\t':
			p++
			// Skip to the next tab stop.
			col = (col/d.tabsize + 1) * d.tabsize

		case utfLead0:
			if encoding == spec.EncodingUTF8 {
				if p+2 < len(buf) {
					b1, b2 := buf[p+1], buf[p+2]
					// BOM and the ef bf be / ef bf bf non-characters
					// are zero width.
					if (b1 == utfLead1 && b2 == utfLead2) ||
						(b1 == 0xbf && b2 == 0xbe) ||
						(b1 == 0xbf && b2 == 0xbf) {
						p += 3
					} else {
						p += 3
						col++
					}
				} else {
					p = len(buf)
					col++
				}
			} else {
				p++
				col++
			}

		default:
			if encoding == spec.EncodingUTF8 {
				step := utf8ByteTable[buf[p]]
				if step == 0 {
					step = 1
				}
				p += step
				if p > len(buf) {
					p = len(buf)
				}
				col++
			} else {
				p++
				col++
			}
		}
	}

	// p may sit just past target when the last step consumed a multi-byte
	// character or a CR/LF pair; splitting one would credit it twice on
	// the next call.
	d.cursor.Row = row
	d.cursor.Col = col
	d.stamp = p
}
