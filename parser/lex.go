package parser

// skipWhiteSpace advances past a maximal run of ASCII whitespace.
func skipWhiteSpace(buf []byte, i int) int {
	for i < len(buf) && isWhiteSpace(buf[i]) {
		i++
	}
	return i
}

// readName scans a name: a leading letter or underscore, then letters,
// digits, '_', '-', '.' and ':'. Colons are valid only for namespaces,
// but this parser can't tell namespaces from names.
func readName(buf []byte, i int) (string, int, bool) {
	if i >= len(buf) || !(isAlpha(buf[i]) || buf[i] == '_') {
		return "", i, false
	}
	start := i
	for i < len(buf) &&
		(isAlphaNum(buf[i]) || buf[i] == '_' || buf[i] == '-' || buf[i] == '.' || buf[i] == ':') {
		i++
	}
	return string(buf[start:i]), i, true
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}
	return b
}

// stringEqual reports whether tag occurs at buf[i], optionally folding
// ASCII case.
func stringEqual(buf []byte, i int, tag string, ignoreCase bool) bool {
	if i+len(tag) > len(buf) {
		return false
	}
	for j := 0; j < len(tag); j++ {
		a, b := buf[i+j], tag[j]
		if ignoreCase {
			a, b = toLower(a), toLower(b)
		}
		if a != b {
			return false
		}
	}
	return true
}

// readText consumes bytes until endTag, decoding entities along the way.
// With trim set and the condense option on, leading whitespace is dropped
// and internal whitespace runs collapse to a single space. Returns the
// body and the position just past endTag, or the end of the region when
// the terminator is never found.
func (p *Parser) readText(i int, endTag string, trim, caseInsensitive bool) (string, int) {
	buf := p.buf
	var text []byte

	if !trim || !p.condense {
		// Keep all the white space.
		for i < len(buf) && !stringEqual(buf, i, endTag, caseInsensitive) {
			var c []byte
			c, i = p.getChar(i)
			text = append(text, c...)
		}
	} else {
		whitespace := false

		i = skipWhiteSpace(buf, i)
		for i < len(buf) && !stringEqual(buf, i, endTag, caseInsensitive) {
			if buf[i] == '\r' || buf[i] == '\n' || isWhiteSpace(buf[i]) {
				whitespace = true
				i++
				continue
			}
			// Any pending whitespace run becomes a single space before
			// the next character.
			if whitespace {
				text = append(text, ' ')
				whitespace = false
			}
			var c []byte
			c, i = p.getChar(i)
			text = append(text, c...)
		}
	}

	if i < len(buf) {
		i += len(endTag)
		if i > len(buf) {
			i = len(buf)
		}
	}
	return string(text), i
}
