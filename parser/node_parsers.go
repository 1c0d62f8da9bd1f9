package parser

import "github.com/heathj/goxml/parser/spec"

// parseElement reads '<name', the attribute list, and either '/>' or
// '>' content '</name>'. The position just past the closing '>' is
// returned; structural violations latch an error on the document and
// unwind by returning the end of the region.
func (p *Parser) parseElement(n *spec.Node, i int) int {
	buf := p.buf
	i = skipWhiteSpace(buf, i)
	if i >= len(buf) {
		p.setErrorNoPos(spec.ErrParsingElement)
		return len(buf)
	}

	p.data.Stamp(buf, i, p.encoding)
	n.Location = p.data.cursor

	if buf[i] != '<' {
		p.setError(spec.ErrParsingElement, i)
		return len(buf)
	}

	i = skipWhiteSpace(buf, i+1)

	pErr := i
	name, next, ok := readName(buf, i)
	if !ok {
		p.setError(spec.ErrFailedToReadElementName, pErr)
		return len(buf)
	}
	n.Value = name
	i = next

	endTag := "</" + name

	// Read attributes, watching for an empty tag or the end of the open
	// tag.
	for i < len(buf) {
		pErr = i
		i = skipWhiteSpace(buf, i)
		if i >= len(buf) {
			p.setError(spec.ErrReadingAttributes, pErr)
			return len(buf)
		}

		switch buf[i] {
		case '/':
			i++
			// Empty tag.
			if i >= len(buf) || buf[i] != '>' {
				p.setError(spec.ErrParsingEmpty, i)
				return len(buf)
			}
			return i + 1

		case '>':
			// Done with attributes. Read the value, which can include
			// other elements, then the end tag.
			i++
			i = p.readValue(n, i)
			if i >= len(buf) {
				// We were looking for the end tag, but found nothing.
				p.setError(spec.ErrReadingEndTag, i)
				return len(buf)
			}

			// Both </foo> and </foo > are valid end tags.
			if !stringEqual(buf, i, endTag, false) {
				p.setError(spec.ErrReadingEndTag, i)
				return len(buf)
			}
			i += len(endTag)
			i = skipWhiteSpace(buf, i)
			if i < len(buf) && buf[i] == '>' {
				return i + 1
			}
			p.setError(spec.ErrReadingEndTag, i)
			return len(buf)

		default:
			attr := &spec.Attr{Document: p.doc}
			pErr = i
			i = p.parseAttribute(attr, i)
			if i >= len(buf) {
				p.setError(spec.ErrParsingElement, pErr)
				return len(buf)
			}

			// The strange case of double attributes.
			if n.Attributes.Find(attr.Name) != nil {
				p.setError(spec.ErrParsingElement, pErr)
				return len(buf)
			}
			n.Attributes.Add(attr)
		}
	}
	return i
}

// readValue reads element content: text runs and child nodes in any
// order, stopping just before a '</' end tag.
func (p *Parser) readValue(n *spec.Node, i int) int {
	buf := p.buf

	pWithWhiteSpace := i
	i = skipWhiteSpace(buf, i)

	for i < len(buf) {
		if buf[i] != '<' {
			textNode := spec.NewText(p.doc, "")
			textNode.ParentNode = n

			if p.condense {
				i = p.parseText(textNode, i)
			} else {
				// Keep the white space so leading spaces aren't lost.
				i = p.parseText(textNode, pWithWhiteSpace)
			}

			if !textNode.Blank() {
				n.AppendChild(textNode)
			}
		} else {
			if stringEqual(buf, i, "</", false) {
				return i
			}
			node := p.identify(n, i)
			if node == nil {
				p.setErrorNoPos(spec.ErrReadingElementValue)
				return len(buf)
			}
			i = p.parseNode(node, i)
			n.AppendChild(node)
		}
		pWithWhiteSpace = i
		i = skipWhiteSpace(buf, i)
	}

	// Running out of input here is the caller's missing-end-tag error,
	// not ours.
	return i
}

// parseAttribute reads name='value' (single-, double-, or, leniently,
// unquoted). Errors are reported only when the attribute carries a
// document back-reference.
func (p *Parser) parseAttribute(a *spec.Attr, i int) int {
	buf := p.buf
	i = skipWhiteSpace(buf, i)
	if i >= len(buf) {
		return len(buf)
	}

	p.data.Stamp(buf, i, p.encoding)
	a.Location = p.data.cursor

	pErr := i
	name, next, ok := readName(buf, i)
	if !ok {
		if a.Document != nil {
			p.setError(spec.ErrReadingAttributes, pErr)
		}
		return len(buf)
	}
	a.Name = name
	i = skipWhiteSpace(buf, next)
	if i >= len(buf) || buf[i] != '=' {
		if a.Document != nil {
			p.setError(spec.ErrReadingAttributes, i)
		}
		return len(buf)
	}

	i = skipWhiteSpace(buf, i+1)
	if i >= len(buf) {
		if a.Document != nil {
			p.setError(spec.ErrReadingAttributes, i)
		}
		return len(buf)
	}

	const singleQuote = '\''
	const doubleQuote = '"'

	switch buf[i] {
	case singleQuote:
		a.Value, i = p.readText(i+1, "'", false, false)
	case doubleQuote:
		a.Value, i = p.readText(i+1, "\"", false, false)
	default:
		// All attribute values should be in single or double quotes, but
		// the error is so common the parser tries its best without them.
		start := i
		for i < len(buf) && !isWhiteSpace(buf[i]) && buf[i] != '/' && buf[i] != '>' {
			if buf[i] == singleQuote || buf[i] == doubleQuote {
				// No opening quote but a closing one: give up.
				if a.Document != nil {
					p.setError(spec.ErrReadingAttributes, i)
				}
				return len(buf)
			}
			i++
		}
		a.Value = string(buf[start:i])
	}
	return i
}

// parseText reads either a CDATA section (when the node's CDATA flag is
// set) or plain character data up to, but not including, the next '<'.
func (p *Parser) parseText(n *spec.Node, i int) int {
	buf := p.buf
	n.Value = ""

	p.data.Stamp(buf, i, p.encoding)
	n.Location = p.data.cursor

	const startTag = "<![CDATA["
	const endTag = "]]>"

	if n.Text.CData || stringEqual(buf, i, startTag, false) {
		n.Text.CData = true

		if !stringEqual(buf, i, startTag, false) {
			p.setError(spec.ErrParsingCData, i)
			return len(buf)
		}
		i += len(startTag)

		// Keep all the white space; ignore entities.
		start := i
		for i < len(buf) && !stringEqual(buf, i, endTag, false) {
			i++
		}
		n.Value = string(buf[start:i])
		if i < len(buf) {
			i += len(endTag)
		}
		return i
	}

	var text string
	text, i = p.readText(i, "<", true, false)
	n.Value = text
	if i < len(buf) {
		// Don't truncate the '<'; the caller re-examines it.
		return i - 1
	}
	return len(buf)
}

// parseComment reads '<!--' body '-->' with the earliest terminator
// winning. The body is taken verbatim; no entity decoding.
func (p *Parser) parseComment(n *spec.Node, i int) int {
	buf := p.buf
	n.Value = ""

	i = skipWhiteSpace(buf, i)
	p.data.Stamp(buf, i, p.encoding)
	n.Location = p.data.cursor

	const startTag = "<!--"
	const endTag = "-->"

	if !stringEqual(buf, i, startTag, false) {
		p.setError(spec.ErrParsingComment, i)
		return len(buf)
	}
	i += len(startTag)

	start := i
	for i < len(buf) && !stringEqual(buf, i, endTag, false) {
		i++
	}
	n.Value = string(buf[start:i])
	if i < len(buf) {
		i += len(endTag)
	}
	return i
}

// parseDeclaration reads '<?xml' and its optional version, encoding and
// standalone attributes, terminating at '?>' or '>'.
func (p *Parser) parseDeclaration(n *spec.Node, i int) int {
	buf := p.buf
	i = skipWhiteSpace(buf, i)

	if i >= len(buf) || !stringEqual(buf, i, "<?xml", true) {
		p.setErrorNoPos(spec.ErrParsingDeclaration)
		return len(buf)
	}

	p.data.Stamp(buf, i, p.encoding)
	n.Location = p.data.cursor
	i += len("<?xml")

	n.Declaration.Version = ""
	n.Declaration.Encoding = ""
	n.Declaration.Standalone = ""

	for i < len(buf) {
		if buf[i] == '>' {
			return i + 1
		}
		i = skipWhiteSpace(buf, i)
		switch {
		case stringEqual(buf, i, "version", true):
			// A scratch attribute without a document reference parses
			// quietly.
			attr := &spec.Attr{}
			i = p.parseAttribute(attr, i)
			n.Declaration.Version = attr.Value
		case stringEqual(buf, i, "encoding", true):
			attr := &spec.Attr{}
			i = p.parseAttribute(attr, i)
			n.Declaration.Encoding = attr.Value
		case stringEqual(buf, i, "standalone", true):
			attr := &spec.Attr{}
			i = p.parseAttribute(attr, i)
			n.Declaration.Standalone = attr.Value
		default:
			// Read over whatever it is.
			for i < len(buf) && buf[i] != '>' && !isWhiteSpace(buf[i]) {
				i++
			}
		}
	}
	return i
}

// parseUnknown copies the raw bytes between '<' and '>' into the node.
func (p *Parser) parseUnknown(n *spec.Node, i int) int {
	buf := p.buf
	i = skipWhiteSpace(buf, i)

	p.data.Stamp(buf, i, p.encoding)
	n.Location = p.data.cursor

	if i >= len(buf) || buf[i] != '<' {
		p.setError(spec.ErrParsingUnknown, i)
		return len(buf)
	}
	i++

	start := i
	for i < len(buf) && buf[i] != '>' {
		i++
	}
	n.Value = string(buf[start:i])

	if i >= len(buf) {
		p.setErrorNoPos(spec.ErrParsingUnknown)
		return len(buf)
	}
	return i + 1
}
