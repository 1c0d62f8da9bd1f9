// Package parser reads permissive XML 1.0 into a mutable document tree.
// It is byte-oriented: UTF-8 awareness is limited to lead-byte counting
// and column attribution, and any byte at 128 or above is treated as a
// name character.
package parser

import (
	"bytes"

	"github.com/sirupsen/logrus"

	"github.com/heathj/goxml/parser/spec"
)

var utf8BOM = []byte{utfLead0, utfLead1, utfLead2}

// Parser holds the transient state of one parse over one byte region.
type Parser struct {
	buf      []byte
	doc      *spec.Node
	data     *parsingData
	encoding spec.Encoding
	condense bool
}

type config struct {
	tabSize  int
	condense bool
	encoding spec.Encoding
}

type Option func(*config)

// WithTabSize sets the tab stop used for column reporting. The default is
// 4; a size of 0 disables row/column tracking.
func WithTabSize(n int) Option {
	return func(c *config) { c.tabSize = n }
}

// WithCondenseWhiteSpace controls whether runs of whitespace in text
// nodes collapse to a single space. On by default.
func WithCondenseWhiteSpace(v bool) Option {
	return func(c *config) { c.condense = v }
}

// WithEncoding supplies an encoding hint. Without one, a UTF-8 byte-order
// mark or the document declaration decides; otherwise a byte-wise legacy
// mode is used.
func WithEncoding(e spec.Encoding) Option {
	return func(c *config) { c.encoding = e }
}

// Parse reads input into a document tree. The document is returned even
// when parsing fails: the error carries the first latched code, location
// and description, and the partial tree is kept for diagnostics.
func Parse(input []byte, opts ...Option) (*spec.Node, error) {
	cfg := config{tabSize: 4, condense: true, encoding: spec.EncodingUnknown}
	for _, o := range opts {
		o(&cfg)
	}

	doc := spec.NewDocument()
	doc.Document.TabSize = cfg.tabSize
	doc.Document.CondenseWhiteSpace = cfg.condense

	p := &Parser{
		buf:      input,
		doc:      doc,
		encoding: cfg.encoding,
		condense: cfg.condense,
	}
	p.parseDocument()
	return doc, doc.Document.ParseErr()
}

// setError stamps the position and latches the error on the document.
func (p *Parser) setError(id spec.ErrorCode, pos int) {
	loc := spec.Cursor{}
	loc.Clear()
	if p.data != nil && pos < len(p.buf) {
		p.data.Stamp(p.buf, pos, p.encoding)
		loc = p.data.cursor
	}
	p.doc.Document.SetError(id, loc)
}

// setErrorNoPos latches the error with a cleared location, for failures
// that have no meaningful position.
func (p *Parser) setErrorNoPos(id spec.ErrorCode) {
	loc := spec.Cursor{}
	loc.Clear()
	p.doc.Document.SetError(id, loc)
}

func (p *Parser) parseDocument() {
	doc := p.doc
	doc.Document.ClearError()

	// A document contains nothing but other tags, so most of the work
	// here is skipping white space between children.
	if len(p.buf) == 0 {
		p.setErrorNoPos(spec.ErrDocumentEmpty)
		return
	}

	doc.Location = spec.Cursor{Row: 0, Col: 0}
	p.data = newParsingData(doc.Document.TabSize, 0, 0)

	i := 0
	if p.encoding == spec.EncodingUnknown && bytes.HasPrefix(p.buf, utf8BOM) {
		p.encoding = spec.EncodingUTF8
		doc.Document.BOM = true
		i = len(utf8BOM)
	}

	i = skipWhiteSpace(p.buf, i)
	if i >= len(p.buf) {
		p.setErrorNoPos(spec.ErrDocumentEmpty)
		return
	}

	for i < len(p.buf) {
		node := p.identify(doc, i)
		if node == nil {
			break
		}
		i = p.parseNode(node, i)
		doc.AppendChild(node)

		// The first declaration may carry encoding info.
		if p.encoding == spec.EncodingUnknown && node.NodeType == spec.DeclarationNode {
			switch {
			case node.Declaration.Encoding != "":
				p.encoding = spec.EncodingUTF8
			case stringEqual(p.buf, i, "UTF-8", true):
				p.encoding = spec.EncodingUTF8
			case stringEqual(p.buf, i, "UTF8", true):
				// Incorrect, but be nice.
				p.encoding = spec.EncodingUTF8
			default:
				p.encoding = spec.EncodingLegacy
			}
		}

		i = skipWhiteSpace(p.buf, i)
	}

	doc.Document.Encoding = p.encoding

	if doc.FirstChild == nil {
		p.setErrorNoPos(spec.ErrDocumentEmpty)
	}
}

// identify inspects the bytes at the next '<' and constructs the matching
// empty node, parented to from for error reporting. It never advances the
// input. Returns nil when there is no node to read.
func (p *Parser) identify(from *spec.Node, i int) *spec.Node {
	i = skipWhiteSpace(p.buf, i)
	if i >= len(p.buf) || p.buf[i] != '<' {
		return nil
	}

	var node *spec.Node
	switch {
	case stringEqual(p.buf, i, "<?xml", true):
		logrus.Debug("parsing Declaration")
		node = spec.NewDeclaration(p.doc, "", "", "")
	case stringEqual(p.buf, i, "<!--", false):
		logrus.Debug("parsing Comment")
		node = spec.NewComment(p.doc, "")
	case stringEqual(p.buf, i, "<![CDATA[", false):
		logrus.Debug("parsing CDATA")
		node = spec.NewCDATA(p.doc, "")
	case stringEqual(p.buf, i, "<!", false):
		logrus.Debug("parsing Unknown")
		node = spec.NewUnknown(p.doc, "")
	case i+1 < len(p.buf) && (isAlpha(p.buf[i+1]) || p.buf[i+1] == '_'):
		logrus.Debug("parsing Element")
		node = spec.NewElement(p.doc, "")
	default:
		logrus.Debug("parsing Unknown")
		node = spec.NewUnknown(p.doc, "")
	}
	node.ParentNode = from
	return node
}

// parseNode dispatches to the parser for the node's kind and returns the
// position just past the node.
func (p *Parser) parseNode(n *spec.Node, i int) int {
	switch n.NodeType {
	case spec.ElementNode:
		return p.parseElement(n, i)
	case spec.CommentNode:
		return p.parseComment(n, i)
	case spec.TextNode:
		return p.parseText(n, i)
	case spec.DeclarationNode:
		return p.parseDeclaration(n, i)
	case spec.UnknownNode:
		return p.parseUnknown(n, i)
	}
	return len(p.buf)
}
