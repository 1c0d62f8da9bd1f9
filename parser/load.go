package parser

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/heathj/goxml/parser/spec"
)

// ParseReader buffers everything from r and parses it. A NUL byte in the
// stream latches the embedded-null error before parsing begins, since a
// terminator inside the payload means the source was truncated or binary.
func ParseReader(r io.Reader, opts ...Option) (*spec.Node, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrap(err, "goxml: reading input")
	}

	if bytes.IndexByte(data, 0) >= 0 {
		doc := spec.NewDocument()
		loc := spec.Cursor{}
		loc.Clear()
		doc.Document.SetError(spec.ErrEmbeddedNull, loc)
		return doc, doc.Document.ParseErr()
	}

	return Parse(data, opts...)
}

// LoadFile parses the file at path. Open failures latch the opening-file
// error on the returned document and wrap the underlying cause.
func LoadFile(path string, opts ...Option) (*spec.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		doc := spec.NewDocument()
		loc := spec.Cursor{}
		loc.Clear()
		doc.Document.SetError(spec.ErrOpeningFile, loc)
		return doc, errors.Wrapf(err, "goxml: opening %s", path)
	}
	defer f.Close()

	return ParseReader(f, opts...)
}
