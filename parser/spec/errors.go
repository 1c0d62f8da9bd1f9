package spec

import "fmt"

type ErrorCode int

const (
	ErrNone ErrorCode = iota
	Err
	ErrOpeningFile
	ErrParsingElement
	ErrFailedToReadElementName
	ErrReadingElementValue
	ErrReadingAttributes
	ErrParsingEmpty
	ErrReadingEndTag
	ErrParsingUnknown
	ErrParsingComment
	ErrParsingDeclaration
	ErrDocumentEmpty
	ErrEmbeddedNull
	ErrParsingCData
	ErrDocumentTopOnly
	errStringCount
)

var errorStrings = [errStringCount]string{
	"No error",
	"Error",
	"Failed to open file",
	"Error parsing Element.",
	"Failed to read Element name",
	"Error reading Element value.",
	"Error reading Attributes.",
	"Error: empty tag.",
	"Error reading end tag.",
	"Error parsing Unknown.",
	"Error parsing Comment.",
	"Error parsing Declaration.",
	"Error document empty.",
	"Error null (0) or unexpected EOF found in input stream.",
	"Error parsing CDATA.",
	"Error adding a Document to a Document; this can only be at the root.",
}

func (c ErrorCode) Desc() string {
	if c < ErrNone || c >= errStringCount {
		return errorStrings[Err]
	}
	return errorStrings[c]
}

// ParseError is the Go error built from a document's latched parse error.
type ParseError struct {
	Code     ErrorCode
	Desc     string
	Location Cursor
}

func (e *ParseError) Error() string {
	if e.Location.Row >= 0 {
		return fmt.Sprintf("%s (row %d, col %d)", e.Desc, e.Location.Row+1, e.Location.Col+1)
	}
	return e.Desc
}

// Document holds the per-document state: the parse knobs, the detected
// encoding, and the error latch.
type Document struct {
	TabSize            int
	CondenseWhiteSpace bool
	BOM                bool
	Encoding           Encoding

	err         bool
	errID       ErrorCode
	errDesc     string
	errLocation Cursor
}

// SetError latches an error on the document. The first error in a chain is
// the most accurate, so later calls are ignored until ClearError.
func (d *Document) SetError(id ErrorCode, loc Cursor) {
	if d.err {
		return
	}
	d.err = true
	d.errID = id
	d.errDesc = id.Desc()
	d.errLocation = loc
}

func (d *Document) ClearError() {
	d.err = false
	d.errID = ErrNone
	d.errDesc = ""
	d.errLocation.Clear()
}

func (d *Document) Error() bool {
	return d.err
}

func (d *Document) ErrorID() ErrorCode {
	return d.errID
}

func (d *Document) ErrorDesc() string {
	return d.errDesc
}

// ErrorRow reports the one-based row of the latched error, or 0 when the
// location was never stamped.
func (d *Document) ErrorRow() int { return d.errLocation.Row + 1 }

func (d *Document) ErrorCol() int { return d.errLocation.Col + 1 }

// ParseErr returns the latched error as a Go error, or nil.
func (d *Document) ParseErr() error {
	if !d.err {
		return nil
	}
	return &ParseError{Code: d.errID, Desc: d.errDesc, Location: d.errLocation}
}
