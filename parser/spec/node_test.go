package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDoc assembles <root><a/><b>text</b><c/></root> by hand.
func buildDoc() (doc, root, a, b, c *Node) {
	doc = NewDocument()
	root = doc.AppendChild(NewElement(doc, "root"))
	a = root.AppendChild(NewElement(doc, "a"))
	b = root.AppendChild(NewElement(doc, "b"))
	b.AppendChild(NewText(doc, "text"))
	c = root.AppendChild(NewElement(doc, "c"))
	return
}

func assertLinks(t *testing.T, n *Node) {
	t.Helper()
	var prev *Node
	for i, child := range n.ChildNodes {
		require.Same(t, n, child.ParentNode)
		require.Same(t, prev, child.PreviousSibling)
		if i == len(n.ChildNodes)-1 {
			require.Nil(t, child.NextSibling)
			require.Same(t, n.LastChild, child)
		} else {
			require.Same(t, n.ChildNodes[i+1], child.NextSibling)
		}
		prev = child
		assertLinks(t, child)
	}
	if len(n.ChildNodes) == 0 {
		require.Nil(t, n.FirstChild)
		require.Nil(t, n.LastChild)
	} else {
		require.Same(t, n.ChildNodes[0], n.FirstChild)
	}
}

func TestAppendChildLinks(t *testing.T) {
	t.Parallel()
	doc, root, _, _, _ := buildDoc()
	assertLinks(t, doc)
	assert.Equal(t, 3, len(root.ChildNodes))
}

func TestInsertBefore(t *testing.T) {
	t.Parallel()
	doc, root, a, _, _ := buildDoc()

	x := NewElement(doc, "x")
	require.Same(t, x, root.InsertBefore(x, a))
	assert.Same(t, x, root.FirstChild)
	assert.Same(t, x, a.PreviousSibling)
	assertLinks(t, doc)

	// Not a child: no-op.
	assert.Nil(t, root.InsertBefore(NewElement(doc, "y"), NewElement(doc, "z")))
}

func TestInsertAfter(t *testing.T) {
	t.Parallel()
	doc, root, _, b, c := buildDoc()

	x := NewElement(doc, "x")
	require.Same(t, x, root.InsertAfter(x, b))
	assert.Same(t, x, b.NextSibling)
	assert.Same(t, c, x.NextSibling)
	assertLinks(t, doc)

	y := NewElement(doc, "y")
	require.Same(t, y, root.InsertAfter(y, root.LastChild))
	assert.Same(t, y, root.LastChild)
	assertLinks(t, doc)
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()
	doc, root, _, b, _ := buildDoc()

	x := NewElement(doc, "x")
	require.Same(t, x, root.ReplaceChild(x, b))
	assert.Nil(t, b.ParentNode)
	assert.Same(t, x, root.ChildNodes[1])
	assertLinks(t, doc)
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()
	doc, root, a, b, c := buildDoc()

	require.Same(t, b, root.RemoveChild(b))
	assert.Nil(t, b.ParentNode)
	assert.Same(t, c, a.NextSibling)
	assertLinks(t, doc)

	root.RemoveChild(a)
	root.RemoveChild(c)
	assert.Nil(t, root.FirstChild)
	assert.Nil(t, root.LastChild)
	assert.Empty(t, root.ChildNodes)
}

func TestClear(t *testing.T) {
	t.Parallel()
	_, root, a, _, _ := buildDoc()
	root.Clear()
	assert.Empty(t, root.ChildNodes)
	assert.Nil(t, root.FirstChild)
	assert.Nil(t, a.ParentNode)
}

func TestCloneNodeDeep(t *testing.T) {
	t.Parallel()
	_, root, _, b, _ := buildDoc()
	root.SetAttribute("k", "v")

	clone := root.CloneNode(true)
	assert.Nil(t, clone.ParentNode)
	assert.Equal(t, root.Value, clone.Value)
	v, ok := clone.Attribute("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	require.Len(t, clone.ChildNodes, 3)
	assert.Equal(t, "text", clone.ChildNodes[1].GetText())

	// Mutating the clone leaves the original alone.
	clone.SetAttribute("k", "other")
	v, _ = root.Attribute("k")
	assert.Equal(t, "v", v)
	clone.ChildNodes[1].Clear()
	assert.Equal(t, "text", b.GetText())
}

func TestNavigation(t *testing.T) {
	t.Parallel()
	doc, root, a, b, c := buildDoc()

	assert.Same(t, root, doc.RootElement())
	assert.Same(t, a, root.FirstChildElement(""))
	assert.Same(t, b, root.FirstChildElement("b"))
	assert.Nil(t, root.FirstChildElement("missing"))
	assert.Same(t, b, a.NextSiblingElement(""))
	assert.Same(t, c, a.NextSiblingElement("c"))
	assert.Same(t, doc, c.GetDocument())
	assert.Equal(t, "text", b.GetText())
	assert.Equal(t, "", a.GetText())
}

func TestBlank(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	assert.True(t, NewText(doc, "").Blank())
	assert.True(t, NewText(doc, " \t\r\n\v\f").Blank())
	assert.False(t, NewText(doc, " x ").Blank())
}

func TestAttributeSet(t *testing.T) {
	t.Parallel()
	s := NewAttributeSet()
	s.Add(&Attr{Name: "b", Value: "2"})
	s.Add(&Attr{Name: "a", Value: "1"})
	s.Add(&Attr{Name: "c", Value: "3"})

	// Iteration order is insertion order, not name order.
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "b", s.At(0).Name)
	assert.Equal(t, "a", s.At(1).Name)
	assert.Equal(t, "c", s.At(2).Name)

	require.NotNil(t, s.Find("a"))
	assert.Equal(t, "1", s.Find("a").Value)
	assert.Nil(t, s.Find("missing"))

	s.Remove("a")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "c", s.At(1).Name)
}

func TestAttributeHelpers(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	e := NewElement(doc, "e")

	e.SetAttribute("n", "41")
	e.SetAttribute("n", "42")
	require.Equal(t, 1, e.Attributes.Len())

	i, ok := e.QueryIntAttribute("n")
	require.True(t, ok)
	assert.Equal(t, 42, i)

	e.SetAttribute("f", " 2.5 ")
	f, ok := e.QueryFloatAttribute("f")
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = e.QueryIntAttribute("f")
	assert.False(t, ok)
	_, ok = e.QueryIntAttribute("missing")
	assert.False(t, ok)

	e.RemoveAttribute("n")
	_, ok = e.Attribute("n")
	assert.False(t, ok)

	// Kind-guarded: attribute calls on non-elements are no-ops.
	text := NewText(doc, "t")
	text.SetAttribute("x", "y")
	_, ok = text.Attribute("x")
	assert.False(t, ok)
}

func TestFirstErrorWinsOnDocument(t *testing.T) {
	t.Parallel()
	doc := NewDocument()
	doc.Document.SetError(ErrParsingElement, Cursor{Row: 1, Col: 2})
	doc.Document.SetError(ErrReadingEndTag, Cursor{Row: 9, Col: 9})

	assert.True(t, doc.Document.Error())
	assert.Equal(t, ErrParsingElement, doc.Document.ErrorID())
	assert.Equal(t, 2, doc.Document.ErrorRow())
	assert.Equal(t, 3, doc.Document.ErrorCol())

	doc.Document.ClearError()
	assert.False(t, doc.Document.Error())
	assert.NoError(t, doc.Document.ParseErr())

	doc.Document.SetError(ErrReadingEndTag, Cursor{Row: 9, Col: 9})
	assert.Equal(t, ErrReadingEndTag, doc.Document.ErrorID())
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()
	e := &ParseError{Code: ErrReadingEndTag, Desc: ErrReadingEndTag.Desc(), Location: Cursor{Row: 1, Col: 4}}
	assert.Equal(t, "Error reading end tag. (row 2, col 5)", e.Error())

	cleared := Cursor{}
	cleared.Clear()
	e = &ParseError{Code: Err, Desc: Err.Desc(), Location: cleared}
	assert.Equal(t, "Error", e.Error())
}

func TestErrorCodeDesc(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "No error", ErrNone.Desc())
	assert.Equal(t, "Failed to open file", ErrOpeningFile.Desc())
	assert.Equal(t, "Error parsing CDATA.", ErrParsingCData.Desc())
	// Out-of-range codes fall back to the generic description.
	assert.Equal(t, "Error", ErrorCode(99).Desc())
}
