package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/heathj/goxml/parser/spec"
)

// flatNode is an acyclic projection of a node used for tree comparison;
// the parent/sibling back-links make the tree itself unfit for go-cmp.
type flatNode struct {
	Kind  spec.NodeType
	Value string
	CData bool
	Attrs [][2]string
	Decl  [3]string
	Kids  []flatNode
}

func flatten(n *spec.Node) flatNode {
	f := flatNode{Kind: n.NodeType, Value: n.Value}
	if n.Text != nil {
		f.CData = n.Text.CData
	}
	if n.Element != nil {
		for i := 0; i < n.Attributes.Len(); i++ {
			a := n.Attributes.At(i)
			f.Attrs = append(f.Attrs, [2]string{a.Name, a.Value})
		}
	}
	if n.Declaration != nil {
		f.Decl = [3]string{n.Declaration.Version, n.Declaration.Encoding, n.Declaration.Standalone}
	}
	for _, c := range n.ChildNodes {
		f.Kids = append(f.Kids, flatten(c))
	}
	return f
}

var roundTripInputs = []string{
	"<root/>",
	`<a x='1' y="2">hi</a>`,
	"<r><![CDATA[<not-a-tag>]]></r>",
	`<?xml version="1.0" encoding="UTF-8"?><r>&amp;&#65;</r>`,
	"<!--a comment--><r><mid>text</mid><deep><deeper x='y'>v</deeper></deep></r>",
	"<r>one &lt;two&gt; three</r>",
	"<a><b/><c>t</c><!--x--><d/></a>",
	"<r>caf\xc3\xa9 &#233;</r>",
	`<doc title='it&apos;s &quot;quoted&quot;'/>`,
}

// Parse, serialize and re-parse: the second tree must equal the first.
// Byte equality of the markup is not promised, tree equality is.
func TestRoundTrip(t *testing.T) {
	for _, in := range roundTripInputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			first, err := Parse([]byte(in))
			if err != nil {
				t.Fatalf("first parse: %v", err)
			}
			out := first.String()
			second, err := Parse([]byte(out))
			if err != nil {
				t.Fatalf("reparse of %q: %v", out, err)
			}
			if diff := cmp.Diff(flatten(first), flatten(second)); diff != "" {
				t.Errorf("tree changed across serialize/parse (-first +second):\n%s", diff)
			}
		})
	}
}

// Serializing twice from the same tree, or from its reparse, must give
// identical bytes: one normalization pass reaches the fixpoint.
func TestSerializeFixpoint(t *testing.T) {
	for _, in := range roundTripInputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			first, err := Parse([]byte(in))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			out := first.String()
			second, err := Parse([]byte(out))
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if got := second.String(); got != out {
				t.Errorf("serialize not stable:\n first: %s\nsecond: %s", out, got)
			}
		})
	}
}

func TestParseDeterminism(t *testing.T) {
	t.Parallel()
	in := []byte("<a x='1'><b>text &amp; more</b><!--c--><![CDATA[raw]]></a>")
	first, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(flatten(first), flatten(second)); diff != "" {
		t.Errorf("identical input parsed differently:\n%s", diff)
	}
}

func TestEntityDecodeEncodeSymmetry(t *testing.T) {
	t.Parallel()
	in := "<r>&amp;&lt;&gt;&quot;&apos;&#65;&#x42;</r>"
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	decoded := doc.RootElement().GetText()
	if decoded != `&<>"'AB` {
		t.Fatalf("decoded %q", decoded)
	}

	redoc, err := Parse([]byte(doc.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got := redoc.RootElement().GetText(); got != decoded {
		t.Errorf("decode/encode not symmetric: %q != %q", got, decoded)
	}
}

func TestWriteIndented(t *testing.T) {
	t.Parallel()
	doc, err := Parse([]byte("<a><b>x</b><c/></a>"))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := doc.WriteIndented(&sb); err != nil {
		t.Fatal(err)
	}
	want := "<a>\n    <b>x</b>\n    <c/>\n</a>\n"
	if sb.String() != want {
		t.Errorf("indented output:\n%q\nwant:\n%q", sb.String(), want)
	}

	// Indented output still reparses to the same tree, since the added
	// whitespace is blank text.
	redoc, err := Parse([]byte(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(flatten(doc), flatten(redoc)); diff != "" {
		t.Errorf("indented round trip changed the tree:\n%s", diff)
	}
}
