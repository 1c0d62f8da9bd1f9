package spec

import (
	"strconv"
	"strings"
)

type NodeType uint16

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	CommentNode
	TextNode
	DeclarationNode
	UnknownNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case CommentNode:
		return "Comment"
	case TextNode:
		return "Text"
	case DeclarationNode:
		return "Declaration"
	case UnknownNode:
		return "Unknown"
	}
	return "Invalid"
}

// Cursor is a parse position. Rows and columns are stored zero-based;
// -1 means cleared/unknown. Row and Col on Node report them one-based.
type Cursor struct {
	Row, Col int
}

func (c *Cursor) Clear() {
	c.Row = -1
	c.Col = -1
}

type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingLegacy
)

type NodeList []*Node

// Node is the base of the tree. The meaning of Value depends on the node
// kind: the tag name for an element, the body for a comment or text node,
// the raw bytes between '<' and '>' for an unknown node, and unused for
// declarations and documents.
type Node struct {
	NodeType                                                        NodeType
	Value                                                           string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList
	Location                                                        Cursor

	// Node kinds
	*Element
	*Text
	*Declaration
	*Document
}

type Element struct {
	Attributes *AttributeSet
}

type Text struct {
	CData bool
}

type Declaration struct {
	Version    string
	Encoding   string
	Standalone string
}

// NewDocument returns an empty document node with the default parse knobs:
// tab size 4 and whitespace condensation on.
func NewDocument() *Node {
	n := &Node{
		NodeType: DocumentNode,
		Document: &Document{
			TabSize:            4,
			CondenseWhiteSpace: true,
		},
	}
	n.OwnerDocument = n
	n.Location.Clear()
	return n
}

func NewElement(od *Node, name string) *Node {
	n := &Node{
		NodeType:      ElementNode,
		Value:         name,
		OwnerDocument: od,
		Element:       &Element{Attributes: NewAttributeSet()},
	}
	n.Location.Clear()
	return n
}

func NewText(od *Node, text string) *Node {
	n := &Node{
		NodeType:      TextNode,
		Value:         text,
		OwnerDocument: od,
		Text:          &Text{},
	}
	n.Location.Clear()
	return n
}

// NewCDATA returns a text node whose CDATA flag is set. The flag forbids
// entity decoding and whitespace condensation on the node.
func NewCDATA(od *Node, text string) *Node {
	n := NewText(od, text)
	n.Text.CData = true
	return n
}

func NewComment(od *Node, data string) *Node {
	n := &Node{
		NodeType:      CommentNode,
		Value:         data,
		OwnerDocument: od,
	}
	n.Location.Clear()
	return n
}

func NewDeclaration(od *Node, version, encoding, standalone string) *Node {
	n := &Node{
		NodeType:      DeclarationNode,
		OwnerDocument: od,
		Declaration: &Declaration{
			Version:    version,
			Encoding:   encoding,
			Standalone: standalone,
		},
	}
	n.Location.Clear()
	return n
}

func NewUnknown(od *Node, data string) *Node {
	n := &Node{
		NodeType:      UnknownNode,
		Value:         data,
		OwnerDocument: od,
	}
	n.Location.Clear()
	return n
}

// Row reports the one-based row captured at parse time, or 0 if the node
// was never stamped.
func (n *Node) Row() int { return n.Location.Row + 1 }

func (n *Node) Col() int { return n.Location.Col + 1 }

// GetDocument walks the parent chain to the owning document node. Returns
// nil for an unlinked subtree.
func (n *Node) GetDocument() *Node {
	for i := n; i != nil; i = i.ParentNode {
		if i.NodeType == DocumentNode {
			return i
		}
	}
	return nil
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// AppendChild links on as the last child of n.
func (n *Node) AppendChild(on *Node) *Node {
	if n.LastChild != nil {
		on.PreviousSibling = n.LastChild
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
		on.PreviousSibling = nil
	}
	on.NextSibling = nil
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

// InsertBefore links on into n's child list immediately before child.
// Returns nil if child is not a child of n.
func (n *Node) InsertBefore(on, child *Node) *Node {
	for i := range n.ChildNodes {
		if n.ChildNodes[i] != child {
			continue
		}
		n.ChildNodes = append(n.ChildNodes[:i+1], n.ChildNodes[i:]...)
		n.ChildNodes[i] = on
		on.ParentNode = n
		on.NextSibling = child
		on.PreviousSibling = child.PreviousSibling
		if child.PreviousSibling != nil {
			child.PreviousSibling.NextSibling = on
		} else {
			n.FirstChild = on
		}
		child.PreviousSibling = on
		return on
	}
	return nil
}

// InsertAfter links on into n's child list immediately after child.
func (n *Node) InsertAfter(on, child *Node) *Node {
	if child == n.LastChild {
		return n.AppendChild(on)
	}
	return n.InsertBefore(on, child.NextSibling)
}

// ReplaceChild swaps child for on, preserving its position. Returns nil if
// child is not a child of n.
func (n *Node) ReplaceChild(on, child *Node) *Node {
	for i := range n.ChildNodes {
		if n.ChildNodes[i] != child {
			continue
		}
		n.ChildNodes[i] = on
		on.ParentNode = n
		on.PreviousSibling = child.PreviousSibling
		on.NextSibling = child.NextSibling
		if on.PreviousSibling != nil {
			on.PreviousSibling.NextSibling = on
		} else {
			n.FirstChild = on
		}
		if on.NextSibling != nil {
			on.NextSibling.PreviousSibling = on
		} else {
			n.LastChild = on
		}
		child.ParentNode = nil
		child.PreviousSibling = nil
		child.NextSibling = nil
		return on
	}
	return nil
}

// RemoveChild unlinks child from n. Returns the removed node, or nil if
// child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	for i := range n.ChildNodes {
		if n.ChildNodes[i] != child {
			continue
		}
		n.ChildNodes = append(n.ChildNodes[:i], n.ChildNodes[i+1:]...)
		if child.PreviousSibling != nil {
			child.PreviousSibling.NextSibling = child.NextSibling
		} else {
			n.FirstChild = child.NextSibling
		}
		if child.NextSibling != nil {
			child.NextSibling.PreviousSibling = child.PreviousSibling
		} else {
			n.LastChild = child.PreviousSibling
		}
		child.ParentNode = nil
		child.PreviousSibling = nil
		child.NextSibling = nil
		return child
	}
	return nil
}

// Clear removes all children.
func (n *Node) Clear() {
	for _, c := range n.ChildNodes {
		c.ParentNode = nil
		c.PreviousSibling = nil
		c.NextSibling = nil
	}
	n.ChildNodes = nil
	n.FirstChild = nil
	n.LastChild = nil
}

// CloneNode copies the node. With deep set, the whole subtree is copied.
// The clone is unlinked from any parent.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		NodeType:      n.NodeType,
		Value:         n.Value,
		OwnerDocument: n.OwnerDocument,
		Location:      n.Location,
	}
	switch n.NodeType {
	case DocumentNode:
		d := *n.Document
		d.err = false
		clone.Document = &d
		clone.OwnerDocument = clone
	case ElementNode:
		clone.Element = &Element{Attributes: n.Attributes.clone()}
	case TextNode:
		t := *n.Text
		clone.Text = &t
	case DeclarationNode:
		d := *n.Declaration
		clone.Declaration = &d
	}
	if deep {
		for _, c := range n.ChildNodes {
			clone.AppendChild(c.CloneNode(true))
		}
	}
	return clone
}

// FirstChildElement returns the first element child, optionally restricted
// to a tag name. An empty name matches any element.
func (n *Node) FirstChildElement(name string) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode && (name == "" || c.Value == name) {
			return c
		}
	}
	return nil
}

// NextSiblingElement returns the next element sibling, optionally
// restricted to a tag name.
func (n *Node) NextSiblingElement(name string) *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.NodeType == ElementNode && (name == "" || s.Value == name) {
			return s
		}
	}
	return nil
}

// RootElement returns the document's top-level element.
func (n *Node) RootElement() *Node {
	return n.FirstChildElement("")
}

// GetText returns the value of the element's first child when that child
// is a text node, a convenience for <tag>text</tag> shapes.
func (n *Node) GetText() string {
	if n.FirstChild != nil && n.FirstChild.NodeType == TextNode {
		return n.FirstChild.Value
	}
	return ""
}

// Blank reports whether a text node's body is entirely whitespace.
func (n *Node) Blank() bool {
	for i := 0; i < len(n.Value); i++ {
		switch n.Value[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}

// Attribute looks up an attribute value by name on an element node.
func (n *Node) Attribute(name string) (string, bool) {
	if n.Element == nil {
		return "", false
	}
	if a := n.Attributes.Find(name); a != nil {
		return a.Value, true
	}
	return "", false
}

// SetAttribute adds or replaces an attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.Element == nil {
		return
	}
	if a := n.Attributes.Find(name); a != nil {
		a.Value = value
		return
	}
	n.Attributes.Add(&Attr{Name: name, Value: value, Document: n.OwnerDocument})
}

func (n *Node) RemoveAttribute(name string) {
	if n.Element != nil {
		n.Attributes.Remove(name)
	}
}

// QueryIntAttribute converts the named attribute to an int.
func (n *Node) QueryIntAttribute(name string) (int, bool) {
	v, ok := n.Attribute(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// QueryFloatAttribute converts the named attribute to a float64.
func (n *Node) QueryFloatAttribute(name string) (float64, bool) {
	v, ok := n.Attribute(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
