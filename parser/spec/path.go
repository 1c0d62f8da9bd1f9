package spec

import "errors"

// ErrPathSyntax is returned when a path has incorrect syntax.
var ErrPathSyntax = errors.New("spec: invalid path")

// A Path is a compiled form of a slash-separated search string over an
// element tree. Supported selectors and filters:
//
//	.               the current element
//	..              the parent of the current element
//	*               all child elements
//	/               the topmost node (usually the document), at the start
//	                  of a path
//	//              all descendants, recursively
//	tag             child elements with the given tag
//	[N]             the element at the given index (1-based; negative
//	                  counts from the end)
//	[@attr]         elements carrying the attribute
//	[@attr='val']   elements whose attribute equals val
//	[tag]           elements with a child element named tag
//	[tag='val']     elements with a child element named tag whose text
//	                  equals val
//	[text()]        elements with non-empty text
//	[text()='val']  elements whose text equals val
type Path struct {
	segments []segment
}

type segment struct {
	sel     selector
	filters []filter
}

type selector interface {
	eval(n *Node, out *candidates)
}

type filter interface {
	eval(in candidates) candidates
}

// CompilePath compiles a search string into a Path.
func CompilePath(path string) (Path, error) {
	var p Path
	s := path
	if s == "" {
		return p, ErrPathSyntax
	}
	if s[0] == '/' {
		if len(s) > 1 && s[1] == '/' {
			p.segments = append(p.segments, segment{sel: selectRoot{}}, segment{sel: selectDescendants{}})
			s = s[2:]
		} else {
			p.segments = append(p.segments, segment{sel: selectRoot{}})
			s = s[1:]
		}
		if s == "" {
			return Path{}, ErrPathSyntax
		}
	}
	for len(s) > 0 {
		var seg segment
		var err error
		s, err = parseSegment(&seg, s)
		if err != nil {
			return Path{}, err
		}
		p.segments = append(p.segments, seg)
		switch {
		case s == "":
		case len(s) > 1 && s[0] == '/' && s[1] == '/':
			p.segments = append(p.segments, segment{sel: selectDescendants{}})
			s = s[2:]
			if s == "" {
				return Path{}, ErrPathSyntax
			}
		case s[0] == '/':
			s = s[1:]
			if s == "" {
				return Path{}, ErrPathSyntax
			}
		default:
			return Path{}, ErrPathSyntax
		}
	}
	if len(p.segments) == 0 {
		return Path{}, ErrPathSyntax
	}
	return p, nil
}

// MustCompilePath is CompilePath for hard-coded paths; it panics on a
// syntax error.
func MustCompilePath(path string) Path {
	p, err := CompilePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(seg *segment, s string) (string, error) {
	switch {
	case len(s) > 1 && s[0] == '.' && s[1] == '.':
		seg.sel = selectParent{}
		s = s[2:]
	case s[0] == '.':
		seg.sel = selectSelf{}
		s = s[1:]
	case s[0] == '*':
		seg.sel = selectChildren{}
		s = s[1:]
	default:
		name, rest := scanName(s)
		if name == "" {
			return "", ErrPathSyntax
		}
		seg.sel = selectChildrenByTag{name}
		s = rest
	}
	for len(s) > 0 && s[0] == '[' {
		end := indexByte(s, ']')
		if end < 0 {
			return "", ErrPathSyntax
		}
		f, err := parseFilter(s[1:end])
		if err != nil {
			return "", err
		}
		seg.filters = append(seg.filters, f)
		s = s[end+1:]
	}
	return s, nil
}

func parseFilter(s string) (filter, error) {
	if s == "" {
		return nil, ErrPathSyntax
	}
	if s[0] == '@' {
		key, rest := scanName(s[1:])
		if key == "" {
			return nil, ErrPathSyntax
		}
		if rest == "" {
			return filterAttrib{key}, nil
		}
		val, ok := scanEquals(rest)
		if !ok {
			return nil, ErrPathSyntax
		}
		return filterAttribValue{key, val}, nil
	}
	if s[0] == '-' || (s[0] >= '0' && s[0] <= '9') {
		index, ok := scanNumber(s)
		if !ok {
			return nil, ErrPathSyntax
		}
		if index > 0 {
			index--
		}
		return filterIndex{index}, nil
	}
	name, rest := scanName(s)
	if name == "" {
		return nil, ErrPathSyntax
	}
	if len(rest) >= 2 && rest[0] == '(' && rest[1] == ')' {
		if name != "text" {
			return nil, ErrPathSyntax
		}
		rest = rest[2:]
		if rest == "" {
			return filterText{}, nil
		}
		val, ok := scanEquals(rest)
		if !ok {
			return nil, ErrPathSyntax
		}
		return filterTextByValue{val}, nil
	}
	if rest == "" {
		return filterChild{name}, nil
	}
	val, ok := scanEquals(rest)
	if !ok {
		return nil, ErrPathSyntax
	}
	return filterChildText{name, val}, nil
}

func scanName(s string) (name, rest string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '/' || c == '[' || c == ']' || c == '=' || c == '(' || c == '@' {
			break
		}
		i++
	}
	return s[:i], s[i:]
}

func scanEquals(s string) (val string, ok bool) {
	if len(s) < 3 || s[0] != '=' {
		return "", false
	}
	quote := s[1]
	if quote != '\'' && quote != '"' {
		return "", false
	}
	end := indexByte(s[2:], quote)
	if end < 0 || 2+end+1 != len(s) {
		return "", false
	}
	return s[2 : 2+end], true
}

func scanNumber(s string) (int, bool) {
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i++
	}
	if i == len(s) {
		return 0, false
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// candidates is an ordered, deduplicated list of matched elements.
type candidates struct {
	list  []*Node
	table map[*Node]bool
}

func (c *candidates) add(n *Node) {
	if c.table == nil {
		c.table = make(map[*Node]bool)
	}
	if c.table[n] {
		return
	}
	c.table[n] = true
	c.list = append(c.list, n)
}

func (c *candidates) merge(other candidates) {
	for _, n := range other.list {
		c.add(n)
	}
}

type selectRoot struct{}

// selectRoot yields the topmost node, usually the document, so that the
// next segment selects among the top-level children.
func (selectRoot) eval(n *Node, out *candidates) {
	root := n
	for root.ParentNode != nil {
		root = root.ParentNode
	}
	out.add(root)
}

type selectSelf struct{}

func (selectSelf) eval(n *Node, out *candidates) {
	out.add(n)
}

type selectParent struct{}

func (selectParent) eval(n *Node, out *candidates) {
	if n.ParentNode != nil && n.ParentNode.NodeType == ElementNode {
		out.add(n.ParentNode)
	}
}

type selectChildren struct{}

func (selectChildren) eval(n *Node, out *candidates) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			out.add(c)
		}
	}
}

type selectChildrenByTag struct {
	tag string
}

func (s selectChildrenByTag) eval(n *Node, out *candidates) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode && c.Value == s.tag {
			out.add(c)
		}
	}
}

type selectDescendants struct{}

// selectDescendants yields the node, when it is an element, and every
// element beneath it, in document order.
func (selectDescendants) eval(n *Node, out *candidates) {
	var walk func(*Node)
	walk = func(e *Node) {
		if e.NodeType == ElementNode {
			out.add(e)
		}
		for c := e.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
}

type filterIndex struct {
	index int
}

func (f filterIndex) eval(in candidates) candidates {
	var out candidates
	if f.index >= 0 {
		if f.index < len(in.list) {
			out.add(in.list[f.index])
		}
	} else if -f.index <= len(in.list) {
		out.add(in.list[len(in.list)+f.index])
	}
	return out
}

type filterAttrib struct {
	key string
}

func (f filterAttrib) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		if _, ok := n.Attribute(f.key); ok {
			out.add(n)
		}
	}
	return out
}

type filterAttribValue struct {
	key, value string
}

func (f filterAttribValue) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		if v, ok := n.Attribute(f.key); ok && v == f.value {
			out.add(n)
		}
	}
	return out
}

type filterChild struct {
	tag string
}

func (f filterChild) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		if n.FirstChildElement(f.tag) != nil {
			out.add(n)
		}
	}
	return out
}

type filterChildText struct {
	tag, value string
}

func (f filterChildText) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		for c := n.FirstChildElement(f.tag); c != nil; c = c.NextSiblingElement(f.tag) {
			if c.GetText() == f.value {
				out.add(n)
				break
			}
		}
	}
	return out
}

type filterText struct{}

func (filterText) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		if n.GetText() != "" {
			out.add(n)
		}
	}
	return out
}

type filterTextByValue struct {
	value string
}

func (f filterTextByValue) eval(in candidates) candidates {
	var out candidates
	for _, n := range in.list {
		if n.GetText() == f.value {
			out.add(n)
		}
	}
	return out
}

// FindElementsPath returns all elements matching the compiled path,
// searching from n. Results keep document order and are deduplicated.
func (n *Node) FindElementsPath(p Path) []*Node {
	in := candidates{}
	in.add(n)
	for _, seg := range p.segments {
		// Filters are scoped per source element, so [1] means "first
		// matching child of this element", not first overall.
		var next candidates
		for _, e := range in.list {
			var found candidates
			seg.sel.eval(e, &found)
			for _, f := range seg.filters {
				found = f.eval(found)
			}
			next.merge(found)
		}
		in = next
	}
	return in.list
}

// FindElements compiles path and returns all matches; a syntax error
// yields nil.
func (n *Node) FindElements(path string) []*Node {
	p, err := CompilePath(path)
	if err != nil {
		return nil
	}
	return n.FindElementsPath(p)
}

// FindElement returns the first match of path, or nil.
func (n *Node) FindElement(path string) *Node {
	if m := n.FindElements(path); len(m) > 0 {
		return m[0]
	}
	return nil
}
