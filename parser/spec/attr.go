package spec

// Attr is a name/value pair on an element. It carries a back-reference to
// its owning document so the attribute parser can report errors, and the
// location captured when it was parsed.
type Attr struct {
	Name     string
	Value    string
	Document *Node
	Location Cursor
}

func (a *Attr) Row() int { return a.Location.Row + 1 }

func (a *Attr) Col() int { return a.Location.Col + 1 }

// AttributeSet is the ordered collection of attributes owned by one
// element. Iteration order is insertion order; names are unique — callers
// check Find before Add.
type AttributeSet struct {
	attrs []*Attr
}

func NewAttributeSet() *AttributeSet {
	return &AttributeSet{}
}

func (s *AttributeSet) Len() int {
	return len(s.attrs)
}

func (s *AttributeSet) At(i int) *Attr {
	return s.attrs[i]
}

// Find returns the attribute with the given name, or nil.
func (s *AttributeSet) Find(name string) *Attr {
	for _, a := range s.attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (s *AttributeSet) Add(a *Attr) {
	s.attrs = append(s.attrs, a)
}

// Remove unlinks the named attribute, preserving the order of the rest.
func (s *AttributeSet) Remove(name string) {
	for i, a := range s.attrs {
		if a.Name == name {
			s.attrs = append(s.attrs[:i], s.attrs[i+1:]...)
			return
		}
	}
}

func (s *AttributeSet) clone() *AttributeSet {
	c := NewAttributeSet()
	for _, a := range s.attrs {
		dup := *a
		c.attrs = append(c.attrs, &dup)
	}
	return c
}
