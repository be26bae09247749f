package taggle

import "strings"

// Content model / membership reserved bits, and element flag bits.
const (
	modelAny    = ^uint32(0)
	modelEmpty  = uint32(0)
	modelPCDATA = uint32(1) << 30
	modelRoot   = uint32(1) << 31

	flagRestart = uint32(1)
	flagCDATA   = uint32(2)
	flagNoforce = uint32(4)
)

// ElementType describes the policy for one kind of element: what it can
// contain, what it's a member of, its structural flags, default
// attributes, and its natural parent for auto-insertion.
type ElementType struct {
	name      string
	namespace string
	localName string
	model     uint32
	memberOf  uint32
	flags     uint32
	defaults  AttributesImpl
	parent    *ElementType
	schema    *Schema
}

// canContain reports whether an element of type t may directly contain an
// element of type other, per the model/memberOf bitset invariant.
func (t *ElementType) canContain(other *ElementType) bool {
	return t.model&other.memberOf != 0
}

// namespaceNameOf derives the namespace URI for a Qname belonging to this
// type's schema. attribute distinguishes attribute names (which default
// to the empty namespace when unprefixed) from element names (which
// default to the schema's own URI).
func (t *ElementType) namespaceNameOf(name string, attribute bool) string {
	colon := strings.IndexByte(name, ':')
	if colon < 0 {
		if attribute {
			return ""
		}
		return t.schema.uri
	}
	prefix := name[:colon]
	if prefix == "xml" {
		return "http://www.w3.org/XML/1998/namespace"
	}
	return "urn:x-prefix:" + prefix
}

func localNameOf(name string) string {
	if colon := strings.IndexByte(name, ':'); colon >= 0 {
		return name[colon+1:]
	}
	return name
}

// setAttribute installs a default attribute on this element type.
func (t *ElementType) setAttribute(name, typ, value string) {
	setAttribute(&t.defaults, t.namespaceNameOf, localNameOf, name, typ, value)
}

// Element is a runtime instance of an ElementType: its own attribute
// list (seeded from the type's defaults), whether it has been precloseed
// by an F_NOFORCE ancestor, and a next pointer that threads it onto
// exactly one of two lists at a time: the parser's open-element stack, or
// the saved/restart queue of formatting elements waiting to be reopened.
type Element struct {
	typ       *ElementType
	atts      AttributesImpl
	next      *Element
	preclosed bool
}

// newElement allocates (from pool) and initializes an Element for typ,
// optionally seeded with the type's default attributes.
func newElement(pool *elementArena, typ *ElementType, defaultAttributes bool) *Element {
	e := pool.get()
	e.typ = typ
	e.next = nil
	e.preclosed = false
	e.atts.Clear()
	if defaultAttributes {
		e.atts.CopyFrom(&typ.defaults)
	}
	return e
}

func (e *Element) name() string          { return e.typ.name }
func (e *Element) localName() string     { return e.typ.localName }
func (e *Element) namespaceName() string { return e.typ.namespace }
func (e *Element) model() uint32         { return e.typ.model }
func (e *Element) memberOf() uint32      { return e.typ.memberOf }
func (e *Element) flags() uint32         { return e.typ.flags }
func (e *Element) parentType() *ElementType {
	return e.typ.parent
}

func (e *Element) canContain(other *Element) bool {
	return e.typ.canContain(other.typ)
}

// setAttribute sets an attribute on this element instance, delegating the
// canonicalization policy to the owning type.
func (e *Element) setAttribute(name, typ, value string) {
	setAttribute(&e.atts, e.typ.namespaceNameOf, localNameOf, name, typ, value)
}

// anonymize strips identity-bearing attributes (ID-typed, or literally
// named "name") before an element is parked on the restart queue, so a
// reopened formatting element never duplicates an id/name from its first
// incarnation.
func (e *Element) anonymize() {
	e.atts.RemoveIf(func(a attribute) bool {
		return a.typ == "ID" || a.qName == "name"
	})
}

// clean drops attributes with no local name or no value, immediately
// before the element is pushed and its start-tag reported.
func (e *Element) clean() {
	e.atts.RemoveIf(func(a attribute) bool {
		return a.localName == "" || a.value == ""
	})
}

func (e *Element) preclose() { e.preclosed = true }

// elementArena is a slab allocator for Element values, generalized from
// the teacher's nodeArena: it hands out pointers into a backing slice
// that grows in powers of two, amortizing per-Element heap allocation
// during a parse that may construct thousands of short-lived elements
// (auto-inserted ancestors, restart-queue entries, bogons).
type elementArena struct {
	slab      []Element
	chunkSize int
}

const (
	elementArenaStartSize = 100
	elementArenaMaxSize   = 20000
)

func newElementArena() *elementArena {
	return &elementArena{chunkSize: elementArenaStartSize}
}

func (a *elementArena) get() *Element {
	if len(a.slab) == 0 {
		a.slab = make([]Element, a.chunkSize)
		a.chunkSize *= 2
		if a.chunkSize > elementArenaMaxSize {
			a.chunkSize = elementArenaMaxSize
		}
	}
	e := &a.slab[len(a.slab)-1]
	a.slab = a.slab[:len(a.slab)-1]
	return e
}
