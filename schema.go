package taggle

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"
)

// Schema is a registry of ElementType records keyed by lowercased name,
// plus a named-entity table, a root element type, and the namespace URI
// and prefix this vocabulary is reported under. HTMLSchema (htmlschema.go)
// is the concrete, pre-populated Schema this package ships; a caller may
// also build a custom one with the same methods for a different
// tag-soup vocabulary.
type Schema struct {
	elementTypes map[string]*ElementType
	entities     map[string]rune
	root         *ElementType
	uri          string
	prefix       string
}

// NewSchema returns an empty schema with the given namespace URI and
// prefix; call ElementType/Attribute/Parent/Entity to populate it.
func NewSchema(uri, prefix string) *Schema {
	return &Schema{
		elementTypes: make(map[string]*ElementType),
		entities:     make(map[string]rune),
		uri:          uri,
		prefix:       prefix,
	}
}

// ElementType registers (or replaces) an element type. If memberOf is
// exactly M_ROOT, this becomes the schema's root element type.
func (s *Schema) ElementType(name string, model, memberOf, flags uint32) {
	t := &ElementType{name: name, model: model, memberOf: memberOf, flags: flags, schema: s}
	t.namespace = t.namespaceNameOf(name, false)
	t.localName = localNameOf(name)
	lname := strings.ToLower(name)
	s.elementTypes[lname] = t
	if memberOf == modelRoot {
		s.root = t
	}
}

// Attribute sets a default attribute value on a previously registered
// element type; it panics if elemName is unknown, mirroring the fatal
// misconfiguration the original schema builder raises (this can only
// happen for a hand-rolled schema, never for HTMLSchema, which is
// constructed once and verified by its own tests).
func (s *Schema) Attribute(elemName, attrName, typ, value string) {
	e := s.GetElementType(elemName)
	if e == nil {
		panic(fmt.Sprintf("taggle: attribute %q specified for unknown element type %q", attrName, elemName))
	}
	e.setAttribute(attrName, typ, value)
}

// Parent records the natural ancestor used to auto-insert a missing
// container around child when rectifying the tree.
func (s *Schema) Parent(childName, parentName string) {
	child := s.GetElementType(childName)
	parent := s.GetElementType(parentName)
	if child == nil {
		panic(fmt.Sprintf("taggle: no child %q for parent %q", childName, parentName))
	}
	if parent == nil {
		panic(fmt.Sprintf("taggle: no parent %q for child %q", parentName, childName))
	}
	child.parent = parent
}

// Entity installs a named character entity (e.g. "amp" -> '&').
func (s *Schema) Entity(name string, value rune) {
	s.entities[name] = value
}

// GetElementType looks up an element type case-insensitively, returning
// nil if the name is unknown to this schema.
func (s *Schema) GetElementType(name string) *ElementType {
	lname := strings.ToLower(name)
	if a := atom.Lookup([]byte(lname)); a != 0 {
		if t, ok := s.elementTypes[a.String()]; ok {
			return t
		}
	}
	return s.elementTypes[lname]
}

// GetEntity returns the codepoint for a named entity, or 0 if unknown.
func (s *Schema) GetEntity(name string) rune {
	return s.entities[name]
}

// RootElementType returns the schema's designated root element type
// (e.g. <html>), or nil if none was registered with memberOf == M_ROOT.
func (s *Schema) RootElementType() *ElementType {
	return s.root
}

// URI returns the namespace URI this schema's elements are reported
// under (empty string disables namespace reporting for this schema).
func (s *Schema) URI() string { return s.uri }

// Prefix returns the namespace prefix paired with URI.
func (s *Schema) Prefix() string { return s.prefix }
