package taggle

import "strings"

// Attributes is a read-only view over a start-tag's attribute list, in the
// order they were declared. It is the interface handed to
// ContentHandler.StartElement.
type Attributes interface {
	Len() int
	URI(i int) string
	LocalName(i int) string
	QName(i int) string
	Type(i int) string
	Value(i int) string
	Index(qName string) int
	ValueByQName(qName string) string
}

type attribute struct {
	uri, localName, qName, typ, value string
}

// AttributesImpl is an ordered, mutable list of (uri, localName, qName,
// type, value) tuples. Looking an attribute up by qName replaces it in
// place; a new qName is appended, matching how a start-tag's attributes
// accumulate in document order.
type AttributesImpl struct {
	attrs []attribute
}

var _ Attributes = (*AttributesImpl)(nil)

func (a *AttributesImpl) Len() int { return len(a.attrs) }

func (a *AttributesImpl) URI(i int) string       { return a.attrs[i].uri }
func (a *AttributesImpl) LocalName(i int) string { return a.attrs[i].localName }
func (a *AttributesImpl) QName(i int) string     { return a.attrs[i].qName }
func (a *AttributesImpl) Type(i int) string      { return a.attrs[i].typ }
func (a *AttributesImpl) Value(i int) string     { return a.attrs[i].value }

// Index returns the position of the attribute with the given qName, or -1.
func (a *AttributesImpl) Index(qName string) int {
	for i := range a.attrs {
		if a.attrs[i].qName == qName {
			return i
		}
	}
	return -1
}

// ValueByQName returns the value of the attribute with the given qName,
// or the empty string if there is none.
func (a *AttributesImpl) ValueByQName(qName string) string {
	if i := a.Index(qName); i >= 0 {
		return a.attrs[i].value
	}
	return ""
}

// AddAttribute appends a new attribute. A qName that is already present
// is rejected and the call changes nothing; SetAttributeAt replaces an
// existing attribute.
func (a *AttributesImpl) AddAttribute(uri, localName, qName, typ, value string) {
	if a.Index(qName) >= 0 {
		return
	}
	a.attrs = append(a.attrs, attribute{uri, localName, qName, typ, value})
}

// SetAttributeAt replaces the attribute at index i.
func (a *AttributesImpl) SetAttributeAt(i int, uri, localName, qName, typ, value string) {
	a.attrs[i] = attribute{uri, localName, qName, typ, value}
}

// Clear empties the attribute list while keeping the backing array, so a
// reused AttributesImpl (e.g. from the element arena) avoids reallocating.
func (a *AttributesImpl) Clear() {
	a.attrs = a.attrs[:0]
}

// CopyFrom replaces the receiver's contents with a copy of src's, used
// when a new Element is constructed with an ElementType's default
// attributes per the defaultAttributes feature.
func (a *AttributesImpl) CopyFrom(src *AttributesImpl) {
	a.attrs = append(a.attrs[:0], src.attrs...)
}

// RemoveIf deletes every attribute for which remove returns true.
func (a *AttributesImpl) RemoveIf(remove func(attribute) bool) {
	kept := a.attrs[:0]
	for _, at := range a.attrs {
		if !remove(at) {
			kept = append(kept, at)
		}
	}
	a.attrs = kept
}

// setAttribute implements the schema's attribute-setting policy shared by
// ElementType default attributes and Element instance attributes:
// xmlns/xmlns:* are dropped, empty type defaults to CDATA, non-CDATA
// values are whitespace-normalized, and an existing qName is replaced
// rather than duplicated.
func setAttribute(atts *AttributesImpl, namespaceOf func(name string, attribute bool) string, localNameOf func(name string) string, name, typ, value string) {
	if name == "xmlns" || strings.HasPrefix(name, "xmlns:") {
		return
	}
	ns := namespaceOf(name, true)
	local := localNameOf(name)

	if i := atts.Index(name); i >= 0 {
		actualType := typ
		if actualType == "" {
			actualType = atts.Type(i)
		}
		actualValue := value
		if actualType != "CDATA" {
			actualValue = normalizeWhitespace(value)
		}
		atts.SetAttributeAt(i, ns, local, name, actualType, actualValue)
		return
	}
	actualType := typ
	if actualType == "" {
		actualType = "CDATA"
	}
	actualValue := value
	if actualType != "CDATA" {
		actualValue = normalizeWhitespace(value)
	}
	atts.AddAttribute(ns, local, name, actualType, actualValue)
}

// normalizeWhitespace collapses runs of XML whitespace into a single
// space and trims the result, the normalization XML requires for
// non-CDATA attribute types.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	started := false
	for _, r := range s {
		if isSpace(r) {
			if started {
				inSpace = true
			}
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
		started = true
	}
	return b.String()
}
