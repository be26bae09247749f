package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taggle-go/taggle"
)

// serializer prints a SAX event stream as XML text, the streaming
// equivalent of the teacher's printer type: printStructure walked a
// finished tree depth-first printing open/close tags as it went, while
// this type prints each tag the instant Start/EndElement fires and
// tracks depth itself since there is no tree to recurse over.
type serializer struct {
	w       io.Writer
	pretty  bool
	depth   int
	inCDATA bool
}

func newSerializer(w io.Writer, pretty bool) *serializer {
	return &serializer{w: w, pretty: pretty}
}

var (
	_ taggle.ContentHandler = (*serializer)(nil)
	_ taggle.LexicalHandler = (*serializer)(nil)
	_ taggle.ErrorHandler   = (*serializer)(nil)
)

func (s *serializer) indent() {
	if !s.pretty {
		return
	}
	fmt.Fprintln(s.w)
	for i := 0; i < s.depth; i++ {
		fmt.Fprint(s.w, "  ")
	}
}

func (s *serializer) SetDocumentLocator(taggle.Locator) {}

func (s *serializer) StartDocument() error { return nil }

func (s *serializer) EndDocument() error {
	if s.pretty {
		fmt.Fprintln(s.w)
	}
	return nil
}

func (s *serializer) StartPrefixMapping(prefix, uri string) error { return nil }
func (s *serializer) EndPrefixMapping(prefix string) error        { return nil }

func (s *serializer) StartElement(uri, localName, qName string, atts taggle.Attributes) error {
	s.indent()
	fmt.Fprint(s.w, "<"+qName)
	for i := 0; i < atts.Len(); i++ {
		fmt.Fprintf(s.w, " %s=%q", atts.QName(i), escapeAttr(atts.Value(i)))
	}
	fmt.Fprint(s.w, ">")
	s.depth++
	return nil
}

func (s *serializer) EndElement(uri, localName, qName string) error {
	s.depth--
	s.indent()
	fmt.Fprint(s.w, "</"+qName+">")
	return nil
}

func (s *serializer) Characters(text string) error {
	if s.inCDATA {
		fmt.Fprint(s.w, text)
		return nil
	}
	fmt.Fprint(s.w, escapeText(text))
	return nil
}

func (s *serializer) IgnorableWhitespace(text string) error {
	fmt.Fprint(s.w, text)
	return nil
}

func (s *serializer) ProcessingInstruction(target, data string) error {
	s.indent()
	fmt.Fprint(s.w, "<?"+target+" "+data+"?>")
	return nil
}

func (s *serializer) Comment(text string) error {
	s.indent()
	fmt.Fprint(s.w, "<!--"+text+"-->")
	return nil
}

func (s *serializer) StartCDATA() error {
	s.inCDATA = true
	fmt.Fprint(s.w, "<![CDATA[")
	return nil
}

func (s *serializer) EndCDATA() error {
	s.inCDATA = false
	fmt.Fprint(s.w, "]]>")
	return nil
}

func (s *serializer) StartDTD(name, publicID, systemID string) error {
	s.indent()
	switch {
	case publicID != "":
		fmt.Fprintf(s.w, "<!DOCTYPE %s PUBLIC %q %q>", name, publicID, systemID)
	case systemID != "":
		fmt.Fprintf(s.w, "<!DOCTYPE %s SYSTEM %q>", name, systemID)
	default:
		fmt.Fprintf(s.w, "<!DOCTYPE %s>", name)
	}
	return nil
}

func (s *serializer) EndDTD() error { return nil }

func (s *serializer) Error(err *taggle.SAXParseException) {
	fmt.Fprintln(os.Stderr, "taggle: error:", err)
}

func (s *serializer) FatalError(err *taggle.SAXParseException) {
	fmt.Fprintln(os.Stderr, "taggle: fatal:", err)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
