package taggle

// ContentHandler receives notification of the logical content of a
// document: element and character data boundaries, in document order.
// A Parser drives exactly one ContentHandler per Parse call.
type ContentHandler interface {
	SetDocumentLocator(l Locator)
	StartDocument() error
	EndDocument() error
	StartPrefixMapping(prefix, uri string) error
	EndPrefixMapping(prefix string) error
	StartElement(uri, localName, qName string, atts Attributes) error
	EndElement(uri, localName, qName string) error
	Characters(text string) error
	IgnorableWhitespace(text string) error
	ProcessingInstruction(target, data string) error
}

// LexicalHandler receives notification of lexical information a
// ContentHandler can't express: comments, CDATA section boundaries, and
// the document type declaration.
type LexicalHandler interface {
	Comment(text string) error
	StartCDATA() error
	EndCDATA() error
	StartDTD(name, publicID, systemID string) error
	EndDTD() error
}

// ErrorHandler receives notification of parser-reported errors; the
// driver itself never reports tokeniser- or tree-level malformation
// (see SPEC_FULL.md §7); it is invoked, through FatalError, when reading
// the input fails, when a handler returns an error, or when the parse's
// context is cancelled.
type ErrorHandler interface {
	Error(err *SAXParseException)
	FatalError(err *SAXParseException)
}

// EntityResolver allows an application to intercept external entity/DTD
// resolution; Parse calls it once, for compatibility, when the first
// pushed element matches the captured doctype name. Its result is
// discarded — this parser never dereferences external entities.
type EntityResolver interface {
	ResolveEntity(publicID, systemID string) error
}

// Locator tracks the position of the last token boundary the scanner
// marked, for error reporting and for SetDocumentLocator.
type Locator interface {
	LineNumber() int
	ColumnNumber() int
	PublicID() string
	SystemID() string
}

// NopEntityResolver is an EntityResolver that does nothing, used as the
// Parser default.
type NopEntityResolver struct{}

func (NopEntityResolver) ResolveEntity(publicID, systemID string) error { return nil }

// DefaultHandler is a no-op implementation of ContentHandler,
// LexicalHandler and ErrorHandler that a caller may embed and override
// selectively, matching the common SAX idiom of subclassing a "does
// nothing" default rather than implementing every method.
type DefaultHandler struct{}

func (DefaultHandler) SetDocumentLocator(Locator)                                {}
func (DefaultHandler) StartDocument() error                                      { return nil }
func (DefaultHandler) EndDocument() error                                        { return nil }
func (DefaultHandler) StartPrefixMapping(prefix, uri string) error               { return nil }
func (DefaultHandler) EndPrefixMapping(prefix string) error                      { return nil }
func (DefaultHandler) StartElement(uri, local, qName string, a Attributes) error { return nil }
func (DefaultHandler) EndElement(uri, local, qName string) error                 { return nil }
func (DefaultHandler) Characters(text string) error                             { return nil }
func (DefaultHandler) IgnorableWhitespace(text string) error                     { return nil }
func (DefaultHandler) ProcessingInstruction(target, data string) error          { return nil }
func (DefaultHandler) Comment(text string) error                                { return nil }
func (DefaultHandler) StartCDATA() error                                        { return nil }
func (DefaultHandler) EndCDATA() error                                          { return nil }
func (DefaultHandler) StartDTD(name, publicID, systemID string) error           { return nil }
func (DefaultHandler) EndDTD() error                                            { return nil }
func (DefaultHandler) Error(err *SAXParseException)                              {}
func (DefaultHandler) FatalError(err *SAXParseException)                        {}

var (
	_ ContentHandler = DefaultHandler{}
	_ LexicalHandler = DefaultHandler{}
	_ ErrorHandler   = DefaultHandler{}
)
