package taggle

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// capture is a ContentHandler/LexicalHandler/ErrorHandler test double
// that records every event as a short trace line, the same style the
// teacher's own fixtures use to assert against a flattened event log
// rather than a rebuilt tree.
type capture struct {
	events []string
	errs   []*SAXParseException
	fatals []*SAXParseException
}

func (c *capture) add(format string, args ...interface{}) {
	c.events = append(c.events, fmt.Sprintf(format, args...))
}

func (c *capture) SetDocumentLocator(Locator) {}
func (c *capture) StartDocument() error       { c.add("start-document"); return nil }
func (c *capture) EndDocument() error         { c.add("end-document"); return nil }
func (c *capture) StartPrefixMapping(prefix, uri string) error {
	c.add("start-prefix:%s=%s", prefix, uri)
	return nil
}
func (c *capture) EndPrefixMapping(prefix string) error {
	c.add("end-prefix:%s", prefix)
	return nil
}
func (c *capture) StartElement(uri, local, qName string, atts Attributes) error {
	var b strings.Builder
	b.WriteString("start:" + qName)
	for i := 0; i < atts.Len(); i++ {
		fmt.Fprintf(&b, " %s=%s", atts.QName(i), atts.Value(i))
	}
	c.add(b.String())
	return nil
}
func (c *capture) EndElement(uri, local, qName string) error {
	c.add("end:%s", qName)
	return nil
}
func (c *capture) Characters(text string) error {
	c.add("text:%s", text)
	return nil
}
func (c *capture) IgnorableWhitespace(text string) error {
	c.add("ignorable:%q", text)
	return nil
}
func (c *capture) ProcessingInstruction(target, data string) error {
	c.add("pi:%s %s", target, data)
	return nil
}
func (c *capture) Comment(text string) error {
	c.add("comment:%s", text)
	return nil
}
func (c *capture) StartCDATA() error { c.add("start-cdata"); return nil }
func (c *capture) EndCDATA() error   { c.add("end-cdata"); return nil }
func (c *capture) StartDTD(name, publicID, systemID string) error {
	c.add("doctype:%s %s %s", name, publicID, systemID)
	return nil
}
func (c *capture) EndDTD() error { return nil }
func (c *capture) Error(err *SAXParseException) {
	c.errs = append(c.errs, err)
}
func (c *capture) FatalError(err *SAXParseException) {
	c.fatals = append(c.fatals, err)
}

var (
	_ ContentHandler = (*capture)(nil)
	_ LexicalHandler = (*capture)(nil)
	_ ErrorHandler   = (*capture)(nil)
)

func parse(t *testing.T, html string, opts ...Option) *capture {
	t.Helper()
	c := &capture{}
	allOpts := append([]Option{
		WithContentHandler(c),
		WithLexicalHandler(c),
		WithErrorHandler(c),
	}, opts...)
	p := NewParser(allOpts...)
	if err := p.Parse(strings.NewReader(html), "", ""); err != nil {
		t.Fatalf("Parse(%q) returned error: %v", html, err)
	}
	return c
}

func mustContain(t *testing.T, events []string, want string) {
	t.Helper()
	for _, e := range events {
		if e == want {
			return
		}
	}
	t.Errorf("expected event %q, got %v", want, events)
}

func TestParserWellFormedDocument(t *testing.T) {
	c := parse(t, `<html><body><p>hello</p></body></html>`)
	want := []string{
		"start-document",
		"start:html",
		"start:body",
		"start:p",
		"text:hello",
		"end:p",
		"end:body",
		"end:html",
		"end-document",
	}
	for _, w := range want {
		mustContain(t, c.events, w)
	}
}

func TestParserBrCarriesDefaultClearAttribute(t *testing.T) {
	// The canonical end-to-end scenario: clear="none" never appears in
	// the markup, only in <br>'s default attributes in the HTML schema.
	c := parse(t, `<html><body>woo!<br></body></html>`)
	want := []string{
		"start-document",
		"start:html",
		"start:body",
		"text:woo!",
		"start:br clear=none",
		"end:br",
		"end:body",
		"end:html",
		"end-document",
	}
	for _, w := range want {
		mustContain(t, c.events, w)
	}
}

func TestParserClosesUnclosedElements(t *testing.T) {
	c := parse(t, `<html><body><p>one<p>two</body></html>`)
	// a second <p> implicitly closes the first; both must end up closed
	// by end of document.
	var opens, closes int
	for _, e := range c.events {
		if e == "start:p" {
			opens++
		}
		if e == "end:p" {
			closes++
		}
	}
	if opens != 2 || closes != 2 {
		t.Errorf("opens=%d closes=%d, want 2 and 2 (events: %v)", opens, closes, c.events)
	}
}

func TestParserMisnestedTagsRectify(t *testing.T) {
	c := parse(t, `<b>bold <i>both</b> italic</i>`)
	// </b> closing before </i> forces <i> restartably popped and
	// reopened; there must be two start:i and two end:i events.
	var starts, ends int
	for _, e := range c.events {
		if e == "start:i" {
			starts++
		}
		if e == "end:i" {
			ends++
		}
	}
	if starts < 2 || ends < 2 {
		t.Errorf("expected <i> to be restarted after the mismatched </b>, got starts=%d ends=%d (events: %v)", starts, ends, c.events)
	}
}

func TestParserBogonElementRegisteredByDefault(t *testing.T) {
	c := parse(t, `<html><body><bogus>x</bogus></body></html>`)
	mustContain(t, c.events, "start:bogus")
	mustContain(t, c.events, "end:bogus")
}

func TestParserIgnoreBogonsFeatureDropsUnknownElement(t *testing.T) {
	c := parse(t, `<html><body><bogus>x</bogus></body></html>`, WithFeature(FeatureIgnoreBogons, true))
	for _, e := range c.events {
		if strings.Contains(e, "bogus") {
			t.Errorf("expected no bogus element events with ignore-bogons on, got %q", e)
		}
	}
}

func TestParserCDATAElementEndTagMismatchIsLiteral(t *testing.T) {
	c := parse(t, `<script>var x = "</foo>";</script>`)
	var sawLiteralCloseFoo bool
	for _, e := range c.events {
		if strings.Contains(e, "</foo>") {
			sawLiteralCloseFoo = true
		}
	}
	if !sawLiteralCloseFoo {
		t.Errorf("expected the mismatched </foo> inside <script> to surface as literal text, got %v", c.events)
	}
	mustContain(t, c.events, "end:script")
}

func TestParserCapturesDoctype(t *testing.T) {
	c := parse(t, `<!DOCTYPE html><html></html>`)
	var sawDoctype bool
	for _, e := range c.events {
		if strings.HasPrefix(e, "doctype:html") {
			sawDoctype = true
		}
	}
	if !sawDoctype {
		t.Errorf("expected a doctype event, got %v", c.events)
	}
}

func TestParserExpandsNamedAndNumericEntities(t *testing.T) {
	// Each entity reference flushes the pending run of literal text
	// before it, so the resolved characters are not reassembled into a
	// single Characters call.
	c := parse(t, `<p>a&amp;b&#65;c&#x42;d</p>`)
	mustContain(t, c.events, "text:a")
	mustContain(t, c.events, "text:&b")
	mustContain(t, c.events, "text:Ac")
	mustContain(t, c.events, "text:Bd")
}

func TestParserExpandsEntitiesInAttributeValues(t *testing.T) {
	c := parse(t, `<a href="x?a=1&amp;b=2">link</a>`)
	mustContain(t, c.events, "start:a href=x?a=1&b=2")
}

func TestParserNamespacesFeatureOff(t *testing.T) {
	c := parse(t, `<html><body></body></html>`, WithFeature(FeatureNamespaces, false))
	mustContain(t, c.events, "start:html")
}

func TestParserCommentsRouteToLexicalHandler(t *testing.T) {
	c := parse(t, `<html><!-- note --><body></body></html>`)
	mustContain(t, c.events, "comment: note ")
}

// failOnThirdElement returns a non-nil error from StartElement the third
// time it fires, exercising the plain handler-error path through fail
// rather than context cancellation.
type failOnThirdElement struct {
	*capture
	starts int
	failAt int
	failed error
}

func (c *failOnThirdElement) StartElement(uri, local, qName string, atts Attributes) error {
	c.starts++
	if err := c.capture.StartElement(uri, local, qName, atts); err != nil {
		return err
	}
	if c.starts == c.failAt {
		c.failed = fmt.Errorf("refusing to open %s", qName)
		return c.failed
	}
	return nil
}

func TestParserHandlerErrorAbortsParseAndReportsFatal(t *testing.T) {
	c := &capture{}
	failing := &failOnThirdElement{capture: c, failAt: 3}
	p := NewParser(
		WithContentHandler(failing),
		WithLexicalHandler(c),
		WithErrorHandler(c),
	)
	err := p.Parse(strings.NewReader(`<html><body><p>one</p><p>two</p><p>three</p></body></html>`), "", "")
	if err == nil {
		t.Fatal("expected Parse to return the handler's error")
	}
	if err != failing.failed {
		t.Errorf("Parse returned %v, want the handler's own error %v", err, failing.failed)
	}
	if len(c.fatals) == 0 {
		t.Error("expected the handler error to be reported through ErrorHandler.FatalError")
	}
	for _, e := range c.events {
		if strings.Contains(e, "three") {
			t.Errorf("expected scanning to stop once the handler failed, got %v", c.events)
		}
	}
}

func TestParseContextCancelledBeforeStart(t *testing.T) {
	c := &capture{}
	p := NewParser(
		WithContentHandler(c),
		WithLexicalHandler(c),
		WithErrorHandler(c),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.ParseContext(ctx, strings.NewReader(`<html><body><p>hi</p></body></html>`), "", "")
	if err == nil {
		t.Fatal("ParseContext with an already-cancelled context should return an error")
	}
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(c.fatals) == 0 {
		t.Error("expected a fatal error to be reported through the ErrorHandler")
	}
}

func TestParseContextCancelledMidDocumentStopsEmittingElements(t *testing.T) {
	c := &capture{}
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel as soon as the first element opens, then make sure nothing
	// past that point was emitted.
	cancelling := &cancelOnFirstElement{capture: c, cancel: cancel}
	p := NewParser(
		WithContentHandler(cancelling),
		WithLexicalHandler(c),
		WithErrorHandler(c),
	)
	err := p.ParseContext(ctx, strings.NewReader(`<html><body><p>one</p><p>two</p><p>three</p></body></html>`), "", "")
	if err == nil {
		t.Fatal("expected ParseContext to return the context's cancellation error")
	}
	for _, e := range c.events {
		if strings.Contains(e, "three") {
			t.Errorf("expected scanning to stop before reaching the third <p>, got %v", c.events)
		}
	}
}

// cancelOnFirstElement wraps a capture and cancels its context the first
// time StartElement fires, exercising the gi/stagc cancellation poll
// from inside a live parse rather than before it starts.
type cancelOnFirstElement struct {
	*capture
	cancel  context.CancelFunc
	fired   bool
}

func (c *cancelOnFirstElement) StartElement(uri, local, qName string, atts Attributes) error {
	err := c.capture.StartElement(uri, local, qName, atts)
	if !c.fired {
		c.fired = true
		c.cancel()
	}
	return err
}
