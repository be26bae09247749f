package taggle

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// legal is the set of characters kept verbatim by cleanPublicid; every
// other character in a public identifier collapses to a single space.
const legal = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-'()+,./:=?;!*#@$_%"

// Parser drives a Scanner over an input document, rectifying the
// resulting tag soup against a Schema and reporting the outcome through
// a ContentHandler/LexicalHandler/ErrorHandler/EntityResolver, in the
// manner of a SAX2 XMLReader. A Parser is single-threaded: Parse must
// not be called concurrently with itself or reused across goroutines,
// and two Parser values constructed independently share no state (each
// owns its own Schema reference, Scanner, and element arena).
type Parser struct {
	contentHandler ContentHandler
	lexicalHandler LexicalHandler
	errorHandler   ErrorHandler
	entityResolver EntityResolver

	schema  *Schema
	scanner *Scanner
	arena   *elementArena

	features map[string]bool

	stack *Element
	saved *Element
	pcdataElem *Element

	newElement    *Element
	attributeName string
	piTarget      string
	entityValue   rune
	virginStack   bool

	doctypeIsPresent bool
	doctypeName      string
	doctypePublicID  string
	doctypeSystemID  string

	publicID, systemID string

	ctx context.Context
	err error
}

var _ scanHandler = (*Parser)(nil)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithContentHandler sets the ContentHandler that receives element and
// character data events. Required for a Parse call to be useful; a
// Parser with no ContentHandler set silently discards everything.
func WithContentHandler(h ContentHandler) Option {
	return func(p *Parser) { p.contentHandler = h }
}

// WithLexicalHandler sets the handler for comments, CDATA boundaries
// and the document type declaration.
func WithLexicalHandler(h LexicalHandler) Option {
	return func(p *Parser) { p.lexicalHandler = h }
}

// WithErrorHandler sets the handler notified, as a fatal error, of a
// failed read of the input, an error returned by a handler, or a
// cancelled context.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Parser) { p.errorHandler = h }
}

// WithEntityResolver sets the resolver consulted once per parse, when
// the first element pushed matches the captured doctype name.
func WithEntityResolver(r EntityResolver) Option {
	return func(p *Parser) { p.entityResolver = r }
}

// WithSchema overrides the default HTMLSchema.
func WithSchema(s *Schema) Option {
	return func(p *Parser) { p.schema = s }
}

// WithFeature pre-sets a feature flag before the first Parse call.
func WithFeature(uri string, value bool) Option {
	return func(p *Parser) {
		if p.features == nil {
			p.features = initialFeatures()
		}
		p.features[uri] = value
	}
}

// NewParser returns a Parser ready for Parse, defaulting to HTMLSchema,
// a no-op LexicalHandler/ErrorHandler/EntityResolver, and the standard
// tagsoup feature defaults.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		lexicalHandler: DefaultHandler{},
		errorHandler:   DefaultHandler{},
		entityResolver: NopEntityResolver{},
		contentHandler: DefaultHandler{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.schema == nil {
		p.schema = HTMLSchema()
	}
	// gi registers bogons as it meets them, so the parser works on its own
	// copy of the element table and never mutates the configured schema.
	own := NewSchema(p.schema.uri, p.schema.prefix)
	for name, t := range p.schema.elementTypes {
		own.elementTypes[name] = t
	}
	own.entities = p.schema.entities
	own.root = p.schema.root
	p.schema = own
	if p.features == nil {
		p.features = initialFeatures()
	}
	return p
}

// GetFeature reports the current value of a feature URI; an unrecognised
// URI reports false.
func (p *Parser) GetFeature(uri string) bool {
	if p.features == nil {
		p.features = initialFeatures()
	}
	return p.features[uri]
}

// SetFeature changes the value of a feature URI for subsequent Parse
// calls. An unrecognised URI is rejected with an error and changes
// nothing.
func (p *Parser) SetFeature(uri string, value bool) error {
	if p.features == nil {
		p.features = initialFeatures()
	}
	if _, ok := initialFeatures()[uri]; !ok {
		return fmt.Errorf("taggle: unrecognised feature %q", uri)
	}
	p.features[uri] = value
	return nil
}

// Parse reads r, a complete document, and drives the configured
// handlers through its SAX events. publicID and systemID identify the
// input for locator and entity-resolution purposes; either may be
// empty. It is equivalent to ParseContext with a background context.
func (p *Parser) Parse(r io.Reader, publicID, systemID string) error {
	return p.ParseContext(context.Background(), r, publicID, systemID)
}

// ParseContext is Parse with cancellation: ctx is polled at element
// boundaries (gi/stagc/etag) and at pcdata boundaries, the granularity
// the teacher's RunXML.Parse checks r.position at. A cancelled context
// aborts the scan by driving the scanner to its done state, reports a
// fatal error through the configured ErrorHandler, and causes
// ParseContext to return ctx.Err().
func (p *Parser) ParseContext(ctx context.Context, r io.Reader, publicID, systemID string) error {
	p.setup()
	p.ctx = ctx
	p.publicID, p.systemID = publicID, systemID

	if err := p.contentHandler.StartDocument(); err != nil {
		return err
	}
	p.scanner.ResetDocumentLocator(publicID, systemID)
	p.contentHandler.SetDocumentLocator(p.scanner)

	if p.schema.URI() != "" {
		if err := p.contentHandler.StartPrefixMapping(p.schema.Prefix(), p.schema.URI()); err != nil {
			return err
		}
	}

	if err := p.scanner.Scan(r, p); err != nil {
		p.reportError(err.Error(), true)
		return err
	}
	return p.err
}

// setup resets all per-parse working state; called at the top of Parse
// so a Parser may be reused for a fresh document.
func (p *Parser) setup() {
	if p.schema == nil {
		p.schema = HTMLSchema()
	}
	if p.features == nil {
		p.features = initialFeatures()
	}
	p.scanner = NewScanner()
	p.arena = newElementArena()

	p.stack = newElement(p.arena, p.schema.GetElementType("<root>"), p.features[FeatureDefaultAttributes])
	p.pcdataElem = newElement(p.arena, p.schema.GetElementType("<pcdata>"), p.features[FeatureDefaultAttributes])

	p.newElement = nil
	p.attributeName = ""
	p.piTarget = ""
	p.saved = nil
	p.entityValue = 0
	p.virginStack = true
	p.doctypeIsPresent = false
	p.doctypeName, p.doctypePublicID, p.doctypeSystemID = "", "", ""
	p.err = nil
}

// fail records the first error reported by a handler call or by context
// cancellation. Cancellation is synchronous: the first non-nil error
// seen is surfaced through the ErrorHandler as a fatal error and drives
// the scanner to its done state, so the scan loop winds down instead of
// processing the rest of the document. Later calls, once p.err is set,
// are no-ops — only the first error is reported or aborts the scan.
func (p *Parser) fail(err error) {
	if err == nil || p.err != nil {
		return
	}
	p.err = err
	p.reportError(err.Error(), true)
	p.scanner.abort()
}

// cancelled polls the parse's context at an element or pcdata boundary,
// routing an observed cancellation through fail so it gets the same
// fatal-error-and-abort treatment as any other handler failure.
func (p *Parser) cancelled() bool {
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		p.fail(p.ctx.Err())
		return true
	default:
		return false
	}
}

// --- scanHandler implementation -------------------------------------------

func (p *Parser) adup(buf string) {
	if p.newElement == nil || p.attributeName == "" {
		return
	}
	p.newElement.setAttribute(p.attributeName, "", p.attributeName)
	p.attributeName = ""
}

func (p *Parser) aname(buf string) {
	if p.newElement == nil {
		return
	}
	p.attributeName = strings.ToLower(p.makeName(buf))
}

func (p *Parser) aval(buf string) {
	if p.newElement == nil || p.attributeName == "" {
		return
	}
	value := p.expandEntities(buf)
	p.newElement.setAttribute(p.attributeName, "", value)
	p.attributeName = ""
}

// expandEntities substitutes named and numeric character references in
// an attribute value, but only when properly terminated with ';' — an
// unterminated '&foo' is left untouched. Character data is handled
// differently: the scanner substitutes a known reference whatever
// character ends it.
func (p *Parser) expandEntities(src string) string {
	runes := []rune(src)
	var dst strings.Builder
	i := 0
	for i < len(runes) {
		ch := runes[i]
		if ch != '&' {
			dst.WriteRune(ch)
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && (isLetterOrDigit(runes[j]) || runes[j] == '#') {
			j++
		}
		if j < len(runes) && runes[j] == ';' {
			if ent := p.lookupEntity(string(runes[i+1 : j])); ent != 0 {
				dst.WriteRune(ent)
				i = j + 1
				continue
			}
		}
		dst.WriteRune('&')
		i++
	}
	return dst.String()
}

func (p *Parser) entity(buf string) {
	p.entityValue = p.lookupEntity(buf)
}

func (p *Parser) getEntity() rune {
	return p.entityValue
}

// lookupEntity resolves a character or numeric reference body (the text
// between '&' and ';', without either delimiter) to a codepoint, or 0
// if it names nothing.
func (p *Parser) lookupEntity(buf string) rune {
	if buf == "" {
		return 0
	}
	if buf[0] == '#' {
		rest := buf[1:]
		base := 10
		if len(rest) > 0 && (rest[0] == 'x' || rest[0] == 'X') {
			base = 16
			rest = rest[1:]
		}
		v, err := strconv.ParseInt(rest, base, 32)
		if err != nil {
			return 0
		}
		return rune(v)
	}
	return p.schema.GetEntity(buf)
}

func (p *Parser) eof() {
	if p.virginStack {
		p.rectify(p.pcdataElem)
	}
	for p.stack.next != nil {
		p.pop()
	}
	if p.schema.URI() != "" {
		p.fail(p.contentHandler.EndPrefixMapping(p.schema.Prefix()))
	}
	p.fail(p.contentHandler.EndDocument())
}

func (p *Parser) etag(buf string) {
	if p.cancelled() {
		return
	}
	if p.etagCDATA(buf) {
		return
	}
	p.etagBasic(buf)
}

// etagCDATA handles an end-tag seen while inside a CDATA-flagged
// element: if the name doesn't match the open element (case
// insensitively, same length), the supposed tag is reported as literal
// characters and CDATA mode resumes; a genuine match falls through to
// etagBasic.
func (p *Parser) etagCDATA(buf string) bool {
	if !(p.features[FeatureCDATAElements] && p.stack.flags()&flagCDATA != 0) {
		return false
	}
	currentName := p.stack.name()
	if len(buf) == len(currentName) && strings.EqualFold(buf, currentName) {
		return false
	}
	p.fail(p.contentHandler.Characters("</" + buf + ">"))
	p.scanner.StartCDATA()
	return true
}

func (p *Parser) etagBasic(buf string) {
	p.newElement = nil
	var name string
	if buf != "" {
		name = p.makeName(buf)
		t := p.schema.GetElementType(name)
		if t == nil {
			return // mysterious end-tag
		}
		name = t.name
	} else {
		name = p.stack.name()
	}

	var sp *Element
	inNoforce := false
	for sp = p.stack; sp != nil; sp = sp.next {
		if sp.name() == name {
			break
		}
		if sp.flags()&flagNoforce != 0 {
			inNoforce = true
		}
	}

	if sp == nil {
		return // ignore unknown etags
	}
	if sp.next == nil || sp.next.next == nil {
		return
	}
	if inNoforce {
		sp.preclose()
	} else {
		for p.stack != sp {
			p.restartablyPop()
		}
		p.pop()
	}
	for p.stack.preclosed {
		p.pop()
	}
	p.restart(nil)
}

// restart pushes elements off the saved/restart queue back onto the
// stack for as long as the current top can contain them and (if e is
// known) each would in turn be able to contain e — reopening formatting
// elements like <b> or <i> that an intervening close tag forced shut.
func (p *Parser) restart(e *Element) {
	for p.saved != nil && p.stack.canContain(p.saved) && (e == nil || p.saved.canContain(e)) {
		next := p.saved.next
		s := p.saved
		s.next = nil
		p.push(s)
		p.saved = next
	}
}

// pop closes the top element on the stack unconditionally, reporting
// EndElement and any namespace-prefix unmappings it owned.
func (p *Parser) pop() {
	if p.stack == nil {
		return
	}
	e := p.stack
	name := e.name()
	localName := e.localName()
	namespaceName := e.namespaceName()
	prefix := prefixOf(name)
	if !p.features[FeatureNamespaces] {
		namespaceName, localName = "", ""
	}
	p.fail(p.contentHandler.EndElement(namespaceName, localName, name))
	if p.isForeign(prefix, namespaceName) {
		p.fail(p.contentHandler.EndPrefixMapping(prefix))
	}
	for i := e.atts.Len() - 1; i >= 0; i-- {
		attNamespace := e.atts.URI(i)
		attPrefix := prefixOf(e.atts.QName(i))
		if p.isForeign(attPrefix, attNamespace) {
			p.fail(p.contentHandler.EndPrefixMapping(attPrefix))
		}
	}
	p.stack = e.next
}

// restartablyPop closes the top element, but if it's flagged F_RESTART
// (an inline formatting element) and the restart-elements feature is
// on, parks it on the saved queue instead of discarding it, so a later
// rectify can transparently reopen it.
func (p *Parser) restartablyPop() {
	popped := p.stack
	p.pop()
	if p.features[FeatureRestartElements] && popped.flags()&flagRestart != 0 {
		popped.anonymize()
		popped.next = p.saved
		p.saved = popped
	}
}

// push opens e as the new top of stack, reporting StartElement and any
// namespace-prefix mappings it introduces.
func (p *Parser) push(e *Element) {
	name := e.name()
	localName := e.localName()
	namespaceName := e.namespaceName()
	prefix := prefixOf(name)

	e.clean()
	if !p.features[FeatureNamespaces] {
		namespaceName, localName = "", ""
	}
	if p.virginStack && p.doctypeName != "" && strings.EqualFold(localName, p.doctypeName) {
		p.entityResolver.ResolveEntity(p.doctypePublicID, p.doctypeSystemID)
	}
	if p.isForeign(prefix, namespaceName) {
		p.fail(p.contentHandler.StartPrefixMapping(prefix, namespaceName))
	}

	for i := 0; i < e.atts.Len(); i++ {
		attNamespace := e.atts.URI(i)
		attPrefix := prefixOf(e.atts.QName(i))
		if p.isForeign(attPrefix, attNamespace) {
			p.fail(p.contentHandler.StartPrefixMapping(attPrefix, attNamespace))
		}
	}
	p.fail(p.contentHandler.StartElement(namespaceName, localName, name, &e.atts))

	e.next = p.stack
	p.stack = e
	p.virginStack = false
	if p.features[FeatureCDATAElements] && p.stack.flags()&flagCDATA != 0 {
		p.scanner.StartCDATA()
	}
}

func prefixOf(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return ""
}

// isForeign reports whether a (prefix, namespaceName) pair names
// something outside this parser's own schema namespace, and therefore
// needs its own prefix-mapping events.
func (p *Parser) isForeign(prefix, namespaceName string) bool {
	return !(prefix == "" || namespaceName == "" || namespaceName == p.schema.URI())
}

// decl handles a <!...> declaration buffer; only DOCTYPE is given any
// meaning, and only the first one seen.
func (p *Parser) decl(buf string) {
	var name, systemID, publicID string
	words := splitDoctypeWords(buf)
	if len(words) > 0 && words[0] == "DOCTYPE" {
		if p.doctypeIsPresent {
			return // one doctype only
		}
		p.doctypeIsPresent = true
		if len(words) > 1 {
			name = words[1]
			if len(words) > 3 && words[2] == "SYSTEM" {
				systemID = words[3]
			} else if len(words) > 3 && words[2] == "PUBLIC" {
				publicID = words[3]
				if len(words) > 4 {
					systemID = words[4]
				}
			}
		}
	}
	publicID = trimQuotes(publicID)
	systemID = trimQuotes(systemID)
	if name != "" {
		publicID = cleanPublicid(publicID)
		if systemID != "" && p.systemID != "" {
			if base, err := url.Parse(p.systemID); err == nil {
				if ref, err := url.Parse(systemID); err == nil {
					systemID = base.ResolveReference(ref).String()
				}
			}
		}
		p.fail(p.lexicalHandler.StartDTD(name, publicID, systemID))
		p.fail(p.lexicalHandler.EndDTD())
		p.doctypeName = name
		p.doctypePublicID = publicID
		p.doctypeSystemID = systemID
	}
}

// trimQuotes strips a single matching pair of leading/trailing quotes.
func trimQuotes(in string) string {
	if len(in) < 2 {
		return in
	}
	s, e := in[0], in[len(in)-1]
	if s == e && (s == '\'' || s == '"') {
		return in[1 : len(in)-1]
	}
	return in
}

// splitDoctypeWords breaks a DOCTYPE buffer into whitespace-separated
// words, treating a quoted phrase (single or double) as one word.
func splitDoctypeWords(val string) []string {
	v := normalizeWhitespace(val)
	if v == "" {
		return nil
	}
	var words []string
	var cur strings.Builder
	sq, dq := false, false
	for _, c := range v {
		switch {
		case !dq && c == '\'':
			sq = !sq
			cur.WriteRune(c)
		case !sq && c == '"':
			dq = !dq
			cur.WriteRune(c)
		case !sq && !dq && isSpace(c):
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(c)
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// cleanPublicid collapses any run of characters outside legal into a
// single space, so a public identifier gathered from tag-soup markup
// is safe to report.
func cleanPublicid(src string) string {
	var dst strings.Builder
	suppressSpace := true
	for _, r := range src {
		if strings.ContainsRune(legal, r) {
			dst.WriteRune(r)
			suppressSpace = false
		} else if !suppressSpace {
			dst.WriteByte(' ')
			suppressSpace = true
		}
	}
	return dst.String()
}

func (p *Parser) gi(buf string) {
	if p.cancelled() || p.newElement != nil {
		return
	}
	name := p.makeName(buf)
	if name == "" {
		return
	}
	t := p.schema.GetElementType(name)
	if t == nil {
		if p.features[FeatureIgnoreBogons] {
			return
		}
		bogonModel := modelAny
		if p.features[FeatureBogonsEmpty] {
			bogonModel = modelEmpty
		}
		bogonMemberOf := modelAny &^ modelRoot
		if p.features[FeatureRootBogons] {
			bogonMemberOf = modelAny
		}
		p.schema.ElementType(name, bogonModel, bogonMemberOf, 0)
		if !p.features[FeatureRootBogons] {
			p.schema.Parent(name, p.schema.RootElementType().name)
		}
		t = p.schema.GetElementType(name)
	}
	p.newElement = newElement(p.arena, t, p.features[FeatureDefaultAttributes])
}

func (p *Parser) cdsect(buf string) {
	p.fail(p.lexicalHandler.StartCDATA())
	p.pcdata(buf)
	p.fail(p.lexicalHandler.EndCDATA())
}

func (p *Parser) pcdata(buf string) {
	if p.cancelled() || buf == "" {
		return
	}
	allWhite := true
	for _, r := range buf {
		if !isSpace(r) {
			allWhite = false
			break
		}
	}
	if allWhite && !p.stack.canContain(p.pcdataElem) {
		if p.features[FeatureIgnorableWhitespace] {
			p.fail(p.contentHandler.IgnorableWhitespace(buf))
		}
		return
	}
	p.rectify(p.pcdataElem)
	p.fail(p.contentHandler.Characters(buf))
}

func (p *Parser) pitarget(buf string) {
	if p.newElement != nil {
		return
	}
	name := p.makeName(buf)
	name = strings.ReplaceAll(name, ":", "_")
	p.piTarget = name
}

func (p *Parser) pi(buf string) {
	if p.newElement != nil || p.piTarget == "" {
		return
	}
	if strings.ToLower(p.piTarget) == "xml" {
		return
	}
	data := buf
	if strings.HasSuffix(data, "?") {
		data = data[:len(data)-1]
	}
	p.fail(p.contentHandler.ProcessingInstruction(p.piTarget, data))
	p.piTarget = ""
}

func (p *Parser) stagc(buf string) {
	if p.cancelled() || p.newElement == nil {
		return
	}
	e := p.newElement
	p.rectify(e)
	if p.stack.model() == modelEmpty {
		p.etagBasic(buf)
	}
}

func (p *Parser) stage(buf string) {
	if p.cancelled() || p.newElement == nil {
		return
	}
	e := p.newElement
	p.rectify(e)
	p.etagBasic(buf)
}

func (p *Parser) cmnt(buf string) {
	p.fail(p.lexicalHandler.Comment(buf))
}

// rectify makes the stack safe to receive e: it walks up from the
// current top looking for an element that can directly contain e;
// failing that, it wraps e in its natural parent (and that parent's
// parent, and so on) until one fits or the chain runs out. Once a
// container is found, everything above it is restartably popped, then
// the (possibly now multi-level) chain rooted at e is pushed, each
// level re-running restart to reopen anything that chain level can
// still hold.
func (p *Parser) rectify(e *Element) {
	var sp *Element
	for {
		for sp = p.stack; sp != nil; sp = sp.next {
			if sp.canContain(e) {
				break
			}
		}
		if sp != nil {
			break
		}
		parentType := e.parentType()
		if parentType == nil {
			break
		}
		parent := newElement(p.arena, parentType, p.features[FeatureDefaultAttributes])
		parent.next = e
		e = parent
	}
	if sp == nil {
		return // don't know what to do
	}
	for p.stack != sp {
		if p.stack == nil || p.stack.next == nil || p.stack.next.next == nil {
			break
		}
		p.restartablyPop()
	}
	for e != nil {
		next := e.next
		if e.name() != "<pcdata>" {
			p.push(e)
		}
		e = next
		p.restart(e)
	}
	p.newElement = nil
}

// makeName canonicalizes raw scanner text into a valid XML name: a
// digit, hyphen or dot can't start a name segment so one is prefixed
// with '_', and only the first colon is kept as a namespace separator
// (or folded to '_' when the translate-colons feature is on).
func (p *Parser) makeName(buf string) string {
	var dst strings.Builder
	seenColon := false
	start := true
	for _, ch := range buf {
		switch {
		case isLetter(ch) || ch == '_':
			start = false
			dst.WriteRune(ch)
		case isDigit(ch) || ch == '-' || ch == '.':
			if start {
				dst.WriteByte('_')
			}
			start = false
			dst.WriteRune(ch)
		case ch == ':' && !seenColon:
			seenColon = true
			if start {
				dst.WriteByte('_')
			}
			start = true
			if p.features[FeatureTranslateColons] {
				dst.WriteByte('_')
			} else {
				dst.WriteRune(ch)
			}
		}
	}
	out := dst.String()
	if out == "" || strings.HasSuffix(out, ":") {
		out += "_"
	}
	return out
}

func (p *Parser) reportError(message string, fatal bool) {
	e := newParseException(message, p.scanner, nil)
	if fatal {
		p.errorHandler.FatalError(e)
	} else {
		p.errorHandler.Error(e)
	}
}
