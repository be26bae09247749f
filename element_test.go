package taggle

import "testing"

func newTestSchema() *Schema {
	s := NewSchema("http://example.com/ns", "ex")
	s.ElementType("root", modelAny, modelEmpty, 0)
	s.ElementType("doc", 1, modelRoot, 0)
	s.ElementType("p", 2, 1, 0)
	s.ElementType("br", modelEmpty, 2, flagNoforce)
	s.ElementType("b", 2, 2, flagRestart)
	s.Parent("p", "doc")
	s.Parent("br", "p")
	s.Parent("b", "p")
	return s
}

func TestElementTypeCanContain(t *testing.T) {
	s := newTestSchema()
	doc := s.GetElementType("doc")
	p := s.GetElementType("p")
	br := s.GetElementType("br")

	if !doc.canContain(p) {
		t.Error("doc should be able to contain p")
	}
	if !p.canContain(br) {
		t.Error("p should be able to contain br")
	}
	if p.canContain(doc) {
		t.Error("p should not be able to contain doc")
	}
}

func TestElementAccessors(t *testing.T) {
	s := newTestSchema()
	arena := newElementArena()
	e := newElement(arena, s.GetElementType("p"), false)

	if got := e.name(); got != "p" {
		t.Errorf("name() = %q, want p", got)
	}
	if got := e.model(); got != 2 {
		t.Errorf("model() = %d, want 2", got)
	}
	if got := e.memberOf(); got != 1 {
		t.Errorf("memberOf() = %d, want 1", got)
	}
	if got := e.parentType(); got == nil || got.name != "doc" {
		t.Errorf("parentType() = %v, want doc", got)
	}
}

func TestElementDefaultAttributesSeeded(t *testing.T) {
	s := newTestSchema()
	s.Attribute("p", "class", "CDATA", "para")
	arena := newElementArena()

	withDefaults := newElement(arena, s.GetElementType("p"), true)
	if got := withDefaults.atts.ValueByQName("class"); got != "para" {
		t.Errorf("with defaultAttributes=true, class = %q, want para", got)
	}

	withoutDefaults := newElement(arena, s.GetElementType("p"), false)
	if got := withoutDefaults.atts.Len(); got != 0 {
		t.Errorf("with defaultAttributes=false, atts.Len() = %d, want 0", got)
	}
}

func TestElementAnonymizeRemovesIDAndName(t *testing.T) {
	s := newTestSchema()
	arena := newElementArena()
	e := newElement(arena, s.GetElementType("p"), false)
	e.setAttribute("id", "ID", "x1")
	e.setAttribute("name", "CDATA", "thename")
	e.setAttribute("class", "CDATA", "kept")

	e.anonymize()

	if e.atts.Index("id") != -1 {
		t.Error("anonymize should remove ID-typed attribute")
	}
	if e.atts.Index("name") != -1 {
		t.Error("anonymize should remove attribute literally named name")
	}
	if e.atts.Index("class") == -1 {
		t.Error("anonymize should keep unrelated attributes")
	}
}

func TestElementCleanDropsEmptyLocalNameOrValue(t *testing.T) {
	s := newTestSchema()
	arena := newElementArena()
	e := newElement(arena, s.GetElementType("p"), false)
	e.atts.AddAttribute("", "", "xmlns:", "CDATA", "http://example.com")
	e.atts.AddAttribute("", "empty", "empty", "CDATA", "")
	e.atts.AddAttribute("", "class", "class", "CDATA", "kept")

	e.clean()

	if got := e.atts.Len(); got != 1 {
		t.Fatalf("atts.Len() after clean = %d, want 1", got)
	}
	if got := e.atts.QName(0); got != "class" {
		t.Errorf("surviving attribute = %q, want class", got)
	}
}

func TestElementPreclose(t *testing.T) {
	s := newTestSchema()
	arena := newElementArena()
	e := newElement(arena, s.GetElementType("p"), false)
	if e.preclosed {
		t.Fatal("new element should not start preclosed")
	}
	e.preclose()
	if !e.preclosed {
		t.Error("preclose() should set preclosed")
	}
}

func TestElementArenaReuse(t *testing.T) {
	arena := newElementArena()
	seen := make(map[*Element]bool)
	for i := 0; i < elementArenaStartSize*3; i++ {
		e := arena.get()
		if seen[e] {
			t.Fatalf("arena handed out the same pointer twice at iteration %d", i)
		}
		seen[e] = true
	}
}
