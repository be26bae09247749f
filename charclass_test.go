package taggle

import "testing"

func TestIsLetter(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"lower", 'a', true},
		{"upper", 'Z', true},
		{"digit", '5', false},
		{"hyphen", '-', false},
		{"underscore", '_', false},
		{"accented", 'é', true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isLetter(c.r); got != c.want {
				t.Errorf("isLetter(%q) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsDigit(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"zero", '0', true},
		{"nine", '9', true},
		{"letter", 'a', false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isDigit(c.r); got != c.want {
				t.Errorf("isDigit(%q) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsLetterOrDigit(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"letter", 'x', true},
		{"digit", '3', true},
		{"semicolon", ';', false},
		{"hash", '#', false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isLetterOrDigit(c.r); got != c.want {
				t.Errorf("isLetterOrDigit(%q) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsSpace(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"space", ' ', true},
		{"tab", '\t', true},
		{"cr", '\r', true},
		{"lf", '\n', true},
		{"letter", 'a', false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isSpace(c.r); got != c.want {
				t.Errorf("isSpace(%q) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsHexDigit(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"decimal", '7', true},
		{"lower hex", 'f', true},
		{"upper hex", 'F', true},
		{"out of range lower", 'g', false},
		{"out of range upper", 'G', false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isHexDigit(c.r); got != c.want {
				t.Errorf("isHexDigit(%q) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}
