package loader

import "testing"

func TestParseDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2001-05-01", "2001-05-01", true},
		{" 2001-05-01 ", "2001-05-01", true},
		{"2001-13-01", "", false},
		{"2001-02-30", "", false},
		{"01.05.2001", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := parseDate(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseDate(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"5", 5, true},
		{"0", 0, false},
		{"6", 0, false},
		{"3.5", 0, false},
		{"great", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseRating(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseRating(%q) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"free", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parsePrice(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"NEW", "NEW", true},
		{"used", "USED", true},
		{" New ", "NEW", true},
		{"MINT", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := parseState(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseState(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestValidGroup(t *testing.T) {
	t.Parallel()

	for _, g := range []string{"Music", "DVD", "Book"} {
		if !validGroup(g) {
			t.Errorf("validGroup(%q) = false", g)
		}
	}
	for _, g := range []string{"music", "dvd", "Gadget", ""} {
		if validGroup(g) {
			t.Errorf("validGroup(%q) = true", g)
		}
	}
}
