package core

import "testing"

func TestPlural(t *testing.T) {
	cases := map[string]string{
		"post":     "posts",
		"comment":  "comments",
		"category": "categories",
		"child":    "children",
		"box":      "boxes",
		"dish":     "dishes",
		"day":      "days",
	}
	for singular, want := range cases {
		if got := Plural(singular); got != want {
			t.Errorf("Plural(%q) = %q, want %q", singular, got, want)
		}
	}
}

func TestSingular(t *testing.T) {
	cases := map[string]string{
		"posts":      "post",
		"comments":   "comment",
		"categories": "category",
		"children":   "child",
		"boxes":      "box",
		"dishes":     "dish",
		"days":       "day",
	}
	for plural, want := range cases {
		if got := Singular(plural); got != want {
			t.Errorf("Singular(%q) = %q, want %q", plural, got, want)
		}
	}
}

func TestPluralSingularRoundTrip(t *testing.T) {
	for _, name := range []string{"post", "comment", "category", "user", "photo"} {
		if got := Singular(Plural(name)); got != name {
			t.Errorf("Singular(Plural(%q)) = %q", name, got)
		}
	}
}
