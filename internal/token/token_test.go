package token

import (
	"regexp"
	"testing"
)

var sitePrefixes = map[string]string{
	"medical":  "MED",
	"bitbites": "BIT",
}

func TestPickupFormat(t *testing.T) {
	g := NewGenerator(sitePrefixes)

	medical := regexp.MustCompile(`^MED-\d{3}$`)
	bitbites := regexp.MustCompile(`^BIT-\d{3}$`)

	for i := 0; i < 200; i++ {
		tok, err := g.Pickup("medical")
		if err != nil {
			t.Fatalf("Pickup(medical): %v", err)
		}
		if !medical.MatchString(tok) {
			t.Fatalf("token %q does not match MED-NNN", tok)
		}

		tok, err = g.Pickup("bitbites")
		if err != nil {
			t.Fatalf("Pickup(bitbites): %v", err)
		}
		if !bitbites.MatchString(tok) {
			t.Fatalf("token %q does not match BIT-NNN", tok)
		}
	}
}

func TestPickupNumberRange(t *testing.T) {
	for _, n := range []int{0, 899} {
		g := NewGenerator(sitePrefixes, WithIntN(func(int) int { return n }))
		tok, err := g.Pickup("medical")
		if err != nil {
			t.Fatalf("Pickup: %v", err)
		}
		want := map[int]string{0: "MED-100", 899: "MED-999"}[n]
		if tok != want {
			t.Fatalf("Pickup with intN=%d = %q, want %q", n, tok, want)
		}
	}
}

func TestPickupUnknownSite(t *testing.T) {
	g := NewGenerator(sitePrefixes)
	if _, err := g.Pickup("rooftop"); err == nil {
		t.Fatal("expected error for unknown site")
	}
	if g.Known("rooftop") {
		t.Fatal("Known(rooftop) = true")
	}
	if !g.Known("medical") {
		t.Fatal("Known(medical) = false")
	}
}
