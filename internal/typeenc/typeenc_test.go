package typeenc

import "testing"

func TestEqualStripsQualifiers(t *testing.T) {
	cases := []struct{ a, b string }{
		{"v@:", "v@:"},
		{"v@:", "Vv@:"},
		{"r^i", "^i"},
		{"n^c", "R^c"},
		{"i24@0:4", "i@:"},
	}
	for _, c := range cases {
		if !Equal(c.a, c.b) {
			t.Errorf("Equal(%q, %q) = false, want true", c.a, c.b)
		}
	}
}

func TestEqualStarMatchesCStringPointer(t *testing.T) {
	if !Equal("*", "^C") {
		t.Error("* should equal ^C")
	}
	if !Equal("^c", "*") {
		t.Error("^c should equal *")
	}
	if Equal("*", "^i") {
		t.Error("* should not equal ^i")
	}
}

func TestEqualRejectsDifferentTypes(t *testing.T) {
	if Equal("v@:", "i@:") {
		t.Error("v@: should not equal i@:")
	}
}

func TestEqualUntypedOnlyMatchesUntyped(t *testing.T) {
	if !Equal("", "") {
		t.Error("empty should equal empty")
	}
	if Equal("", "v@:") {
		t.Error("empty should not equal a typed encoding")
	}
}

func TestHashNameIgnoresTypes(t *testing.T) {
	if HashName("foo") != HashName("foo") {
		t.Error("HashName not deterministic")
	}
	if HashName("foo") == HashName("bar") {
		t.Error("collision between unrelated names (allowed in principle, but suspicious for this test fixture)")
	}
}

func TestHashNameAndTypesDistinguishesRelevantTypes(t *testing.T) {
	h1 := HashNameAndTypes("foo", "v@:")
	h2 := HashNameAndTypes("foo", "i@:")
	if h1 == h2 {
		t.Error("hash-relevant return type difference did not change the hash")
	}
}

func TestFirstRelevantChar(t *testing.T) {
	c, ok := FirstRelevantChar("r^i")
	if !ok || c != '^' {
		t.Errorf("got (%q, %v), want ('^', true)", c, ok)
	}
	if _, ok := FirstRelevantChar(""); ok {
		t.Error("empty encoding should report not-found")
	}
	if _, ok := FirstRelevantChar("r0n"); ok {
		t.Error("all-qualifier encoding should report not-found")
	}
}
