package backend

import "testing"

func TestMangleReplacesReservedCharacters(t *testing.T) {
	cases := map[string]string{
		"List<int>":         "List_int_",
		"fun int(int,int)":  "fun_int_int_int_",
		"$Closure$0":        "_Closure_0",
		"List<int,string>":  "List_int_string_",
		"plainName":         "plainName",
	}
	for in, want := range cases {
		if got := Mangle(in); got != want {
			t.Errorf("Mangle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMangleNFKCNormalizesBeforeSubstitution(t *testing.T) {
	precomposed := "caf\u00e9" // e-acute as a single precomposed code point
	decomposed := "cafe\u0301" // plain e followed by a combining acute accent
	if precomposed == decomposed {
		t.Fatalf("test fixture bug: precomposed and decomposed forms must differ byte-for-byte")
	}
	if Mangle(precomposed) != Mangle(decomposed) {
		t.Fatalf("NFKC should fold %q and %q to the same mangled name, got %q and %q",
			precomposed, decomposed, Mangle(precomposed), Mangle(decomposed))
	}
}

func TestMangleCollision(t *testing.T) {
	// "a(b)" and "a b " both mangle to "a_b_": a real diagnostic pass
	// would need to reject the second declaration once it sees this.
	if !MangleCollision("a(b)", "a b ") {
		t.Fatalf("expected a mangle collision between %q and %q", "a(b)", "a b ")
	}
	if MangleCollision("a(b)", "a(b)") {
		t.Fatalf("identical names are not a collision")
	}
	if MangleCollision("a", "b") {
		t.Fatalf("distinct simple names must not collide")
	}
}
