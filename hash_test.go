package sprig

import "testing"

func TestHashIDDeterministic(t *testing.T) {
	a := HashID("confirm_button")
	b := HashID("confirm_button")
	if a != b {
		t.Fatalf("HashID not deterministic: %#x vs %#x", a, b)
	}
	if a == NullHash {
		t.Fatal("HashID produced the null sentinel")
	}
}

func TestHashIDDistinct(t *testing.T) {
	ids := []string{"a", "b", "ab", "ba", "", DefaultGroupID, DefaultImageID, "confirm", "cancel"}
	seen := make(map[HashedID]string)
	for _, id := range ids {
		h := HashIDFrom(initialHashValue, id)
		if prev, ok := seen[h]; ok {
			t.Errorf("collision between %q and %q", prev, id)
		}
		seen[h] = id
	}
}

func TestHashIDFromScopeSensitive(t *testing.T) {
	parent := HashID("menu")
	scoped := HashIDFrom(parent, "item")
	flat := HashID("menuitem")
	if scoped == flat {
		t.Error("scoped hash collides with concatenated hash")
	}
	// Order sensitivity: scope(a, b) != scope(b, a).
	ab := HashIDFrom(HashID("a"), "b")
	ba := HashIDFrom(HashID("b"), "a")
	if ab == ba {
		t.Error("scoped hashing is not order-sensitive")
	}
}

func TestHashValue(t *testing.T) {
	if HashValue(1) == HashValue(2) {
		t.Error("adjacent integers hash equal")
	}
	if HashValue(7) != HashValue(7) {
		t.Error("HashValue not deterministic")
	}
}

func TestHashSequenceID(t *testing.T) {
	a := HashSequenceID("spark", 0)
	b := HashSequenceID("spark", 1)
	c := HashSequenceID("spark", 1)
	if a == b {
		t.Error("different sequence numbers should produce different ids")
	}
	if b != c {
		t.Error("same id+sequence should produce the same hash")
	}
}

func TestHashIDFromSequenceFoldsHighBits(t *testing.T) {
	lo := HashIDFromSequence(0x0000000000000005)
	hi := HashIDFromSequence(0x0000000500000000)
	if lo != hi {
		// XOR fold means these collide by construction; both halves count.
		t.Errorf("expected symmetric fold, got %#x vs %#x", lo, hi)
	}
	if HashIDFromSequence(0x0000000100000001) != 0 {
		t.Error("fold of equal halves should cancel to zero")
	}
}
