package sprig

// HashedID is the sole identity of a GUI element. IDs are recomputed from the
// declaration sequence every frame and used as keys into state that persists
// across frames (focus, capture, drag, edit buffers). They are stable for the
// lifetime of one process run only — never persist a HashedID to disk.
type HashedID uint32

// SequenceID numbers repeated instances of the same logical element, such as
// sprites spawned from one AddSprite call site.
type SequenceID uint64

// NullHash is a reserved sentinel meaning "no explicit id — derive the id
// from the element's content instead". It is never produced for real input.
const NullHash HashedID = 0

// initialHashValue seeds the FNV-style string hash.
const initialHashValue HashedID = 0x84222325

// fnvPrime is the multiplier of the FNV-1a step.
const fnvPrime HashedID = 0x000001b3

// DefaultGroupID is the id assigned to groups the caller left anonymous.
const DefaultGroupID = "__group_id__"

// DefaultImageID is the id assigned to images the caller left anonymous.
const DefaultImageID = "__image_id__"

// HashID hashes a UTF-8 string into a HashedID.
//
// Panics if the result collides with NullHash; such a collision means the
// caller must pick a different id string.
func HashID(id string) HashedID {
	return HashIDFrom(initialHashValue, id)
}

// HashIDFrom hashes id starting from a previous hash value. Chaining ids
// through the seed is order-sensitive, so a child id hashed inside a parent
// scope never collides with the plain hash of the concatenated strings.
func HashIDFrom(seed HashedID, id string) HashedID {
	h := seed
	for i := 0; i < len(id); i++ {
		h = (h ^ HashedID(id[i])) * fnvPrime
	}
	if h == NullHash {
		panic("sprig: id " + id + " hashes to the reserved null value, use a different id")
	}
	return h
}

// HashValue randomizes an integer into a HashedID using Knuth's
// multiplicative method. Useful for ids derived from indices.
func HashValue(i int32) HashedID {
	h := HashedID(uint32(i) * 2654435761)
	if h == NullHash {
		panic("sprig: integer id hashes to the reserved null value")
	}
	return h
}

// HashIDFromSequence folds a SequenceID into a HashedID by XORing its high
// and low halves.
func HashIDFromSequence(seq SequenceID) HashedID {
	return HashedID(uint32(seq>>32) ^ uint32(seq))
}

// HashSequenceID hashes an id string scoped by a sequence number, producing
// a distinct identity for each instance spawned from the same call site.
func HashSequenceID(id string, seq SequenceID) HashedID {
	return HashIDFrom(HashIDFromSequence(seq), id)
}
