package sprig

import "image"

// interactionRecord persists per-element interaction state across frames,
// keyed by the element's hash. Records are created lazily the first time an
// element asks for events and reclaimed once the element stops appearing.
type interactionRecord struct {
	seenFrame uint64
	edit      *editState
}

// stateStore holds all interaction records plus the frame counter used to
// decide which records are still live.
type stateStore struct {
	records map[HashedID]*interactionRecord
	frame   uint64
}

func (s *stateStore) beginFrame() {
	if s.records == nil {
		s.records = make(map[HashedID]*interactionRecord)
	}
	s.frame++
}

// record returns the record for hash, creating it if needed, and marks it as
// seen this frame so it survives collection.
func (s *stateStore) record(hash HashedID) *interactionRecord {
	rec := s.records[hash]
	if rec == nil {
		rec = &interactionRecord{}
		s.records[hash] = rec
	}
	rec.seenFrame = s.frame
	return rec
}

// peek returns the record for hash without registering it, or nil.
func (s *stateStore) peek(hash HashedID) *interactionRecord {
	return s.records[hash]
}

// collect drops every record that was not seen during this frame's render
// pass. Elements that the client conditionally omits would otherwise leak
// records forever.
func (s *stateStore) collect() {
	for hash, rec := range s.records {
		if rec.seenFrame != s.frame {
			delete(s.records, hash)
		}
	}
}

// pointerOwner tracks which element owns a pointer's current press, for one
// class of ownership (regular press or drag-only).
type pointerOwner struct {
	owner    HashedID
	downPos  image.Point
	dragging bool
}

func (o *pointerOwner) reset() {
	o.owner = NullHash
	o.dragging = false
}

// pointerState is the cross-frame state of one pointer slot. Press and drag
// ownership are independent so a scroll area can receive drags while a button
// inside it still receives the click.
type pointerState struct {
	press pointerOwner
	drag  pointerOwner
}
