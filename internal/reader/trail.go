package reader

// Trail is the back/forward stack of documents visited since the reader
// was opened from the story list.
type Trail struct {
	entries []*Document
	pos     int // current position in the stack
}

// NewTrail creates an empty trail.
func NewTrail() *Trail {
	return &Trail{pos: -1}
}

// Push adds doc after the current position, truncating any forward entries.
func (t *Trail) Push(doc *Document) {
	if t.pos < len(t.entries)-1 {
		t.entries = t.entries[:t.pos+1]
	}
	t.entries = append(t.entries, doc)
	t.pos = len(t.entries) - 1
}

// Back moves one step back. It reports false at the start of the trail.
func (t *Trail) Back() (*Document, bool) {
	if t.pos <= 0 {
		return nil, false
	}
	t.pos--
	return t.entries[t.pos], true
}

// Forward moves one step forward. It reports false at the end of the trail.
func (t *Trail) Forward() (*Document, bool) {
	if t.pos >= len(t.entries)-1 {
		return nil, false
	}
	t.pos++
	return t.entries[t.pos], true
}

// Current returns the document at the current position, or nil.
func (t *Trail) Current() *Document {
	if t.pos < 0 || t.pos >= len(t.entries) {
		return nil
	}
	return t.entries[t.pos]
}

// Len returns the total number of entries.
func (t *Trail) Len() int {
	return len(t.entries)
}

// Clear resets the trail.
func (t *Trail) Clear() {
	t.entries = nil
	t.pos = -1
}
