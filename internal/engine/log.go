package engine

// DefaultLogCap is the number of entries a battle log keeps.
const DefaultLogCap = 5

// Log is a bounded, append-only history. When full, the oldest entry is
// evicted first.
type Log struct {
	cap     int
	entries []string
}

// NewLog returns an empty log holding at most capacity entries.
// A non-positive capacity falls back to DefaultLogCap.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCap
	}
	return &Log{cap: capacity, entries: make([]string, 0, capacity)}
}

// Append adds entry at the end, evicting the oldest entries beyond the cap.
func (l *Log) Append(entry string) {
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.cap; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
	}
}

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }
