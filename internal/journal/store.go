package journal

// Store keeps the most recent records in memory, oldest first.
// It is owned by the browser loop and not safe for concurrent use.
type Store struct {
	size int
	data []Record
}

// NewStore keeps at most size records; size < 1 keeps one.
func NewStore(size int) *Store {
	if size < 1 {
		size = 1
	}
	return &Store{size: size}
}

func (s *Store) Append(r Record) {
	if len(s.data) == s.size {
		copy(s.data, s.data[1:])
		s.data = s.data[:len(s.data)-1]
	}
	s.data = append(s.data, r)
}

// Last returns the newest record.
func (s *Store) Last() (Record, bool) {
	if len(s.data) == 0 {
		return Record{}, false
	}
	return s.data[len(s.data)-1], true
}

// Snapshot returns a copy of the stored records, oldest first.
func (s *Store) Snapshot() []Record {
	out := make([]Record, len(s.data))
	copy(out, s.data)
	return out
}

func (s *Store) Len() int { return len(s.data) }
