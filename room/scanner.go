package room

// Scanner walks one memory region for room headers.
type Scanner struct {
	// Pred decides what counts as a header. Nil means Plausible.
	Pred Predicate
}

// Scan reads headers from data between the start and end offsets.
// Scanning stops at the first implausible candidate or at the bound; both
// are normal termination, not errors. The emit callback, when not nil,
// receives each header and its raw window as it is discovered; an emit
// error aborts the scan with the headers found so far.
//
// Because the trailing state entry data is variable length and not parsed
// here, the scanner hunts forward byte by byte after each hit for the
// next position satisfying the predicate. It may resynchronize onto data
// that merely looks like a header.
func (s *Scanner) Scan(data []byte, start, end int, emit func(Header, []byte) error) ([]Header, error) {
	pred := s.Pred
	if pred == nil {
		pred = Plausible
	}

	if end > len(data) {
		end = len(data)
	}

	var found []Header
	offset := start

	for offset >= 0 && offset+HeaderSize <= end {
		h := Parse(data[offset:])
		h.Offset = offset

		if !pred(h) {
			break
		}

		if emit != nil {
			if err := emit(h, data[offset:offset+HeaderSize]); err != nil {
				return found, err
			}
		}
		found = append(found, h)

		offset += HeaderSize
		for offset+HeaderSize <= end {
			h = Parse(data[offset:])
			h.Offset = offset
			if pred(h) {
				break
			}
			offset++
		}
	}

	return found, nil
}
