package formatter

import (
	"strconv"
	"sync"
	"time"
)

const isoTimestampLayout = "2006-01-02T15:04:05.000000"

// timestampSource hands out strictly increasing current timestamps. Two
// records formatted within the same microsecond still get distinct values.
type timestampSource struct {
	mu   sync.Mutex
	last time.Time
	iso  bool
	now  func() time.Time // swappable for tests
}

func newTimestampSource(iso bool) *timestampSource {
	return &timestampSource{iso: iso, now: time.Now}
}

func (s *timestampSource) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC().Truncate(time.Microsecond)
	if !ts.After(s.last) {
		ts = s.last.Add(time.Microsecond)
	}
	s.last = ts

	if s.iso {
		return ts.Format(isoTimestampLayout)
	}
	return strconv.FormatInt(ts.UnixMicro(), 10)
}
