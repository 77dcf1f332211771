package formatter

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampSource(t *testing.T) {
	t.Parallel()

	t.Run("strictly increasing within the same microsecond", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		src := newTimestampSource(true)
		src.now = func() time.Time { return frozen }

		a := src.next()
		b := src.next()
		c := src.next()
		req.Less(a, b)
		req.Less(b, c)
	})

	t.Run("iso format", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		src := newTimestampSource(true)
		got := src.next()
		_, err := time.Parse(isoTimestampLayout, got)
		req.NoError(err)
	})

	t.Run("epoch micros format", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		src := newTimestampSource(false)
		got := src.next()
		micros, err := strconv.ParseInt(got, 10, 64)
		req.NoError(err)
		req.InDelta(time.Now().UnixMicro(), micros, float64(time.Minute.Microseconds()))
	})
}
