package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStamp(t *testing.T) {
	helsinki := time.FixedZone("EET", 2*60*60)
	in := time.Date(2024, 5, 1, 12, 30, 0, 123456789, helsinki)

	got := Stamp(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123456000, got.Nanosecond())
	assert.True(t, got.Equal(in.Truncate(time.Microsecond)))
}

func TestSystemNowIsStorable(t *testing.T) {
	now := New().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(Precision))
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
