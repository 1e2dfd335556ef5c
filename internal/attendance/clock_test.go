package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockReportsAndStops(t *testing.T) {
	c := NewClock(10 * time.Millisecond)
	defer c.Close()

	day, tod := c.Now()
	assert.NotEmpty(t, day)
	assert.NotEmpty(t, tod)

	// Close twice must be safe.
	c.Close()
	c.Close()
}
