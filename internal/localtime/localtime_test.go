package localtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC), "Selasa, 25 Agustus 2026"},
		{time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC), "Minggu, 4 Januari 2026"},
		{time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), "Rabu, 31 Desember 2025"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Day(c.in))
	}
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "09.05.33", TimeOfDay(time.Date(2026, 8, 25, 9, 5, 33, 0, time.UTC)))
	assert.Equal(t, "00.00.00", TimeOfDay(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "23.59.01", TimeOfDay(time.Date(2026, 8, 25, 23, 59, 1, 0, time.UTC)))
}
