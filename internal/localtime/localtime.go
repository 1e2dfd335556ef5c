// Package localtime formats dates and clock times in the Indonesian locale.
// The day string doubles as the ledger's daily-uniqueness key, so the format
// here must never change shape.
package localtime

import (
	"fmt"
	"time"
)

var dayNames = [...]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Day renders t as e.g. "Senin, 25 Agustus 2026".
func Day(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		dayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}

// TimeOfDay renders t as a dotted 24h clock, e.g. "09.05.33".
func TimeOfDay(t time.Time) string {
	return fmt.Sprintf("%02d.%02d.%02d", t.Hour(), t.Minute(), t.Second())
}
