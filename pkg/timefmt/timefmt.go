// Package timefmt renders elapsed durations as human-readable Polish text.
package timefmt

import "fmt"

// Czytelny converts elapsed seconds into a readable form, e.g. "2 minut i 5 sekund".
// The fractional part is truncated, never rounded up.
func Czytelny(sekundy float64) string {
	total := int(sekundy)
	if total < 0 {
		total = 0
	}

	minuty, sek := total/60, total%60
	godziny, min := minuty/60, minuty%60

	switch {
	case godziny > 0:
		return fmt.Sprintf("%d godz. %d min %d sek", godziny, min, sek)
	case min > 0:
		return fmt.Sprintf("%d minut i %d sekund", min, sek)
	default:
		return fmt.Sprintf("%d sekund", sek)
	}
}
