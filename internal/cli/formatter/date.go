package formatter

import (
	"fmt"
	"time"
)

// frenchShortMonths are the abbreviated French month names, capitalized
// for display in the bill table.
var frenchShortMonths = [...]string{
	"Janv.", "Févr.", "Mars", "Avr.", "Mai", "Juin",
	"Juil.", "Août", "Sept.", "Oct.", "Nov.", "Déc.",
}

// FormatDate converts a YYYY-MM-DD date string into the localized display
// form used in the bill table, e.g. "4 Avr. 04". The caller keeps the raw
// value for sorting.
func FormatDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", iso, err)
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchShortMonths[t.Month()-1], t.Year()%100), nil
}
