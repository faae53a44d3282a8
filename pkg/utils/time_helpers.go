package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDateFR преобразует "2024-05-01" (или полный ISO) в "1 mai 2024".
// Если строку не удалось разобрать, она возвращается как есть.
func FormatDateFR(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	day := iso
	if len(day) > 10 {
		day = day[:10]
	}
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// FormatDateTimeFR - "1 mai 2024 à 08:30" для полного ISO, иначе как FormatDateFR.
func FormatDateTimeFR(iso string) string {
	iso = strings.TrimSpace(iso)
	if len(iso) < 16 {
		return FormatDateFR(iso)
	}
	t, err := time.Parse("2006-01-02T15:04", iso[:16])
	if err != nil {
		return FormatDateFR(iso)
	}
	return fmt.Sprintf("%s à %s", FormatDateFR(iso), t.Format("15:04"))
}

// NowISO - текущий момент в формате, который принимает API.
func NowISO() string {
	return time.Now().Format(time.RFC3339)
}
