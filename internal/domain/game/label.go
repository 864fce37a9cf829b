package game

import (
	"fmt"
	"regexp"
	"strconv"
)

var matchLabelPattern = regexp.MustCompile(`^Week (\d+) - Game (\d+)$`)

// FormatMatchLabel renders the canonical "Week {week} - Game {n}" label.
func FormatMatchLabel(week, n int) string {
	return fmt.Sprintf("Week %d - Game %d", week, n)
}

// ParseMatchLabel extracts week and game number from a canonical label.
func ParseMatchLabel(label string) (week, n int, ok bool) {
	m := matchLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	n, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return week, n, true
}

// NextMatchLabel returns the label for the next game of week. n is one more
// than the highest suffix among existing labels for that week; labels for
// other weeks or in any other format are ignored.
func NextMatchLabel(week int, existing []string) string {
	highest := 0
	for _, label := range existing {
		w, n, ok := ParseMatchLabel(label)
		if !ok || w != week {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return FormatMatchLabel(week, highest+1)
}
