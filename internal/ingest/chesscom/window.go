package chesscom

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}/\d{2}$`)

// MonthWindow bounds collection to an inclusive range of "YYYY/MM" archive
// months. An empty bound is open-ended.
type MonthWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Contains reports whether an archive month falls inside the window.
// Zero-padded months compare correctly as strings.
func (w MonthWindow) Contains(month string) bool {
	if month == "" {
		return false
	}
	if w.From != "" && month < w.From {
		return false
	}
	if w.To != "" && month > w.To {
		return false
	}
	return true
}

// Validate checks that both bounds are well-formed and ordered
func (w MonthWindow) Validate() error {
	for _, bound := range []string{w.From, w.To} {
		if bound != "" && !monthPattern.MatchString(bound) {
			return fmt.Errorf("invalid month %q (want YYYY/MM)", bound)
		}
	}
	if w.From != "" && w.To != "" && w.From > w.To {
		return fmt.Errorf("window %s..%s is inverted", w.From, w.To)
	}
	return nil
}

// ArchiveMonth extracts the trailing "YYYY/MM" from a monthly archive URL
func ArchiveMonth(archiveURL string) string {
	parts := strings.Split(strings.TrimRight(archiveURL, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	month := parts[len(parts)-2] + "/" + parts[len(parts)-1]
	if !monthPattern.MatchString(month) {
		return ""
	}
	return month
}

// CurrentMonth formats a time as its archive month
func CurrentMonth(t time.Time) string {
	return t.UTC().Format("2006/01")
}
