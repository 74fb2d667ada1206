package core

import "fmt"

// FormatDuration renders seconds as mm:ss. Minutes are not wrapped.
func FormatDuration(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	total := int(secs)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
