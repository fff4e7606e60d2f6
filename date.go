package bib2html

import (
	"time"

	"github.com/alnah/go-bib2html/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for footer date values.
// - "auto" → current date in YYYY-MM-DD format
// - "auto:FORMAT" → current date in custom format (e.g., "auto:DD/MM/YYYY")
// - "auto:preset" → current date using named preset (iso, european, us, long)
// - any other value → returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing. The
// resolved string goes into Input.GeneratedDate.
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
