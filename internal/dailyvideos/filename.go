package dailyvideos

import (
	"fmt"
	"time"
)

const (
	dailyFilenameTemplateConstant = "videos_%s.json"
	dailyDateLayoutConstant       = "2006-01-02"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatDate renders the UTC calendar date of moment as YYYY-MM-DD.
func FormatDate(moment time.Time) string {
	return moment.UTC().Format(dailyDateLayoutConstant)
}

// ResolveFilename returns the daily file name for the UTC date of moment.
func ResolveFilename(moment time.Time) string {
	return fmt.Sprintf(dailyFilenameTemplateConstant, FormatDate(moment))
}
