package tzif

import "fmt"

// FormatOffset formats a UTC offset given in seconds as a sign followed by
// HH:MM:SS, for example "+01:00:00" or "-00:30:00". The hours are an
// elapsed duration and are not wrapped at 24.
func FormatOffset(sec int64) string {
	sign := '+'
	abs := uint64(sec)
	if sec < 0 {
		sign = '-'
		abs = -abs
	}
	return fmt.Sprintf("%c%02d:%02d:%02d", sign, abs/3600, abs/60%60, abs%60)
}
