package domain

import "time"

// ConflictWindowMargin brackets the screening lookup when checking a
// proposed interval against a theater's schedule. One day on each side is
// enough to catch any screening whose own interval could overlap, since
// movie durations are capped well below 24 hours at the validation layer.
const ConflictWindowMargin = 24 * time.Hour

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap. Touching endpoints do not overlap: a screening
// may start the instant another ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
