package sessions

import "time"

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextOrSame returns the date of the first w on or after today.
func NextOrSame(today time.Time, w time.Weekday) time.Time {
	d := DateOf(today)
	delta := (int(w) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, delta)
}

// civil is a calendar date comparable across locations.
func civil(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Within reports whether the calendar date of t lies in [start, end].
func Within(t, start, end time.Time) bool {
	c := civil(t)
	return civil(start) <= c && c <= civil(end)
}
