package tracker

import "time"

// Clock abstracts time for the tracker so elapsed-time accounting and
// day boundaries are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return realClock{} }

// DateString formats t as the per-day persistence key suffix.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
