package timerange

import "time"

// TimeRange полуоткрытый интервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// New создаёт интервал по границам
func New(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// FromStartAndDuration создаёт интервал длиной d начиная со start
func FromStartAndDuration(start time.Time, d time.Duration) TimeRange {
	return TimeRange{Start: start, End: start.Add(d)}
}

// Duration возвращает длину интервала
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps проверяет пересечение двух интервалов.
// Интервалы, касающиеся концами, не пересекаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains проверяет что момент t попадает в [Start, End)
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Overlaps проверяет пересечение интервалов a и b
func Overlaps(a, b TimeRange) bool {
	return a.Overlaps(b)
}

func (r TimeRange) String() string {
	return r.Start.Format("02.01.2006 15:04") + " - " + r.End.Format("15:04")
}
