package attendance

import "time"

// TaskCategory is a closed classification label attached to an interval.
type TaskCategory string

const (
	CategoryMath    TaskCategory = "math"
	CategoryScience TaskCategory = "science"
	CategoryEnglish TaskCategory = "english"
	CategoryHistory TaskCategory = "history"
	CategoryArt     TaskCategory = "art"
	CategoryMusic   TaskCategory = "music"
	CategoryOther   TaskCategory = "other"
)

// Categories returns every task category in display order.
func Categories() []TaskCategory {
	return []TaskCategory{
		CategoryMath,
		CategoryScience,
		CategoryEnglish,
		CategoryHistory,
		CategoryArt,
		CategoryMusic,
		CategoryOther,
	}
}

// Valid reports whether the category is a member of the closed set.
func (c TaskCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Interval is one start/end attendance record of a user's session within a
// space. EndTime is nil while the session is open; for a given
// (username, space) pair at most one interval is open at any time.
type Interval struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	SpaceName    string        `json:"space_name"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      *time.Time    `json:"end_time,omitempty"`
	TaskCategory *TaskCategory `json:"task_category,omitempty"`
}

// Open reports whether the interval has not been ended yet.
func (iv *Interval) Open() bool {
	return iv.EndTime == nil
}

// Duration returns the closed span of the interval; open intervals
// contribute zero.
func (iv *Interval) Duration() time.Duration {
	if iv.EndTime == nil {
		return 0
	}
	return iv.EndTime.Sub(iv.StartTime)
}
