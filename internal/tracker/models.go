package tracker

// State is the visible state of the daily wellness card.
type State int

const (
	// Hidden: nothing is shown.
	Hidden State = iota
	// Collapsed: the yes/no hydration prompt is shown.
	Collapsed
	// ExpandedForm: the full wellness entry form is shown.
	ExpandedForm
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	case ExpandedForm:
		return "expanded"
	default:
		return "unknown"
	}
}

// Mood values accepted by the wellness form.
const (
	MoodSad     = "sad"
	MoodNeutral = "neutral"
	MoodHappy   = "happy"
)

// ValidMood reports whether m is one of the three accepted moods.
func ValidMood(m string) bool {
	return m == MoodSad || m == MoodNeutral || m == MoodHappy
}

// WellnessRecord is the payload submitted to the collector.
// WaterIntake keeps its capitalized JSON key; the collector expects it
// exactly so.
type WellnessRecord struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	SleepHours  int     `json:"sleepHours"`
	Mood        string  `json:"mood"`
	WaterIntake int     `json:"WaterIntake"`
	ScreenTime  float64 `json:"screenTime"`
}

// Form holds the editable fields of the wellness entry form.
type Form struct {
	SleepHours  int
	Mood        string
	WaterIntake int
}

// Persistence keys.
const (
	keyCompletedDays  = "waterTracker_completedDays"
	keyLastPromptDate = "waterTracker_lastPromptDate"
	keyScreenTime     = "screenTime_" // + date string
)

// maxStreakDays is the length of the hydration streak window.
const maxStreakDays = 7
