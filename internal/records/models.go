package records

// SubmitRequest is the wellness record payload from the tracker.
// WaterIntake keeps its capitalized key; clients send it exactly so.
type SubmitRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"` // RFC 3339 timestamp or YYYY-MM-DD
	SleepHours  int     `json:"sleepHours"`
	Mood        string  `json:"mood"`
	WaterIntake int     `json:"WaterIntake"`
	ScreenTime  float64 `json:"screenTime"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// RecordDTO is a stored record in API responses.
type RecordDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	SleepHours  int     `json:"sleepHours"`
	Mood        string  `json:"mood"`
	WaterIntake int     `json:"WaterIntake"`
	ScreenTime  float64 `json:"screenTime"`
}

type ListResponse struct {
	Records []RecordDTO `json:"records"`
}

type DailyResponse struct {
	Name              string  `json:"name"`
	Date              string  `json:"date"`
	Records           int     `json:"records"`
	TotalWaterGlasses int     `json:"totalWaterGlasses"`
	MaxSleepHours     int     `json:"maxSleepHours"`
	MaxScreenTime     float64 `json:"maxScreenTime"`
	LastMood          string  `json:"lastMood"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
