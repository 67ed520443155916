package models

import "time"

// AttemptStatus is the server's answer to "has this user taken test n".
type AttemptStatus struct {
	Attempted bool    `json:"attempted"`
	Score     float64 `json:"score"`
}

// TestScore is one row of a user's per-test score listing.
type TestScore struct {
	Test  int     `json:"test"`
	Score float64 `json:"score"`
}

// LeaderboardRow is one ranked row of the aggregate leaderboard.
type LeaderboardRow struct {
	Name       string  `json:"name"`
	Tests      int     `json:"tests"`
	TotalScore float64 `json:"totalScore"`
	AvgScore   float64 `json:"avgScore"`
}

// Feedback is a free-form message submitted from the feedback form.
type Feedback struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Feedback string `json:"feedback" validate:"required"`
}

// Birthday identifies a user whose birthday is today.
type Birthday struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	DOB   *time.Time `json:"dob,omitempty"`
}
