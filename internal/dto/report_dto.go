package dto

import "time"

type ShowReportResponse struct {
	Content     string    `json:"content"`
	Stale       bool      `json:"stale"`
	GeneratedAt time.Time `json:"generated_at"`
	Confidence  int       `json:"confidence"`
}

// RegenerateReportMessage is the watermill payload asking the worker to
// rebuild a user's report.
type RegenerateReportMessage struct {
	UserId string `json:"user_id"`
}
