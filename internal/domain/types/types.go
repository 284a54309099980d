// Package types contains common types used across the application
package types

// PositionView is the display shape of one rated position.
type PositionView struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Tooltip string  `json:"tooltip"`
}

// PlayerView represents a player row on the ratings board.
// Positions only holds positions with at least one rating.
type PlayerView struct {
	Player    string                  `json:"player"`
	Positions map[string]PositionView `json:"positions"`
	Overall   float64                 `json:"overall"`
	Ratings   int                     `json:"ratings"`
}

// TeamMember is a player assigned to a team.
type TeamMember struct {
	Player  string  `json:"player"`
	Average float64 `json:"average"`
}

// TeamView is one side of a balanced lineup.
type TeamView struct {
	Players []TeamMember `json:"players"`
	Total   float64      `json:"total"`
}

// Lineup is the result of balancing the current roster.
type Lineup struct {
	TeamA     TeamView `json:"team_a"`
	TeamB     TeamView `json:"team_b"`
	Imbalance float64  `json:"imbalance"`
	Seed      *int64   `json:"seed,omitempty"`
}

// SubmitRequest is the body of POST /ratings. Ratings is keyed by position
// name (GK, DEF, MID, FWD).
type SubmitRequest struct {
	User    string         `json:"user" validate:"required,notblank,max=64"`
	Player  string         `json:"player" validate:"required,notblank,max=64"`
	Ratings map[string]int `json:"ratings" validate:"required,min=1,dive,keys,position,endkeys,min=1,max=10"`
}

// SubmitResponse acknowledges a saved submission.
type SubmitResponse struct {
	Status    string   `json:"status"`
	Player    string   `json:"player"`
	User      string   `json:"user"`
	Positions []string `json:"positions"`
}
