package event

import "time"

// Event is one game between two teams within a phase.
type Event struct {
	ID         string
	PhaseID    string
	HomeTeamID string
	AwayTeamID string
	StartAt    time.Time
}

// HasTeam reports whether teamID plays in this event.
func (e Event) HasTeam(teamID string) bool {
	return teamID == e.HomeTeamID || teamID == e.AwayTeamID
}
