package espn

// Payload shapes for the scoreboard API. Only the fields the sync flow
// reads are declared; the provider sends far more.

type scheduleEnvelope struct {
	Season seasonItem `json:"season"`
	Weeks  []weekItem `json:"weeks"`
}

type seasonItem struct {
	Year int    `json:"year"`
	Slug string `json:"slug"`
}

type weekItem struct {
	Number int         `json:"number"`
	Events []eventItem `json:"events"`
}

type eventItem struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"` // "2025-09-07T17:00Z"
	Name         string            `json:"name"`
	Competitions []competitionItem `json:"competitions"`
}

type competitionItem struct {
	Competitors []competitorItem `json:"competitors"`
	Status      statusItem       `json:"status"`
}

type competitorItem struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"` // API sends scores as strings
	Team     teamItem `json:"team"`
}

type teamItem struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type statusItem struct {
	Type statusTypeItem `json:"type"`
}

type statusTypeItem struct {
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type scoreboardEnvelope struct {
	Events []eventItem `json:"events"`
}

type oddsEnvelope struct {
	Items []oddsItem `json:"items"`
}

type oddsItem struct {
	EventID string  `json:"eventId"`
	Details string  `json:"details"` // e.g. "KC -3.5"
	Spread  float64 `json:"spread"`  // home team line
}
