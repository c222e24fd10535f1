package standings

import (
	"sort"
	"time"
)

// Standing is the derived leaderboard row for one user in a league/season.
// It is a cache over the pick table: every aggregation pass recomputes
// points and the tally from the full set of the user's graded picks, never
// by incrementing stored values.
type Standing struct {
	LeagueID     string
	SeasonID     string
	UserID       string
	Points       float64
	Rank         int
	Wins         int
	Losses       int
	Pushes       int
	CalculatedAt time.Time
}

// PointsFor converts a tally to points: a win is worth 1, a push half.
func PointsFor(wins, pushes int) float64 {
	return float64(wins) + float64(pushes)*0.5
}

// AssignRanks orders rows by points descending (user id as a deterministic
// secondary order) and assigns competition "1224" ranks in place: tied rows
// share a rank and the next distinct score ranks below the whole tied group.
func AssignRanks(rows []Standing) {
	sortRows(rows)

	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Points != rows[i-1].Points {
			rank = i + 1
		}
		rows[i].Rank = rank
	}
}

func sortRows(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].UserID < rows[j].UserID
	})
}
