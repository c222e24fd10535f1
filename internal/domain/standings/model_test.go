package standings

import "testing"

func TestPointsFor(t *testing.T) {
	t.Parallel()

	if got := PointsFor(10, 2); got != 11 {
		t.Fatalf("PointsFor(10, 2) = %v, want 11", got)
	}
	if got := PointsFor(0, 0); got != 0 {
		t.Fatalf("PointsFor(0, 0) = %v, want 0", got)
	}
	if got := PointsFor(0, 3); got != 1.5 {
		t.Fatalf("PointsFor(0, 3) = %v, want 1.5", got)
	}
}

func TestAssignRanks_CompetitionStyle(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{UserID: "u-d", Points: 3},
		{UserID: "u-a", Points: 10},
		{UserID: "u-c", Points: 5},
		{UserID: "u-b", Points: 5},
	}

	AssignRanks(rows)

	wantOrder := []string{"u-a", "u-b", "u-c", "u-d"}
	wantRanks := []int{1, 2, 2, 4}
	for i := range rows {
		if rows[i].UserID != wantOrder[i] {
			t.Fatalf("row %d: got user %s, want %s", i, rows[i].UserID, wantOrder[i])
		}
		if rows[i].Rank != wantRanks[i] {
			t.Fatalf("row %d (%s): got rank %d, want %d", i, rows[i].UserID, rows[i].Rank, wantRanks[i])
		}
	}
}

func TestAssignRanks_ThreeWayTieAtTop(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{UserID: "u-1", Points: 5},
		{UserID: "u-2", Points: 5},
		{UserID: "u-3", Points: 5},
		{UserID: "u-4", Points: 2},
	}

	AssignRanks(rows)

	for i := 0; i < 3; i++ {
		if rows[i].Rank != 1 {
			t.Fatalf("tied row %d got rank %d, want 1", i, rows[i].Rank)
		}
	}
	if rows[3].Rank != 4 {
		t.Fatalf("row after three-way tie got rank %d, want 4", rows[3].Rank)
	}
}

func TestAssignRanks_Empty(t *testing.T) {
	t.Parallel()

	AssignRanks(nil)
	AssignRanks([]Standing{})
}
