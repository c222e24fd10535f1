package league

import (
	"fmt"
	"time"
)

type PickType string

const (
	PickTypeStraightUp PickType = "straight_up"
	PickTypeSpread     PickType = "spread"
)

// League is one pick'em competition. Settings are fixed at creation time.
type League struct {
	ID            string
	Name          string
	SeasonID      string
	InviteCode    string
	PicksPerPhase int
	PickType      PickType
	MaxMembers    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.SeasonID == "" {
		return fmt.Errorf("league season id is required")
	}
	if l.PicksPerPhase < 1 {
		return fmt.Errorf("league picks per phase must be >= 1")
	}
	if l.PickType != PickTypeStraightUp && l.PickType != PickTypeSpread {
		return fmt.Errorf("league pick type %q is not supported", l.PickType)
	}

	return nil
}
