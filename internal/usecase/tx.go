package usecase

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

// TxRunner abstracts transaction boundaries so services can be tested with
// a pass-through runner. Production wiring injects *database.TxRunner.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, q database.Querier) error) error
	Querier() database.Querier
}
