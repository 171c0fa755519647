// Package statistics maintains the one-row-per-product-per-day summary table:
// running totals, weighted-average prices, settlement state and cumulative
// profit derived from the transaction stream.
package statistics

import (
	"github.com/shopspring/decimal"

	"bsm/database"
	"bsm/model"
)

// ApplyTransaction folds one recorded transaction into the daily statistics.
//
// The latest row for the product is the starting point. When its day equals
// asOfDay the row is amended in place; otherwise it is the prior day's closing
// snapshot and a new row for asOfDay is seeded from it, carrying the opening
// balance forward unchanged. With no history the row is seeded empty with
// settled=true.
//
// Store failures propagate unchanged. The caller has already appended the
// transaction row, so a failure here leaves it unaccounted for in the
// statistics; there is no rollback of the append.
func ApplyTransaction(dbtx database.DBTX, kind model.TransactionKind, productID string,
	bottles int, unitPrice, totalPrice decimal.Decimal, settled bool, asOfDay string) (*model.DailyStatistic, error) {

	latest, err := database.LatestStatistic(dbtx, productID)
	if err != nil {
		return nil, err
	}

	stat := model.DailyStatistic{
		ProductID: productID,
		Day:       asOfDay,
		Settled:   true,
	}
	if latest != nil {
		stat = *latest
		stat.Day = asOfDay
	}

	switch kind {
	case model.KindIn:
		priorSpend := stat.InUnitPrice.Mul(decimal.NewFromInt(int64(stat.InTotal)))
		stat.InTotal += bottles
		stat.InUnitPrice = priorSpend.Add(totalPrice).
			DivRound(decimal.NewFromInt(int64(stat.InTotal)), 2)
	case model.KindOut:
		priorTake := stat.OutUnitPrice.Mul(decimal.NewFromInt(int64(stat.OutTotal)))
		stat.OutTotal += bottles
		stat.OutUnitPrice = priorTake.Add(totalPrice).
			DivRound(decimal.NewFromInt(int64(stat.OutTotal)), 2)
		// Profit accrues against the inbound weighted average as it stands
		// before this outbound transaction.
		margin := unitPrice.Sub(stat.InUnitPrice)
		stat.Profit = stat.Profit.Add(decimal.NewFromInt(int64(bottles)).Mul(margin)).Round(2)
	}

	stat.Settled = stat.Settled && settled

	if err := database.UpsertStatistic(dbtx, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}
