package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"bsm/database"
	"bsm/model"
)

// WeeklyProfit builds the home-page series: total profit per day for the seven
// full days ending yesterday, zero-filled for days without statistics.
func WeeklyProfit(dbtx database.DBTX, today time.Time) ([]model.ProfitPoint, error) {
	end := today.AddDate(0, 0, -1)
	start := today.AddDate(0, 0, -7)

	totals, err := database.DailyProfit(dbtx, model.DateRange{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	points := make([]model.ProfitPoint, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		profit, ok := totals[day]
		if !ok {
			profit = decimal.Zero
		}
		points = append(points, model.ProfitPoint{Day: day, Profit: profit})
	}
	return points, nil
}
