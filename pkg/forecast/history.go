package forecast

import (
	"time"

	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

// WindowMonths is the trailing calendar window historical averages are
// computed over
const WindowMonths = 3

// defaultBaselines stands in for any weekday with zero historical samples.
// A missing day must never collapse a forecast to zero revenue, so these
// are deliberately conservative trading figures, not zeros.
var defaultBaselines = map[models.DayOfWeek]models.DayOfWeekBaseline{
	models.Monday:    {AvgFoodRevenue: 1200, AvgBevRevenue: 600},
	models.Tuesday:   {AvgFoodRevenue: 1250, AvgBevRevenue: 650},
	models.Wednesday: {AvgFoodRevenue: 1400, AvgBevRevenue: 750},
	models.Thursday:  {AvgFoodRevenue: 1600, AvgBevRevenue: 900},
	models.Friday:    {AvgFoodRevenue: 2400, AvgBevRevenue: 1500},
	models.Saturday:  {AvgFoodRevenue: 2800, AvgBevRevenue: 1700},
	models.Sunday:    {AvgFoodRevenue: 2000, AvgBevRevenue: 1000},
}

// BuildBaselines buckets historical days by weekday and averages each
// revenue stream. Weekdays with no samples fall back to the fixed
// defaults (Count stays 0 so confidence scoring sees the sparsity).
func BuildBaselines(records []models.DailyRevenue) map[models.DayOfWeek]models.DayOfWeekBaseline {
	type bucket struct {
		food, bev float64
		count     int
	}
	buckets := make(map[models.DayOfWeek]*bucket)
	for _, r := range records {
		d, err := time.Parse(weather.DateLayout, r.Date)
		if err != nil {
			continue
		}
		day := models.DayOfWeekFromTime(d)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.food += r.FoodRevenue
		b.bev += r.BeverageRevenue
		b.count++
	}

	out := make(map[models.DayOfWeek]models.DayOfWeekBaseline, len(models.WeekDays))
	for _, day := range models.WeekDays {
		if b, ok := buckets[day]; ok && b.count > 0 {
			out[day] = models.DayOfWeekBaseline{
				AvgFoodRevenue: b.food / float64(b.count),
				AvgBevRevenue:  b.bev / float64(b.count),
				Count:          b.count,
			}
		} else {
			out[day] = defaultBaselines[day]
		}
	}
	return out
}

// BuildWeatherImpact buckets the same window by (weekday, general
// condition) and averages each revenue stream per bucket
func BuildWeatherImpact(records []models.DailyRevenue) models.WeatherImpact {
	type bucket struct {
		food, bev float64
		count     int
	}
	buckets := make(map[models.DayOfWeek]map[string]*bucket)
	for _, r := range records {
		if r.WeatherDescription == "" {
			continue
		}
		d, err := time.Parse(weather.DateLayout, r.Date)
		if err != nil {
			continue
		}
		day := models.DayOfWeekFromTime(d)
		cond := weather.GeneralCondition(r.WeatherDescription)
		if buckets[day] == nil {
			buckets[day] = make(map[string]*bucket)
		}
		b, ok := buckets[day][cond]
		if !ok {
			b = &bucket{}
			buckets[day][cond] = b
		}
		b.food += r.FoodRevenue
		b.bev += r.BeverageRevenue
		b.count++
	}

	out := make(models.WeatherImpact, len(buckets))
	for day, conds := range buckets {
		out[day] = make(map[string]models.WeatherImpactEntry, len(conds))
		for cond, b := range conds {
			out[day][cond] = models.WeatherImpactEntry{
				AverageFoodRevenue: b.food / float64(b.count),
				AverageBevRevenue:  b.bev / float64(b.count),
				Count:              b.count,
			}
		}
	}
	return out
}

// illustrativeImpact is the small fixed correlation table used when no
// usable historical weather data exists. Counts stay below the
// confidence-boost cutoff so synthetic data never inflates confidence.
func illustrativeImpact() models.WeatherImpact {
	multipliers := map[string]float64{
		weather.ConditionSunny:     1.10,
		weather.ConditionLightRain: 0.92,
		weather.ConditionHeavyRain: 0.85,
		weather.ConditionSnow:      0.75,
	}
	out := make(models.WeatherImpact, len(models.WeekDays))
	for _, day := range models.WeekDays {
		base := defaultBaselines[day]
		out[day] = make(map[string]models.WeatherImpactEntry, len(multipliers))
		for cond, m := range multipliers {
			out[day][cond] = models.WeatherImpactEntry{
				AverageFoodRevenue: base.AvgFoodRevenue * m,
				AverageBevRevenue:  base.AvgBevRevenue * m,
				Count:              2,
			}
		}
	}
	return out
}

// baselineConfidence is a step function of how many historical samples
// back a weekday's average
func baselineConfidence(count int) int {
	switch {
	case count >= 10:
		return 85
	case count >= 5:
		return 75
	case count > 0:
		return 65
	default:
		return 50
	}
}
