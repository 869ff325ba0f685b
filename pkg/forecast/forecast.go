package forecast

import (
	"math"
	"sync"
	"time"

	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

// maxConfidence caps weather/tag boosts
const maxConfidence = 95

// lowConfidence is forced for far-future, averages-only days
const lowConfidence = 40

// DefaultFutureWeeks is how many weeks ahead the multi-week driver
// projects when not configured otherwise
const DefaultFutureWeeks = 4

// HistoryStore is the persisted-record access the engine needs. Every
// generate call refetches; the engine holds no state between calls.
type HistoryStore interface {
	DailyRevenueRange(locationID, start, end string) ([]models.DailyRevenue, error)
	TaggedDateRange(start, end string) ([]models.TaggedDate, error)
	Tags() ([]models.RevenueTag, error)
}

// Engine blends day-of-week baselines, weather correlation, and tagged
// event deltas into a confidence-scored revenue forecast
type Engine struct {
	History    HistoryStore
	Weather    weather.Provider
	LocationID string
	Now        func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

type historyData struct {
	records []models.DailyRevenue
	tagged  []models.TaggedDate
	tags    []models.RevenueTag
}

// fetchHistory issues the three store reads concurrently and keeps the
// first error. Store read failures are retryable FetchErrors; weather is
// handled separately and never fails.
func (e *Engine) fetchHistory(windowStart, windowEnd, rangeStart, rangeEnd string) (*historyData, error) {
	var (
		data historyData
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(source string, err error) {
		mu.Lock()
		errs = append(errs, &models.FetchError{Source: source, Err: err})
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		records, err := e.History.DailyRevenueRange(e.LocationID, windowStart, windowEnd)
		if err != nil {
			fail("daily_revenue", err)
			return
		}
		data.records = records
	}()
	go func() {
		defer wg.Done()
		tagged, err := e.History.TaggedDateRange(rangeStart, rangeEnd)
		if err != nil {
			fail("tagged_dates", err)
			return
		}
		data.tagged = tagged
	}()
	go func() {
		defer wg.Done()
		tags, err := e.History.Tags()
		if err != nil {
			fail("revenue_tags", err)
			return
		}
		data.tags = tags
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &data, nil
}

// Generate produces one forecast per calendar day in [start, end]
// inclusive. With useAveragesOnly the weather correction is skipped, but
// weather is still fetched so mode switches stay pure. Tag adjustments
// apply in both modes.
func (e *Engine) Generate(start, end time.Time, useAveragesOnly bool) ([]models.RevenueForecast, error) {
	now := e.now()
	windowStart := now.AddDate(0, -WindowMonths, 0).Format(weather.DateLayout)
	windowEnd := now.Format(weather.DateLayout)

	data, err := e.fetchHistory(windowStart, windowEnd, start.Format(weather.DateLayout), end.Format(weather.DateLayout))
	if err != nil {
		return nil, err
	}

	baselines := BuildBaselines(data.records)
	impact := BuildWeatherImpact(data.records)
	if len(impact) == 0 {
		impact = illustrativeImpact()
	}

	tagsByID := make(map[string]models.RevenueTag, len(data.tags))
	for _, t := range data.tags {
		tagsByID[t.ID] = t
	}
	taggedByDate := make(map[string]models.TaggedDate, len(data.tagged))
	for _, td := range data.tagged {
		taggedByDate[td.Date] = td
	}

	weatherDays := weather.Range(e.Weather, start, end, now)
	weatherByDate := make(map[string]models.WeatherForecast, len(weatherDays))
	for _, w := range weatherDays {
		weatherByDate[w.Date] = w
	}

	var out []models.RevenueForecast
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(weather.DateLayout)
		out = append(out, e.forecastDay(key, models.DayOfWeekFromTime(d), weatherByDate[key],
			baselines, impact, taggedByDate, tagsByID, useAveragesOnly))
	}
	return out, nil
}

func (e *Engine) forecastDay(
	date string,
	day models.DayOfWeek,
	wf models.WeatherForecast,
	baselines map[models.DayOfWeek]models.DayOfWeekBaseline,
	impact models.WeatherImpact,
	taggedByDate map[string]models.TaggedDate,
	tagsByID map[string]models.RevenueTag,
	useAveragesOnly bool,
) models.RevenueForecast {
	baseline := baselines[day]
	food := baseline.AvgFoodRevenue
	bev := baseline.AvgBevRevenue
	confidence := baselineConfidence(baseline.Count)

	if !useAveragesOnly && wf.Description != weather.NotAvailable {
		cond := weather.GeneralCondition(wf.Description)
		if entry, ok := impact[day][cond]; ok && entry.Count > 0 {
			// Per-stream guard: a zero baseline would turn the ratio into
			// NaN/Inf, so that stream keeps its unadjusted value.
			if m := entry.AverageFoodRevenue / baseline.AvgFoodRevenue; finite(m) {
				food *= m
			}
			if m := entry.AverageBevRevenue / baseline.AvgBevRevenue; finite(m) {
				bev *= m
			}
			if entry.Count >= 5 {
				confidence = boost(confidence, 10)
			}
		}
	}

	if td, ok := taggedByDate[date]; ok {
		if tag, ok := tagsByID[td.TagID]; ok {
			foodDelta := tag.HistoricalFoodRevenueImpact
			if td.ManualFoodRevenueImpact != nil {
				foodDelta = *td.ManualFoodRevenueImpact
			}
			bevDelta := tag.HistoricalBeverageRevenueImpact
			if td.ManualBeverageRevenueImpact != nil {
				bevDelta = *td.ManualBeverageRevenueImpact
			}
			food *= 1 + foodDelta/100
			bev *= 1 + bevDelta/100
			if tag.OccurrenceCount >= 3 {
				confidence = boost(confidence, 5)
			}
		}
	}

	// A day without weather data is an averages-only forecast whatever
	// the requested mode; signal that explicitly.
	if wf.Description == weather.NotAvailable {
		confidence = lowConfidence
	}

	return models.RevenueForecast{
		Date:               date,
		DayOfWeek:          day,
		FoodRevenue:        food,
		BeverageRevenue:    bev,
		TotalRevenue:       food + bev,
		WeatherDescription: wf.Description,
		Temperature:        wf.Temperature,
		Precipitation:      wf.Precipitation,
		WindSpeed:          wf.WindSpeed,
		Confidence:         confidence,
	}
}

// WeekForecast is one Monday-start week of daily forecasts
type WeekForecast struct {
	WeekStart    string                   `json:"week_start"` // YYYY-MM-DD, a Monday
	AveragesOnly bool                     `json:"averages_only"`
	Days         []models.RevenueForecast `json:"days"`
}

// GenerateFutureWeeks forecasts the current Monday-start week plus
// numWeeks subsequent weeks. Live weather is used for the current and
// first future week only; everything further out runs averages-only, so
// near-term forecasts carry real data and far-out ones a statistical
// fallback with honest low confidence.
func (e *Engine) GenerateFutureWeeks(numWeeks int) ([]WeekForecast, error) {
	if numWeeks < 0 {
		numWeeks = DefaultFutureWeeks
	}
	monday := WeekStart(e.now())

	var weeks []WeekForecast
	for i := 0; i <= numWeeks; i++ {
		start := monday.AddDate(0, 0, 7*i)
		end := start.AddDate(0, 0, 6)
		averagesOnly := i > 1

		days, err := e.Generate(start, end, averagesOnly)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, WeekForecast{
			WeekStart:    start.Format(weather.DateLayout),
			AveragesOnly: averagesOnly,
			Days:         days,
		})
	}
	return weeks, nil
}

// WeekStart returns the Monday of t's week at midnight
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func boost(confidence, by int) int {
	confidence += by
	if confidence > maxConfidence {
		return maxConfidence
	}
	return confidence
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
