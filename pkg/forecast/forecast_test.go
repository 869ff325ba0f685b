package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

type stubStore struct {
	records []models.DailyRevenue
	tagged  []models.TaggedDate
	tags    []models.RevenueTag
	err     error
}

func (s *stubStore) DailyRevenueRange(locationID, start, end string) ([]models.DailyRevenue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubStore) TaggedDateRange(start, end string) ([]models.TaggedDate, error) {
	return s.tagged, nil
}

func (s *stubStore) Tags() ([]models.RevenueTag, error) {
	return s.tags, nil
}

type stubWeather struct {
	days []models.WeatherForecast
	err  error
}

func (s *stubWeather) Daily(start, end time.Time) ([]models.WeatherForecast, error) {
	return s.days, s.err
}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func engine(store HistoryStore, w weather.Provider) *Engine {
	return &Engine{
		History:    store,
		Weather:    w,
		LocationID: "loc1",
		Now:        func() time.Time { return testNow },
	}
}

// weeklyRecords builds n samples on the same weekday as target, one per
// week back, all inside the trailing window
func weeklyRecords(target time.Time, n int, food, bev float64, description string) []models.DailyRevenue {
	var out []models.DailyRevenue
	for i := 1; i <= n; i++ {
		date := target.AddDate(0, 0, -7*i)
		out = append(out, models.DailyRevenue{
			ID:                 date.Format(weather.DateLayout),
			LocationID:         "loc1",
			Date:               date.Format(weather.DateLayout),
			FoodRevenue:        food,
			BeverageRevenue:    bev,
			WeatherDescription: description,
		})
	}
	return out
}

func TestGenerate_ConfidenceStepFunction(t *testing.T) {
	target := testNow.AddDate(0, 0, 2)
	live := &stubWeather{days: []models.WeatherForecast{
		{Date: target.Format(weather.DateLayout), Description: "Clear sky", Temperature: 18},
	}}

	tests := []struct {
		samples int
		want    int
	}{
		{12, 85},
		{7, 75},
		{3, 65},
		{0, 50},
	}

	for _, tc := range tests {
		store := &stubStore{records: weeklyRecords(target, tc.samples, 1000, 500, "")}
		e := engine(store, live)

		// averages-only so no weather boost muddies the baseline score
		out, err := e.Generate(target, target, true)
		if err != nil {
			t.Fatalf("samples=%d: unexpected error: %v", tc.samples, err)
		}
		if len(out) != 1 {
			t.Fatalf("samples=%d: expected 1 day, got %d", tc.samples, len(out))
		}
		if out[0].Confidence != tc.want {
			t.Errorf("samples=%d: expected confidence %d, got %d", tc.samples, tc.want, out[0].Confidence)
		}
	}
}

func TestGenerate_BaselineAverages(t *testing.T) {
	target := testNow.AddDate(0, 0, 1)
	store := &stubStore{records: weeklyRecords(target, 4, 1000, 500, "")}
	e := engine(store, &stubWeather{})

	out, err := e.Generate(target, target, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out[0].FoodRevenue != 1000 || out[0].BeverageRevenue != 500 {
		t.Errorf("Expected baseline averages 1000/500, got %.2f/%.2f", out[0].FoodRevenue, out[0].BeverageRevenue)
	}
	if out[0].TotalRevenue != 1500 {
		t.Errorf("Expected total 1500, got %.2f", out[0].TotalRevenue)
	}
	if out[0].DayOfWeek != models.DayOfWeekFromTime(target) {
		t.Errorf("Expected day %s, got %s", models.DayOfWeekFromTime(target), out[0].DayOfWeek)
	}
}

func TestGenerate_DefaultBaselineWhenNoSamples(t *testing.T) {
	target := testNow.AddDate(0, 0, 1)
	e := engine(&stubStore{}, &stubWeather{err: errors.New("down")})

	out, err := e.Generate(target, target, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out[0].FoodRevenue == 0 || out[0].BeverageRevenue == 0 {
		t.Errorf("Expected conservative defaults for missing history, got %.2f/%.2f",
			out[0].FoodRevenue, out[0].BeverageRevenue)
	}
}

func TestGenerate_WeatherAdjustment(t *testing.T) {
	target := testNow.AddDate(0, 0, 2)
	day := target.Format(weather.DateLayout)

	// 6 sunny weeks at 1200/600 and 6 rainy weeks at 800/400:
	// baseline 1000/500, sunny impact 1200/600, count 6 (>=5 boosts confidence)
	records := append(
		weeklyRecords(target, 6, 1200, 600, "Sunny"),
		weeklyRecords(target.AddDate(0, 0, -42), 6, 800, 400, "Light rain")...,
	)
	store := &stubStore{records: records}
	live := &stubWeather{days: []models.WeatherForecast{
		{Date: day, Description: "Sunny", Temperature: 24},
	}}
	e := engine(store, live)

	out, err := e.Generate(target, target, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// baseline 1000 * (1200/1000) = 1200
	if diff := out[0].FoodRevenue - 1200; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected sunny food revenue 1200, got %.2f", out[0].FoodRevenue)
	}
	if diff := out[0].BeverageRevenue - 600; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected sunny beverage revenue 600, got %.2f", out[0].BeverageRevenue)
	}
	// 12 samples -> 85 base, +10 weather boost, capped at 95
	if out[0].Confidence != 95 {
		t.Errorf("Expected confidence 95, got %d", out[0].Confidence)
	}
}

func TestGenerate_HorizonFallback(t *testing.T) {
	// 10 days out is past the 7-day horizon even with live weather requested
	target := testNow.AddDate(0, 0, 10)
	day := target.Format(weather.DateLayout)

	tag := models.RevenueTag{ID: "tag1", Name: "Bank Holiday", HistoricalFoodRevenueImpact: 20, HistoricalBeverageRevenueImpact: 10, OccurrenceCount: 4}
	store := &stubStore{
		records: weeklyRecords(target, 4, 1000, 500, "Sunny"),
		tags:    []models.RevenueTag{tag},
		tagged:  []models.TaggedDate{{ID: "td1", TagID: "tag1", Date: day}},
	}
	e := engine(store, &stubWeather{})

	out, err := e.Generate(target, target, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out[0].WeatherDescription != weather.NotAvailable {
		t.Errorf("Expected N/A weather past horizon, got %q", out[0].WeatherDescription)
	}
	if out[0].Confidence != 40 {
		t.Errorf("Expected forced confidence 40, got %d", out[0].Confidence)
	}
	// baseline * tag only, no weather multiplier
	if diff := out[0].FoodRevenue - 1200; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected 1000 * 1.20 = 1200, got %.2f", out[0].FoodRevenue)
	}
	if diff := out[0].BeverageRevenue - 550; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected 500 * 1.10 = 550, got %.2f", out[0].BeverageRevenue)
	}
}

func TestGenerate_TagOverridePrecedence(t *testing.T) {
	target := testNow.AddDate(0, 0, 1)
	day := target.Format(weather.DateLayout)

	manual := 10.0
	tag := models.RevenueTag{ID: "tag1", Name: "Quiz Night", HistoricalFoodRevenueImpact: 25, OccurrenceCount: 5}
	store := &stubStore{
		records: weeklyRecords(target, 4, 1000, 500, ""),
		tags:    []models.RevenueTag{tag},
		tagged: []models.TaggedDate{{
			ID: "td1", TagID: "tag1", Date: day,
			ManualFoodRevenueImpact: &manual,
		}},
	}
	e := engine(store, &stubWeather{})

	out, err := e.Generate(target, target, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := out[0].FoodRevenue - 1100; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected manual override 1000 * 1.10 = 1100, got %.2f", out[0].FoodRevenue)
	}
	// beverage has no manual override, so the historical delta (0) applies
	if diff := out[0].BeverageRevenue - 500; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected beverage unchanged at 500, got %.2f", out[0].BeverageRevenue)
	}
	// 4 samples -> 65, +5 tag boost (occurrences >= 3)
	if out[0].Confidence != 70 {
		t.Errorf("Expected confidence 70, got %d", out[0].Confidence)
	}
}

func TestForecastDay_NonFiniteMultiplierGuard(t *testing.T) {
	e := engine(&stubStore{}, &stubWeather{})

	day := models.Monday
	baselines := map[models.DayOfWeek]models.DayOfWeekBaseline{
		day: {AvgFoodRevenue: 0, AvgBevRevenue: 500, Count: 6},
	}
	impact := models.WeatherImpact{
		day: {weather.ConditionSunny: {AverageFoodRevenue: 900, AverageBevRevenue: 600, Count: 6}},
	}
	wf := models.WeatherForecast{Date: "2026-09-07", Description: "Sunny", Temperature: 22}

	out := e.forecastDay("2026-09-07", day, wf, baselines, impact, nil, nil, false)

	// food ratio is 900/0: skipped, value stays at the zero baseline
	if out.FoodRevenue != 0 {
		t.Errorf("Expected food stream unadjusted at 0, got %v", out.FoodRevenue)
	}
	// beverage ratio 600/500 is finite and applies
	if diff := out.BeverageRevenue - 600; diff > 0.01 || diff < -0.01 {
		t.Errorf("Expected beverage 500 * 1.2 = 600, got %.2f", out.BeverageRevenue)
	}
}

func TestGenerate_StoreFailurePropagates(t *testing.T) {
	e := engine(&stubStore{err: errors.New("connection refused")}, &stubWeather{})

	_, err := e.Generate(testNow, testNow.AddDate(0, 0, 1), true)
	var fe *models.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	if fe.Source != "daily_revenue" {
		t.Errorf("Expected daily_revenue source, got %s", fe.Source)
	}
}

func TestGenerateFutureWeeks_ModeSchedule(t *testing.T) {
	store := &stubStore{records: weeklyRecords(testNow, 4, 1000, 500, "")}
	e := engine(store, &stubWeather{})

	weeks, err := e.GenerateFutureWeeks(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(weeks) != 4 {
		t.Fatalf("Expected current week + 3 future weeks, got %d", len(weeks))
	}

	// live weather for current and first future week only
	wantAverages := []bool{false, false, true, true}
	for i, w := range weeks {
		if w.AveragesOnly != wantAverages[i] {
			t.Errorf("Week %d: expected averages_only=%v, got %v", i, wantAverages[i], w.AveragesOnly)
		}
		if len(w.Days) != 7 {
			t.Errorf("Week %d: expected 7 days, got %d", i, len(w.Days))
		}
		start, _ := time.Parse(weather.DateLayout, w.WeekStart)
		if start.Weekday() != time.Monday {
			t.Errorf("Week %d: expected Monday start, got %s", i, start.Weekday())
		}
	}
}

func TestWeekStart(t *testing.T) {
	// Walk a full week and confirm every day maps to the same Monday
	monday := WeekStart(testNow)
	if monday.Weekday() != time.Monday {
		t.Fatalf("Expected Monday, got %s", monday.Weekday())
	}
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if !WeekStart(d).Equal(monday) {
			t.Errorf("Day %d of week mapped to %s, expected %s", i, WeekStart(d), monday)
		}
	}
}

func TestBuildWeatherImpact_Buckets(t *testing.T) {
	target := testNow.AddDate(0, 0, 1)
	records := append(
		weeklyRecords(target, 2, 1200, 600, "Sunny"),
		weeklyRecords(target.AddDate(0, 0, -14), 2, 800, 400, "Heavy rain")...,
	)

	impact := BuildWeatherImpact(records)
	day := models.DayOfWeekFromTime(target)

	sunny := impact[day][weather.ConditionSunny]
	if sunny.Count != 2 || sunny.AverageFoodRevenue != 1200 {
		t.Errorf("Expected sunny bucket {1200, 2}, got %+v", sunny)
	}
	rain := impact[day][weather.ConditionHeavyRain]
	if rain.Count != 2 || rain.AverageFoodRevenue != 800 {
		t.Errorf("Expected heavy rain bucket {800, 2}, got %+v", rain)
	}
}
