package models

import "time"

// DayOfWeek is a lowercase weekday name, Monday-start week
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// WeekDays lists all days in Monday-start order
var WeekDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOfWeekFromTime converts a time.Time to its DayOfWeek name
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ValidDayOfWeek reports whether s is one of the seven weekday names
func ValidDayOfWeek(s DayOfWeek) bool {
	for _, d := range WeekDays {
		if s == d {
			return true
		}
	}
	return false
}

// Segment classifies a shift window
type Segment string

const (
	SegmentDay     Segment = "day"
	SegmentEvening Segment = "evening"
)

// ValidSegment reports whether s is a known shift segment
func ValidSegment(s Segment) bool {
	return s == SegmentDay || s == SegmentEvening
}

// RevenueThreshold is a staffing requirement for one
// (location, day-of-week, segment, revenue band)
type RevenueThreshold struct {
	ID                   string    `gorm:"primaryKey" json:"id"`
	LocationID           string    `gorm:"index;not null" json:"location_id"`
	Name                 string    `json:"name"`
	DayOfWeek            DayOfWeek `gorm:"index;not null" json:"day_of_week"`
	Segment              Segment   `gorm:"index;not null" json:"segment"`
	RevenueMin           float64   `json:"revenue_min"`
	RevenueMax           float64   `json:"revenue_max"`
	FohMinStaff          int       `json:"foh_min_staff"`
	FohMaxStaff          int       `json:"foh_max_staff"`
	KitchenMinStaff      int       `json:"kitchen_min_staff"`
	KitchenMaxStaff      int       `json:"kitchen_max_staff"`
	KpMinStaff           int       `json:"kp_min_staff"`
	KpMaxStaff           int       `json:"kp_max_staff"`
	TargetCostPercentage float64   `json:"target_cost_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// StaffingRequirement is the result of a threshold band lookup
type StaffingRequirement struct {
	ThresholdID          string  `json:"threshold_id"`
	Name                 string  `json:"name"`
	FohMinStaff          int     `json:"foh_min_staff"`
	FohMaxStaff          int     `json:"foh_max_staff"`
	KitchenMinStaff      int     `json:"kitchen_min_staff"`
	KitchenMaxStaff      int     `json:"kitchen_max_staff"`
	KpMinStaff           int     `json:"kp_min_staff"`
	KpMaxStaff           int     `json:"kp_max_staff"`
	TargetCostPercentage float64 `json:"target_cost_percentage"`
}

// JobRole is a schedulable role family (e.g. "Bartender") at a location
type JobRole struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	LocationID string    `gorm:"index;not null" json:"location_id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShiftRule is a recurring staffing slot definition
type ShiftRule struct {
	ID                  string    `gorm:"primaryKey" json:"id"`
	LocationID          string    `gorm:"index;not null" json:"location_id"`
	JobRoleID           string    `gorm:"index;not null" json:"job_role_id"`
	DayOfWeek           DayOfWeek `gorm:"index;not null" json:"day_of_week"`
	StartTime           string    `gorm:"not null" json:"start_time"` // HH:MM
	EndTime             string    `gorm:"not null" json:"end_time"`   // HH:MM
	MinStaff            int       `json:"min_staff"`
	MaxStaff            int       `json:"max_staff"`
	Priority            int       `json:"priority"` // 1 (highest) to 5
	RevenueToStaffRatio *float64  `json:"revenue_to_staff_ratio,omitempty"`
	Archived            bool      `gorm:"index;default:false" json:"archived"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// JobRoleMapping ranks an acceptable job title for a role, per location.
// Priority is a 1-based rank, dense within a (location, role) group after
// any reorder.
type JobRoleMapping struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	LocationID string    `gorm:"index;not null" json:"location_id"`
	JobRoleID  string    `gorm:"index;not null" json:"job_role_id"`
	JobTitle   string    `gorm:"not null" json:"job_title"`
	Priority   int       `gorm:"not null" json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}

// Employee is a staff member available for rota generation
type Employee struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	LocationID     string    `gorm:"index;not null" json:"location_id"`
	Name           string    `gorm:"not null" json:"name"`
	JobTitle       string    `gorm:"not null" json:"job_title"`
	MaxWeeklyHours float64   `json:"max_weekly_hours"`
	CreatedAt      time.Time `json:"created_at"`
}

// RevenueTag is a reusable event label carrying observed revenue deltas
// (percentages, e.g. 25 means +25%)
type RevenueTag struct {
	ID                              string    `gorm:"primaryKey" json:"id"`
	Name                            string    `gorm:"not null" json:"name"`
	HistoricalFoodRevenueImpact     float64   `json:"historical_food_revenue_impact"`
	HistoricalBeverageRevenueImpact float64   `json:"historical_beverage_revenue_impact"`
	OccurrenceCount                 int       `json:"occurrence_count"`
	CreatedAt                       time.Time `json:"created_at"`
}

// TaggedDate binds a RevenueTag to a calendar date. Manual impact values,
// when set, take precedence over the tag's historical deltas.
type TaggedDate struct {
	ID                          string   `gorm:"primaryKey" json:"id"`
	TagID                       string   `gorm:"index;not null" json:"tag_id"`
	Date                        string   `gorm:"index;not null" json:"date"` // YYYY-MM-DD
	ManualFoodRevenueImpact     *float64 `json:"manual_food_revenue_impact,omitempty"`
	ManualBeverageRevenueImpact *float64 `json:"manual_beverage_revenue_impact,omitempty"`
}

// DailyRevenue is one historical trading day, the raw material for
// baselines and weather correlation
type DailyRevenue struct {
	ID                 string  `gorm:"primaryKey" json:"id"`
	LocationID         string  `gorm:"uniqueIndex:idx_location_date;not null" json:"location_id"`
	Date               string  `gorm:"uniqueIndex:idx_location_date;not null" json:"date"` // YYYY-MM-DD
	FoodRevenue        float64 `json:"food_revenue"`
	BeverageRevenue    float64 `json:"beverage_revenue"`
	WeatherDescription string  `json:"weather_description"`
}

// WeatherForecast is derived weather for one date, never persisted.
// Description is "N/A" for dates beyond the provider's forecast horizon.
type WeatherForecast struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Description   string  `json:"description"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
}

// DayOfWeekBaseline is the unadjusted historical average revenue for a weekday
type DayOfWeekBaseline struct {
	AvgFoodRevenue float64 `json:"avg_food_revenue"`
	AvgBevRevenue  float64 `json:"avg_bev_revenue"`
	Count          int     `json:"count"`
}

// WeatherImpactEntry is the average revenue observed for one
// (weekday, general condition) bucket
type WeatherImpactEntry struct {
	AverageFoodRevenue float64 `json:"average_food_revenue"`
	AverageBevRevenue  float64 `json:"average_bev_revenue"`
	Count              int     `json:"count"`
}

// WeatherImpact maps weekday -> general condition -> averaged revenue
type WeatherImpact map[DayOfWeek]map[string]WeatherImpactEntry

// RevenueForecast is the per-day forecast output
type RevenueForecast struct {
	Date               string    `json:"date"` // YYYY-MM-DD
	DayOfWeek          DayOfWeek `json:"day_of_week"`
	FoodRevenue        float64   `json:"food_revenue"`
	BeverageRevenue    float64   `json:"beverage_revenue"`
	TotalRevenue       float64   `json:"total_revenue"`
	WeatherDescription string    `json:"weather_description"`
	Temperature        float64   `json:"temperature"`
	Precipitation      float64   `json:"precipitation"`
	WindSpeed          float64   `json:"wind_speed"`
	Confidence         int       `json:"confidence"` // 0-100 heuristic, not a CI
}
