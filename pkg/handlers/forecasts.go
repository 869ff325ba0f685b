package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tomharber/rota-api-go/pkg/database"
	"github.com/tomharber/rota-api-go/pkg/forecast"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/rota"
	"github.com/tomharber/rota-api-go/pkg/weather"
	"gorm.io/gorm/clause"
)

func (h *Handler) engine(locationID string) *forecast.Engine {
	return &forecast.Engine{
		History:    &database.Store{DB: h.DB},
		Weather:    h.Weather,
		LocationID: locationID,
		Now:        h.now,
	}
}

// GetForecast generates a per-day revenue forecast for [start, end]
func (h *Handler) GetForecast(c *gin.Context) {
	start, err := time.Parse(weather.DateLayout, c.Query("start"))
	if err != nil {
		respondError(c, models.Invalid("start", "must be YYYY-MM-DD, got %q", c.Query("start")))
		return
	}
	end, err := time.Parse(weather.DateLayout, c.Query("end"))
	if err != nil {
		respondError(c, models.Invalid("end", "must be YYYY-MM-DD, got %q", c.Query("end")))
		return
	}
	if end.Before(start) {
		respondError(c, models.Invalid("end", "end date is before start date"))
		return
	}

	averagesOnly := c.Query("averages_only") == "true"
	days, err := h.engine(h.location(c)).Generate(start, end, averagesOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": days, "averages_only": averagesOnly})
}

// GetFutureWeeks projects the current week plus a number of future weeks
func (h *Handler) GetFutureWeeks(c *gin.Context) {
	weeks := -1
	if v := c.Query("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(c, models.Invalid("weeks", "must be a non-negative integer, got %q", v))
			return
		}
		weeks = n
	} else if v := os.Getenv("FORECAST_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			weeks = n
		}
	}

	out, err := h.engine(h.location(c)).GenerateFutureWeeks(weeks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": out})
}

// GenerateRota builds a staffed week rota from the active shift rules,
// role mappings, staff pool, and the week's revenue forecast
func (h *Handler) GenerateRota(c *gin.Context) {
	locationID := h.location(c)

	weekStart := forecast.WeekStart(h.now())
	if v := c.Query("week_start"); v != "" {
		parsed, err := time.Parse(weather.DateLayout, v)
		if err != nil {
			respondError(c, models.Invalid("week_start", "must be YYYY-MM-DD, got %q", v))
			return
		}
		weekStart = forecast.WeekStart(parsed)
	}

	var rules []models.ShiftRule
	if err := h.DB.Where("location_id = ? AND archived = ?", locationID, false).Find(&rules).Error; err != nil {
		respondError(c, err)
		return
	}
	var mappings []models.JobRoleMapping
	if err := h.DB.Where("location_id = ?", locationID).Find(&mappings).Error; err != nil {
		respondError(c, err)
		return
	}
	var employees []models.Employee
	if err := h.DB.Where("location_id = ?", locationID).Find(&employees).Error; err != nil {
		respondError(c, err)
		return
	}

	averagesOnly := weekStart.After(h.now().AddDate(0, 0, weather.HorizonDays))
	days, err := h.engine(locationID).Generate(weekStart, weekStart.AddDate(0, 0, 6), averagesOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	result := rota.Generate(rules, mappings, employees, weekStart, days)
	c.JSON(http.StatusOK, result)
}

// ListTags returns every revenue tag
func (h *Handler) ListTags(c *gin.Context) {
	var tags []models.RevenueTag
	if err := h.DB.Order("name").Find(&tags).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag creates a revenue tag
func (h *Handler) CreateTag(c *gin.Context) {
	var t models.RevenueTag
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.Name == "" {
		respondError(c, models.Invalid("name", "name is required"))
		return
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if err := h.DB.Create(&t).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// DeleteTag removes a tag; its tagged dates go with it
func (h *Handler) DeleteTag(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&models.TaggedDate{}, "tag_id = ?", id).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Delete(&models.RevenueTag{}, "id = ?", id).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}

// ListTaggedDates returns tag bindings, optionally for a date range
func (h *Handler) ListTaggedDates(c *gin.Context) {
	q := h.DB.Order("date")
	if start := c.Query("start"); start != "" {
		q = q.Where("date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("date <= ?", end)
	}
	var tagged []models.TaggedDate
	if err := q.Find(&tagged).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tagged_dates": tagged})
}

// CreateTaggedDate binds a tag to a calendar date
func (h *Handler) CreateTaggedDate(c *gin.Context) {
	var td models.TaggedDate
	if err := c.ShouldBindJSON(&td); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse(weather.DateLayout, td.Date); err != nil {
		respondError(c, models.Invalid("date", "must be YYYY-MM-DD, got %q", td.Date))
		return
	}
	var count int64
	h.DB.Model(&models.RevenueTag{}).Where("id = ?", td.TagID).Count(&count)
	if count == 0 {
		respondError(c, models.Invalid("tag_id", "tag %q does not exist", td.TagID))
		return
	}
	if td.ID == "" {
		td.ID = newID()
	}
	if err := h.DB.Create(&td).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, td)
}

// DeleteTaggedDate removes one tag binding
func (h *Handler) DeleteTaggedDate(c *gin.Context) {
	if err := h.DB.Delete(&models.TaggedDate{}, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tagged date deleted"})
}

// RecordDailyRevenue upserts one historical trading day. A single-query
// upsert on (location, date) works on both Postgres and SQLite.
func (h *Handler) RecordDailyRevenue(c *gin.Context) {
	var r models.DailyRevenue
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse(weather.DateLayout, r.Date); err != nil {
		respondError(c, models.Invalid("date", "must be YYYY-MM-DD, got %q", r.Date))
		return
	}
	if r.FoodRevenue < 0 || r.BeverageRevenue < 0 {
		respondError(c, models.Invalid("food_revenue", "revenue cannot be negative"))
		return
	}
	if r.ID == "" {
		r.ID = newID()
	}
	if r.LocationID == "" {
		r.LocationID = h.location(c)
	}

	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"food_revenue":        r.FoodRevenue,
			"beverage_revenue":    r.BeverageRevenue,
			"weather_description": r.WeatherDescription,
		}),
	}).Create(&r).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListDailyRevenue returns historical trading days for a range
func (h *Handler) ListDailyRevenue(c *gin.Context) {
	q := h.DB.Where("location_id = ?", h.location(c)).Order("date")
	if start := c.Query("start"); start != "" {
		q = q.Where("date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("date <= ?", end)
	}
	var records []models.DailyRevenue
	if err := q.Find(&records).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
