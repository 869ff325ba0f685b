package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/staffing"
)

// ListThresholds returns a location's staffing thresholds, optionally
// narrowed by day and segment, ordered by band start
func (h *Handler) ListThresholds(c *gin.Context) {
	q := h.DB.Where("location_id = ?", h.location(c))
	if day := c.Query("day"); day != "" {
		q = q.Where("day_of_week = ?", day)
	}
	if segment := c.Query("segment"); segment != "" {
		q = q.Where("segment = ?", segment)
	}

	var thresholds []models.RevenueThreshold
	if err := q.Order("revenue_min").Find(&thresholds).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thresholds": thresholds})
}

// CreateThreshold validates and persists a new threshold
func (h *Handler) CreateThreshold(c *gin.Context) {
	var t models.RevenueThreshold
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if t.LocationID == "" {
		t.LocationID = h.location(c)
	}
	if err := staffing.Validate(&t); err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Create(&t).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateThreshold replaces an existing threshold after validation
func (h *Handler) UpdateThreshold(c *gin.Context) {
	id := c.Param("id")

	var existing models.RevenueThreshold
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "threshold not found"})
		return
	}

	var t models.RevenueThreshold
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	if t.LocationID == "" {
		t.LocationID = existing.LocationID
	}
	if err := staffing.Validate(&t); err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Save(&t).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteThreshold removes a threshold
func (h *Handler) DeleteThreshold(c *gin.Context) {
	if err := h.DB.Delete(&models.RevenueThreshold{}, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "threshold deleted"})
}

// DuplicateThreshold persists a copy of an existing threshold
func (h *Handler) DuplicateThreshold(c *gin.Context) {
	var existing models.RevenueThreshold
	if err := h.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "threshold not found"})
		return
	}

	copies := staffing.Duplicate([]models.RevenueThreshold{existing}, existing.ID, newID())
	cp := copies[len(copies)-1]
	if err := h.DB.Create(&cp).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}

// LookupStaffing resolves the staffing requirement for a revenue level.
// A coverage gap is a 200 with found=false, never an error and never
// zero staff.
func (h *Handler) LookupStaffing(c *gin.Context) {
	revenue, err := strconv.ParseFloat(c.Query("revenue"), 64)
	if err != nil {
		respondError(c, models.Invalid("revenue", "must be a number, got %q", c.Query("revenue")))
		return
	}
	day := models.DayOfWeek(c.Query("day"))
	if !models.ValidDayOfWeek(day) {
		respondError(c, models.Invalid("day", "unknown day %q", c.Query("day")))
		return
	}
	segment := models.Segment(c.Query("segment"))
	if !models.ValidSegment(segment) {
		respondError(c, models.Invalid("segment", "unknown segment %q", c.Query("segment")))
		return
	}

	var thresholds []models.RevenueThreshold
	if err := h.DB.Where("location_id = ?", h.location(c)).Find(&thresholds).Error; err != nil {
		respondError(c, err)
		return
	}

	req := staffing.Lookup(thresholds, revenue, day, segment)
	if req == nil {
		c.JSON(http.StatusOK, gin.H{"found": false, "message": "no staffing guidance configured for this revenue level"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "requirement": req})
}
