package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/weather"
	"gorm.io/gorm"
)

// DefaultLocation is used when a request names no location
const DefaultLocation = "main"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Weather weather.Provider
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) location(c *gin.Context) string {
	if loc := c.Query("location_id"); loc != "" {
		return loc
	}
	return DefaultLocation
}

// respondError maps the error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}
	if errors.Is(err, models.ErrConfirmationRequired) {
		c.JSON(http.StatusConflict, gin.H{"error": "confirmation required: retry with confirm=true"})
		return
	}
	var fe *models.FetchError
	if errors.As(err, &fe) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fe.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ListJobRoles returns the roles for a location
func (h *Handler) ListJobRoles(c *gin.Context) {
	var roles []models.JobRole
	if err := h.DB.Where("location_id = ?", h.location(c)).Order("name").Find(&roles).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// CreateJobRole creates a role
func (h *Handler) CreateJobRole(c *gin.Context) {
	var role models.JobRole
	if err := c.ShouldBindJSON(&role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if role.Name == "" {
		respondError(c, models.Invalid("name", "name is required"))
		return
	}
	if role.ID == "" {
		role.ID = newID()
	}
	if role.LocationID == "" {
		role.LocationID = h.location(c)
	}
	if err := h.DB.Create(&role).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// ListEmployees returns the staff pool for a location
func (h *Handler) ListEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := h.DB.Where("location_id = ?", h.location(c)).Order("name").Find(&employees).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// CreateEmployee adds a staff member
func (h *Handler) CreateEmployee(c *gin.Context) {
	var e models.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if e.Name == "" {
		respondError(c, models.Invalid("name", "name is required"))
		return
	}
	if e.MaxWeeklyHours <= 0 {
		respondError(c, models.Invalid("max_weekly_hours", "must be positive, got %.1f", e.MaxWeeklyHours))
		return
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.LocationID == "" {
		e.LocationID = h.location(c)
	}
	if err := h.DB.Create(&e).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
