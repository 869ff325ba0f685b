package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/shiftrules"
)

func (h *Handler) roleExists(locationID string) func(id string) bool {
	return func(id string) bool {
		var count int64
		h.DB.Model(&models.JobRole{}).Where("id = ? AND location_id = ?", id, locationID).Count(&count)
		return count > 0
	}
}

// ListShiftRules returns a location's rules split into active and
// archived, both filterable by day ("all" or empty passes everything)
func (h *Handler) ListShiftRules(c *gin.Context) {
	var rules []models.ShiftRule
	if err := h.DB.Where("location_id = ?", h.location(c)).Order("day_of_week, start_time").Find(&rules).Error; err != nil {
		respondError(c, err)
		return
	}

	day := c.Query("day")
	c.JSON(http.StatusOK, gin.H{
		"active":   shiftrules.Active(rules, day),
		"archived": shiftrules.Archived(rules, day),
	})
}

// CreateShiftRule validates and persists a new rule
func (h *Handler) CreateShiftRule(c *gin.Context) {
	var r models.ShiftRule
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.ID == "" {
		r.ID = newID()
	}
	if r.LocationID == "" {
		r.LocationID = h.location(c)
	}
	if err := shiftrules.Validate(&r, h.roleExists(r.LocationID)); err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Create(&r).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// UpdateShiftRule replaces an existing rule after validation
func (h *Handler) UpdateShiftRule(c *gin.Context) {
	id := c.Param("id")

	var existing models.ShiftRule
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift rule not found"})
		return
	}

	var r models.ShiftRule
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r.ID = id
	if r.LocationID == "" {
		r.LocationID = existing.LocationID
	}
	r.Archived = existing.Archived
	if err := shiftrules.Validate(&r, h.roleExists(r.LocationID)); err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Save(&r).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ArchiveShiftRule soft-deletes a rule; it disappears from the active
// view but stays restorable
func (h *Handler) ArchiveShiftRule(c *gin.Context) {
	h.setArchived(c, true)
}

// RestoreShiftRule brings an archived rule back into the active view
func (h *Handler) RestoreShiftRule(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	id := c.Param("id")
	result := h.DB.Model(&models.ShiftRule{}).Where("id = ?", id).Update("archived", archived)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift rule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "archived": archived})
}

// DeleteShiftRule hard-deletes a rule. The delete is terminal, so it is
// rejected unless the caller passes confirm=true.
func (h *Handler) DeleteShiftRule(c *gin.Context) {
	if err := shiftrules.CheckDelete(c.Query("confirm") == "true"); err != nil {
		respondError(c, err)
		return
	}
	if err := h.DB.Delete(&models.ShiftRule{}, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shift rule deleted"})
}
