package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/rolemap"
)

// ListRoleMappings returns a role's job-title mappings in priority order
func (h *Handler) ListRoleMappings(c *gin.Context) {
	var mappings []models.JobRoleMapping
	err := h.DB.
		Where("location_id = ? AND job_role_id = ?", h.location(c), c.Param("roleId")).
		Order("priority").
		Find(&mappings).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": mappings})
}

// AddRoleMapping appends a job title at the end of a role's priority order
func (h *Handler) AddRoleMapping(c *gin.Context) {
	var req struct {
		JobTitle string `json:"job_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.JobTitle == "" {
		respondError(c, models.Invalid("job_title", "job title is required"))
		return
	}

	locationID := h.location(c)
	roleID := c.Param("roleId")

	var existing []models.JobRoleMapping
	if err := h.DB.Where("location_id = ? AND job_role_id = ?", locationID, roleID).Find(&existing).Error; err != nil {
		respondError(c, err)
		return
	}

	m := rolemap.Append(existing, newID(), locationID, roleID, req.JobTitle)
	if err := h.DB.Create(&m).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DeleteRoleMapping removes one mapping. Remaining priorities are left
// with a gap; the next reorder renumbers the group.
func (h *Handler) DeleteRoleMapping(c *gin.Context) {
	if err := h.DB.Delete(&models.JobRoleMapping{}, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mapping deleted"})
}

// ReorderRoleMappings moves one entry within a role's priority order and
// renumbers the whole group. The renumbered rows persist concurrently;
// on partial failure the client refetches to resync rather than relying
// on a rollback.
func (h *Handler) ReorderRoleMappings(c *gin.Context) {
	var req struct {
		FromIndex int `json:"from_index"`
		ToIndex   int `json:"to_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locationID := h.location(c)
	roleID := c.Param("roleId")

	var mappings []models.JobRoleMapping
	if err := h.DB.Where("location_id = ? AND job_role_id = ?", locationID, roleID).Find(&mappings).Error; err != nil {
		respondError(c, err)
		return
	}

	reordered, err := rolemap.Reorder(mappings, roleID, req.FromIndex, req.ToIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	group := rolemap.Group(reordered, roleID)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		writeErr error
	)
	for i := range group {
		wg.Add(1)
		go func(m models.JobRoleMapping) {
			defer wg.Done()
			if err := h.DB.Model(&models.JobRoleMapping{}).Where("id = ?", m.ID).Update("priority", m.Priority).Error; err != nil {
				mu.Lock()
				if writeErr == nil {
					writeErr = err
				}
				mu.Unlock()
			}
		}(group[i])
	}
	wg.Wait()

	if writeErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "some priorities failed to persist; refetch to resync",
			"details": writeErr.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": group})
}
