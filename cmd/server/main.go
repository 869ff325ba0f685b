package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tomharber/rota-api-go/pkg/database"
	"github.com/tomharber/rota-api-go/pkg/handlers"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

// Default site coordinates (central London) used when none are configured
const (
	defaultLatitude  = 51.5072
	defaultLongitude = -0.1276
)

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	h := &handlers.Handler{
		DB:      db,
		Weather: weather.NewClient(envFloat("SITE_LAT", defaultLatitude), envFloat("SITE_LON", defaultLongitude)),
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Rota Engine API",
			"version": "1.2.0",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/roles", h.ListJobRoles)
		api.POST("/roles", h.CreateJobRole)
		api.GET("/roles/:roleId/mappings", h.ListRoleMappings)
		api.POST("/roles/:roleId/mappings", h.AddRoleMapping)
		api.POST("/roles/:roleId/mappings/reorder", h.ReorderRoleMappings)
		api.DELETE("/mappings/:id", h.DeleteRoleMapping)

		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.CreateEmployee)

		api.GET("/thresholds", h.ListThresholds)
		api.POST("/thresholds", h.CreateThreshold)
		api.PUT("/thresholds/:id", h.UpdateThreshold)
		api.DELETE("/thresholds/:id", h.DeleteThreshold)
		api.POST("/thresholds/:id/duplicate", h.DuplicateThreshold)
		api.GET("/thresholds/lookup", h.LookupStaffing)

		api.GET("/shift-rules", h.ListShiftRules)
		api.POST("/shift-rules", h.CreateShiftRule)
		api.PUT("/shift-rules/:id", h.UpdateShiftRule)
		api.POST("/shift-rules/:id/archive", h.ArchiveShiftRule)
		api.POST("/shift-rules/:id/restore", h.RestoreShiftRule)
		api.DELETE("/shift-rules/:id", h.DeleteShiftRule)

		api.GET("/tags", h.ListTags)
		api.POST("/tags", h.CreateTag)
		api.DELETE("/tags/:id", h.DeleteTag)
		api.GET("/tagged-dates", h.ListTaggedDates)
		api.POST("/tagged-dates", h.CreateTaggedDate)
		api.DELETE("/tagged-dates/:id", h.DeleteTaggedDate)

		api.GET("/revenue/history", h.ListDailyRevenue)
		api.POST("/revenue/history", h.RecordDailyRevenue)

		api.GET("/forecast", h.GetForecast)
		api.GET("/forecast/weeks", h.GetFutureWeeks)
		api.GET("/rota/generate", h.GenerateRota)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
