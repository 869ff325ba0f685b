package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/joho/godotenv"
	"github.com/tomharber/rota-api-go/pkg/database"
	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

// Seeds a demo location with roles, staff, thresholds, shift rules, tags
// and three months of plausible trading history so the forecast and rota
// endpoints have something to work with out of the box.
func main() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	db := database.InitDB()
	f := faker.New()
	r := rand.New(rand.NewSource(42))
	location := "main"

	roles := map[string]string{
		"Bar":     uuid.NewString(),
		"Kitchen": uuid.NewString(),
		"Floor":   uuid.NewString(),
	}
	for name, id := range roles {
		db.Create(&models.JobRole{ID: id, LocationID: location, Name: name})
	}

	titlesByRole := map[string][]string{
		"Bar":     {"Head Bartender", "Bartender", "Barback"},
		"Kitchen": {"Head Chef", "Sous Chef", "Line Cook", "Kitchen Porter"},
		"Floor":   {"Supervisor", "Server", "Host"},
	}
	for roleName, titles := range titlesByRole {
		for i, title := range titles {
			db.Create(&models.JobRoleMapping{
				ID:         uuid.NewString(),
				LocationID: location,
				JobRoleID:  roles[roleName],
				JobTitle:   title,
				Priority:   i + 1,
			})
		}
	}

	// Staff pool: a few of every title
	for _, titles := range titlesByRole {
		for _, title := range titles {
			for i := 0; i < 2+r.Intn(2); i++ {
				db.Create(&models.Employee{
					ID:             uuid.NewString(),
					LocationID:     location,
					Name:           f.Person().Name(),
					JobTitle:       title,
					MaxWeeklyHours: []float64{24, 32, 40}[r.Intn(3)],
				})
			}
		}
	}

	// Revenue-banded staffing thresholds, one quiet and one busy band
	// per (day, segment)
	for _, day := range models.WeekDays {
		for _, segment := range []models.Segment{models.SegmentDay, models.SegmentEvening} {
			db.Create(&models.RevenueThreshold{
				ID: uuid.NewString(), LocationID: location,
				Name: string(day) + " " + string(segment) + " quiet", DayOfWeek: day, Segment: segment,
				RevenueMin: 0, RevenueMax: 2500,
				FohMinStaff: 2, FohMaxStaff: 3, KitchenMinStaff: 1, KitchenMaxStaff: 2,
				KpMinStaff: 0, KpMaxStaff: 1, TargetCostPercentage: 32,
			})
			db.Create(&models.RevenueThreshold{
				ID: uuid.NewString(), LocationID: location,
				Name: string(day) + " " + string(segment) + " busy", DayOfWeek: day, Segment: segment,
				RevenueMin: 2500, RevenueMax: 8000,
				FohMinStaff: 4, FohMaxStaff: 6, KitchenMinStaff: 2, KitchenMaxStaff: 4,
				KpMinStaff: 1, KpMaxStaff: 2, TargetCostPercentage: 28,
			})
		}
	}

	// Recurring shifts: day and evening cover for each role, every day
	ratio := 900.0
	for _, day := range models.WeekDays {
		for _, roleID := range roles {
			db.Create(&models.ShiftRule{
				ID: uuid.NewString(), LocationID: location, JobRoleID: roleID,
				DayOfWeek: day, StartTime: "10:00", EndTime: "17:00",
				MinStaff: 1, MaxStaff: 3, Priority: 2,
			})
			db.Create(&models.ShiftRule{
				ID: uuid.NewString(), LocationID: location, JobRoleID: roleID,
				DayOfWeek: day, StartTime: "17:00", EndTime: "23:30",
				MinStaff: 2, MaxStaff: 4, Priority: 1,
				RevenueToStaffRatio: &ratio,
			})
		}
	}

	bankHoliday := models.RevenueTag{
		ID: uuid.NewString(), Name: "Bank Holiday",
		HistoricalFoodRevenueImpact: 22, HistoricalBeverageRevenueImpact: 35, OccurrenceCount: 6,
	}
	matchDay := models.RevenueTag{
		ID: uuid.NewString(), Name: "Match Day",
		HistoricalFoodRevenueImpact: 8, HistoricalBeverageRevenueImpact: 45, OccurrenceCount: 4,
	}
	db.Create(&bankHoliday)
	db.Create(&matchDay)
	db.Create(&models.TaggedDate{
		ID: uuid.NewString(), TagID: matchDay.ID,
		Date: time.Now().AddDate(0, 0, 5).Format(weather.DateLayout),
	})

	// Three months of history. Weekends trade harder; weather reuses the
	// deterministic fallback generator so descriptions stay stable.
	days := 0
	for i := 1; i <= 92; i++ {
		d := time.Now().AddDate(0, 0, -i)
		wf := weather.Fallback(d.Format(weather.DateLayout))

		food := 1200 + r.Float64()*800
		bev := 500 + r.Float64()*500
		switch d.Weekday() {
		case time.Friday, time.Saturday:
			food *= 1.8
			bev *= 2.2
		case time.Sunday:
			food *= 1.5
			bev *= 1.3
		}

		db.Create(&models.DailyRevenue{
			ID:                 uuid.NewString(),
			LocationID:         location,
			Date:               d.Format(weather.DateLayout),
			FoodRevenue:        food,
			BeverageRevenue:    bev,
			WeatherDescription: wf.Description,
		})
		days++
	}

	log.Printf("Seeded location %q: %d roles, %d days of history", location, len(roles), days)
}
