package rota

import (
	"testing"
	"time"

	"github.com/tomharber/rota-api-go/pkg/models"
)

var weekStart = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC) // a Monday

func shiftRule(id string, day models.DayOfWeek, start, end string, min, max int) models.ShiftRule {
	return models.ShiftRule{
		ID:        id,
		JobRoleID: "bar",
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		MinStaff:  min,
		MaxStaff:  max,
		Priority:  3,
	}
}

func employee(id, title string, maxHours float64) models.Employee {
	return models.Employee{ID: id, Name: id, JobTitle: title, MaxWeeklyHours: maxHours}
}

func barMappings() []models.JobRoleMapping {
	return []models.JobRoleMapping{
		{ID: "m1", JobRoleID: "bar", JobTitle: "Head Bartender", Priority: 1},
		{ID: "m2", JobRoleID: "bar", JobTitle: "Bartender", Priority: 2},
	}
}

func TestGenerate_AssignsMappedStaff(t *testing.T) {
	rules := []models.ShiftRule{shiftRule("s1", models.Monday, "09:00", "17:00", 1, 2)}
	employees := []models.Employee{employee("e1", "Bartender", 40)}

	result := Generate(rules, barMappings(), employees, weekStart, nil)

	if len(result.Slots) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(result.Slots))
	}
	slot := result.Slots[0]
	if slot.Date != "2024-09-02" {
		t.Errorf("Expected Monday slot dated 2024-09-02, got %s", slot.Date)
	}
	if len(slot.Assigned) != 1 || slot.Assigned[0] != "e1" {
		t.Errorf("Expected e1 assigned, got %v", slot.Assigned)
	}
	if result.Hours["e1"] != 8.0 {
		t.Errorf("Expected 8 assigned hours, got %f", result.Hours["e1"])
	}
}

func TestGenerate_PrefersMappingPriority(t *testing.T) {
	rules := []models.ShiftRule{shiftRule("s1", models.Monday, "09:00", "17:00", 1, 1)}
	employees := []models.Employee{
		employee("junior", "Bartender", 40),      // rank 2
		employee("senior", "Head Bartender", 40), // rank 1
	}

	result := Generate(rules, barMappings(), employees, weekStart, nil)

	if got := result.Slots[0].Assigned; len(got) != 1 || got[0] != "senior" {
		t.Errorf("Expected highest-ranked title to be preferred, got %v", got)
	}
}

func TestGenerate_UnmappedTitleConflict(t *testing.T) {
	rules := []models.ShiftRule{shiftRule("s1", models.Monday, "09:00", "17:00", 1, 1)}
	employees := []models.Employee{employee("e1", "Chef", 40)}

	result := Generate(rules, barMappings(), employees, weekStart, nil)

	if len(result.Slots[0].Assigned) != 0 {
		t.Errorf("Expected no assignment for unmapped title, got %v", result.Slots[0].Assigned)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(result.Conflicts))
	}
}

func TestGenerate_OverlapBlocksDoubleBooking(t *testing.T) {
	rules := []models.ShiftRule{
		shiftRule("s1", models.Monday, "09:00", "17:00", 1, 1),
		shiftRule("s2", models.Monday, "12:00", "20:00", 1, 1),
	}
	employees := []models.Employee{employee("e1", "Bartender", 40)}

	result := Generate(rules, barMappings(), employees, weekStart, nil)

	assigned := 0
	for _, s := range result.Slots {
		assigned += len(s.Assigned)
	}
	if assigned != 1 {
		t.Errorf("Expected only 1 slot staffed due to overlap, got %d assignments", assigned)
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("Expected a conflict for the unfillable overlapping slot, got %d", len(result.Conflicts))
	}
}

func TestGenerate_RespectsMaxWeeklyHours(t *testing.T) {
	rules := []models.ShiftRule{
		shiftRule("s1", models.Monday, "09:00", "17:00", 1, 1),
		shiftRule("s2", models.Tuesday, "09:00", "17:00", 1, 1),
	}
	employees := []models.Employee{employee("e1", "Bartender", 10)}

	result := Generate(rules, barMappings(), employees, weekStart, nil)

	assigned := 0
	for _, s := range result.Slots {
		assigned += len(s.Assigned)
	}
	if assigned != 1 {
		t.Errorf("Expected a 10-hour employee to take only one 8-hour shift, got %d", assigned)
	}
}

func TestGenerate_SkipsArchivedRules(t *testing.T) {
	archived := shiftRule("s1", models.Monday, "09:00", "17:00", 1, 1)
	archived.Archived = true

	result := Generate([]models.ShiftRule{archived}, barMappings(), nil, weekStart, nil)
	if len(result.Slots) != 0 {
		t.Errorf("Expected archived rules to produce no slots, got %d", len(result.Slots))
	}
}

func TestExpandRules_RevenueRatioWidening(t *testing.T) {
	ratio := 1000.0
	rule := shiftRule("s1", models.Monday, "09:00", "17:00", 1, 4)
	rule.RevenueToStaffRatio = &ratio

	forecastDays := []models.RevenueForecast{
		{Date: "2024-09-02", TotalRevenue: 3500},
	}

	g := NewGenerator(nil)
	g.ExpandRules([]models.ShiftRule{rule}, weekStart, forecastDays)

	if len(g.Slots) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(g.Slots))
	}
	// ceil(3500/1000) = 4, within [1,4]
	if g.Slots[0].Required != 4 {
		t.Errorf("Expected 4 required staff from revenue ratio, got %d", g.Slots[0].Required)
	}
}

func TestExpandRules_RatioClampedToMax(t *testing.T) {
	ratio := 100.0
	rule := shiftRule("s1", models.Monday, "09:00", "17:00", 1, 3)
	rule.RevenueToStaffRatio = &ratio

	forecastDays := []models.RevenueForecast{{Date: "2024-09-02", TotalRevenue: 9000}}

	g := NewGenerator(nil)
	g.ExpandRules([]models.ShiftRule{rule}, weekStart, forecastDays)

	if g.Slots[0].Required != 3 {
		t.Errorf("Expected required clamped to maxStaff 3, got %d", g.Slots[0].Required)
	}
}

func TestFairnessScore(t *testing.T) {
	g := NewGenerator([]models.Employee{
		employee("e1", "Bartender", 40),
		employee("e2", "Bartender", 40),
	})

	if score := g.FairnessScore(); score != 100.0 {
		t.Errorf("Expected 100 for zero assigned hours, got %f", score)
	}

	g.Employees["e1"].AssignedHours = 8
	g.Employees["e2"].AssignedHours = 8
	if score := g.FairnessScore(); score != 100.0 {
		t.Errorf("Expected 100 for perfectly even hours, got %f", score)
	}

	g.Employees["e2"].AssignedHours = 0
	if score := g.FairnessScore(); score >= 100.0 {
		t.Errorf("Expected uneven hours to score below 100, got %f", score)
	}
}

func TestDurationHours(t *testing.T) {
	if got := DurationHours("09:00", "17:30"); got != 8.5 {
		t.Errorf("Expected 8.5 hours, got %f", got)
	}
	if got := DurationHours("bad", "17:00"); got != 0 {
		t.Errorf("Expected 0 for unparseable time, got %f", got)
	}
}
