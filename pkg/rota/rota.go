package rota

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tomharber/rota-api-go/pkg/models"
	"github.com/tomharber/rota-api-go/pkg/rolemap"
	"github.com/tomharber/rota-api-go/pkg/weather"
)

// Slot is one dated staffing slot expanded from a shift rule
type Slot struct {
	ID          string           `json:"id"`
	ShiftRuleID string           `json:"shift_rule_id"`
	JobRoleID   string           `json:"job_role_id"`
	Date        string           `json:"date"` // YYYY-MM-DD
	DayOfWeek   models.DayOfWeek `json:"day_of_week"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	Priority    int              `json:"priority"`
	Required    int              `json:"required"`
	Assigned    []string         `json:"assigned"` // employee IDs
}

// Conflict records why a slot could not be fully staffed
type Conflict struct {
	SlotID    string   `json:"slot_id"`
	JobRoleID string   `json:"job_role_id"`
	Reasons   []string `json:"reasons"`
}

// Result is a generated week rota
type Result struct {
	WeekStart     string             `json:"week_start"`
	Slots         []Slot             `json:"slots"`
	Conflicts     []Conflict         `json:"conflicts,omitempty"`
	FairnessScore float64            `json:"fairness_score"`
	Hours         map[string]float64 `json:"hours"` // employee ID -> assigned hours
}

// staffState tracks one employee's accumulating assignments during a run
type staffState struct {
	models.Employee
	AssignedHours float64
	AssignedSlots []*Slot
}

// Generator assigns employees to expanded shift slots
type Generator struct {
	Employees map[string]*staffState
	Slots     []*Slot
	Conflicts []Conflict
}

// NewGenerator creates a generator over a staff pool
func NewGenerator(employees []models.Employee) *Generator {
	pool := make(map[string]*staffState, len(employees))
	for _, e := range employees {
		pool[e.ID] = &staffState{Employee: e}
	}
	return &Generator{Employees: pool}
}

// ExpandRules turns active shift rules into dated slots for the week
// starting at weekStart (a Monday). Required staff is the rule's minimum,
// scaled by the day's forecast revenue when the rule carries a
// revenue-to-staff ratio, clamped to [minStaff, maxStaff]. Archived
// rules never produce slots.
func (g *Generator) ExpandRules(rules []models.ShiftRule, weekStart time.Time, forecastDays []models.RevenueForecast) {
	revenueByDate := make(map[string]float64, len(forecastDays))
	for _, f := range forecastDays {
		revenueByDate[f.Date] = f.TotalRevenue
	}

	dateByDay := make(map[models.DayOfWeek]string, 7)
	for i, day := range models.WeekDays {
		dateByDay[day] = weekStart.AddDate(0, 0, i).Format(weather.DateLayout)
	}

	for _, r := range rules {
		if r.Archived {
			continue
		}
		date, ok := dateByDay[r.DayOfWeek]
		if !ok {
			continue
		}
		required := r.MinStaff
		if r.RevenueToStaffRatio != nil && *r.RevenueToStaffRatio > 0 {
			if revenue, ok := revenueByDate[date]; ok && revenue > 0 {
				required = int(math.Ceil(revenue / *r.RevenueToStaffRatio))
				if required < r.MinStaff {
					required = r.MinStaff
				}
				if required > r.MaxStaff {
					required = r.MaxStaff
				}
			}
		}
		g.Slots = append(g.Slots, &Slot{
			ID:          r.ID + ":" + date,
			ShiftRuleID: r.ID,
			JobRoleID:   r.JobRoleID,
			Date:        date,
			DayOfWeek:   r.DayOfWeek,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			Priority:    r.Priority,
			Required:    required,
		})
	}

	// Higher-priority rules claim staff first; ties run in day order
	sort.SliceStable(g.Slots, func(i, j int) bool {
		if g.Slots[i].Priority != g.Slots[j].Priority {
			return g.Slots[i].Priority < g.Slots[j].Priority
		}
		if g.Slots[i].Date != g.Slots[j].Date {
			return g.Slots[i].Date < g.Slots[j].Date
		}
		return g.Slots[i].StartTime < g.Slots[j].StartTime
	})
}

// DurationHours converts a same-day HH:MM window to hours
func DurationHours(start, end string) float64 {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil {
		return 0
	}
	return e.Sub(s).Hours()
}

// overlaps checks whether two same-day HH:MM windows overlap. Zero-padded
// strings compare correctly lexicographically.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// wouldOverlap checks an employee's existing slots against a candidate
func (g *Generator) wouldOverlap(s *staffState, slot *Slot) bool {
	for _, assigned := range s.AssignedSlots {
		if assigned.Date != slot.Date {
			continue
		}
		if overlaps(assigned.StartTime, assigned.EndTime, slot.StartTime, slot.EndTime) {
			return true
		}
	}
	return false
}

// Assign fills every slot greedily. Candidates are employees whose job
// title appears in the slot's role mapping; mapping rank is the first
// preference, then least assigned hours, so the rota spreads load while
// honouring the title hierarchy.
func (g *Generator) Assign(mappings []models.JobRoleMapping) {
	rankByRole := make(map[string]map[string]int)
	for _, slot := range g.Slots {
		if _, ok := rankByRole[slot.JobRoleID]; ok {
			continue
		}
		ranks := make(map[string]int)
		for i, title := range rolemap.TitlesInOrder(mappings, slot.JobRoleID) {
			if _, seen := ranks[title]; !seen {
				ranks[title] = i
			}
		}
		rankByRole[slot.JobRoleID] = ranks
	}

	for _, slot := range g.Slots {
		duration := DurationHours(slot.StartTime, slot.EndTime)
		ranks := rankByRole[slot.JobRoleID]

		for len(slot.Assigned) < slot.Required {
			var best *staffState
			bestRank := 0
			maxHoursCount := 0
			overlapCount := 0
			unmappedCount := 0

			for _, s := range g.Employees {
				rank, mapped := ranks[s.JobTitle]
				fitsHours := s.AssignedHours+duration <= s.MaxWeeklyHours
				noOverlap := !g.wouldOverlap(s, slot)

				if mapped && fitsHours && noOverlap && !contains(slot.Assigned, s.ID) {
					if best == nil ||
						rank < bestRank ||
						(rank == bestRank && s.AssignedHours < best.AssignedHours) ||
						(rank == bestRank && s.AssignedHours == best.AssignedHours && s.ID < best.ID) {
						best = s
						bestRank = rank
					}
					continue
				}
				if !mapped {
					unmappedCount++
				}
				if !fitsHours {
					maxHoursCount++
				}
				if !noOverlap {
					overlapCount++
				}
			}

			if best == nil {
				var reasons []string
				if maxHoursCount > 0 {
					reasons = append(reasons, fmt.Sprintf("%d employees were at max weekly hours", maxHoursCount))
				}
				if overlapCount > 0 {
					reasons = append(reasons, fmt.Sprintf("%d employees had overlapping shifts", overlapCount))
				}
				if unmappedCount > 0 {
					reasons = append(reasons, fmt.Sprintf("%d employees hold no mapped job title for this role", unmappedCount))
				}
				if len(reasons) == 0 {
					reasons = append(reasons, "no employees available")
				}
				g.Conflicts = append(g.Conflicts, Conflict{
					SlotID:    slot.ID,
					JobRoleID: slot.JobRoleID,
					Reasons:   reasons,
				})
				break
			}

			slot.Assigned = append(slot.Assigned, best.ID)
			best.AssignedHours += duration
			best.AssignedSlots = append(best.AssignedSlots, slot)
		}
	}
}

// FairnessScore returns a percentage (0-100) of how evenly hours are
// spread across the staff pool. 100 means a standard deviation of zero.
func (g *Generator) FairnessScore() float64 {
	if len(g.Employees) == 0 {
		return 100.0
	}

	var sum float64
	for _, s := range g.Employees {
		sum += s.AssignedHours
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(g.Employees))
	var varianceSum float64
	for _, s := range g.Employees {
		diff := s.AssignedHours - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(g.Employees)))

	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}

// Generate runs the full pipeline: expand rules for the week, assign
// staff, score fairness
func Generate(rules []models.ShiftRule, mappings []models.JobRoleMapping, employees []models.Employee, weekStart time.Time, forecastDays []models.RevenueForecast) *Result {
	g := NewGenerator(employees)
	g.ExpandRules(rules, weekStart, forecastDays)
	g.Assign(mappings)

	slots := make([]Slot, len(g.Slots))
	for i, s := range g.Slots {
		slots[i] = *s
	}
	hours := make(map[string]float64, len(g.Employees))
	for id, s := range g.Employees {
		hours[id] = s.AssignedHours
	}

	return &Result{
		WeekStart:     weekStart.Format(weather.DateLayout),
		Slots:         slots,
		Conflicts:     g.Conflicts,
		FairnessScore: g.FairnessScore(),
		Hours:         hours,
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
