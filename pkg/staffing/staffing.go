package staffing

import (
	"github.com/tomharber/rota-api-go/pkg/models"
)

// Lookup resolves the staffing requirement for a revenue level on a given
// day and segment. Bands are half-open: revenueMin <= revenue < revenueMax,
// so a revenue exactly equal to a band's max belongs to the next band up.
//
// Returns nil when no band covers the revenue (a coverage gap). Callers
// must treat nil as "no guidance configured", never as zero staff.
//
// When user-edited bands overlap, the band with the smallest revenueMin
// wins so repeated lookups stay deterministic.
func Lookup(thresholds []models.RevenueThreshold, revenue float64, day models.DayOfWeek, segment models.Segment) *models.StaffingRequirement {
	var match *models.RevenueThreshold
	for i := range thresholds {
		t := &thresholds[i]
		if t.DayOfWeek != day || t.Segment != segment {
			continue
		}
		if revenue < t.RevenueMin || revenue >= t.RevenueMax {
			continue
		}
		if match == nil || t.RevenueMin < match.RevenueMin {
			match = t
		}
	}
	if match == nil {
		return nil
	}
	return &models.StaffingRequirement{
		ThresholdID:          match.ID,
		Name:                 match.Name,
		FohMinStaff:          match.FohMinStaff,
		FohMaxStaff:          match.FohMaxStaff,
		KitchenMinStaff:      match.KitchenMinStaff,
		KitchenMaxStaff:      match.KitchenMaxStaff,
		KpMinStaff:           match.KpMinStaff,
		KpMaxStaff:           match.KpMaxStaff,
		TargetCostPercentage: match.TargetCostPercentage,
	}
}

// Validate checks a threshold's invariants before it may be persisted
func Validate(t *models.RevenueThreshold) error {
	if !models.ValidDayOfWeek(t.DayOfWeek) {
		return models.Invalid("day_of_week", "unknown day %q", t.DayOfWeek)
	}
	if !models.ValidSegment(t.Segment) {
		return models.Invalid("segment", "unknown segment %q", t.Segment)
	}
	if t.RevenueMin >= t.RevenueMax {
		return models.Invalid("revenue_min", "revenue_min (%.2f) must be below revenue_max (%.2f)", t.RevenueMin, t.RevenueMax)
	}
	staffPairs := []struct {
		field    string
		min, max int
	}{
		{"foh_min_staff", t.FohMinStaff, t.FohMaxStaff},
		{"kitchen_min_staff", t.KitchenMinStaff, t.KitchenMaxStaff},
		{"kp_min_staff", t.KpMinStaff, t.KpMaxStaff},
	}
	for _, p := range staffPairs {
		if p.min < 0 {
			return models.Invalid(p.field, "staff count cannot be negative")
		}
		if p.min > p.max {
			return models.Invalid(p.field, "min staff (%d) exceeds max staff (%d)", p.min, p.max)
		}
	}
	if t.TargetCostPercentage < 15 || t.TargetCostPercentage > 50 {
		return models.Invalid("target_cost_percentage", "must be between 15 and 50, got %.1f", t.TargetCostPercentage)
	}
	return nil
}

// Duplicate returns the list with a copy of the threshold identified by id
// appended. The copy carries the given new id and a name suffixed with
// " (copy)". The list is unchanged when id is not present.
func Duplicate(thresholds []models.RevenueThreshold, id, newID string) []models.RevenueThreshold {
	for i := range thresholds {
		if thresholds[i].ID == id {
			cp := thresholds[i]
			cp.ID = newID
			cp.Name = cp.Name + " (copy)"
			return append(thresholds, cp)
		}
	}
	return thresholds
}

// FilterByDaySegment returns thresholds matching the day and segment,
// preserving input order
func FilterByDaySegment(thresholds []models.RevenueThreshold, day models.DayOfWeek, segment models.Segment) []models.RevenueThreshold {
	out := make([]models.RevenueThreshold, 0, len(thresholds))
	for _, t := range thresholds {
		if t.DayOfWeek == day && t.Segment == segment {
			out = append(out, t)
		}
	}
	return out
}
