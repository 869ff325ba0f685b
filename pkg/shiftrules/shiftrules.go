package shiftrules

import (
	"regexp"

	"github.com/tomharber/rota-api-go/pkg/models"
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validate checks a shift rule's invariants before it may be persisted.
// roleExists reports whether the referenced job role is known.
func Validate(r *models.ShiftRule, roleExists func(id string) bool) error {
	if !models.ValidDayOfWeek(r.DayOfWeek) {
		return models.Invalid("day_of_week", "unknown day %q", r.DayOfWeek)
	}
	if !timePattern.MatchString(r.StartTime) {
		return models.Invalid("start_time", "must be zero-padded HH:MM, got %q", r.StartTime)
	}
	if !timePattern.MatchString(r.EndTime) {
		return models.Invalid("end_time", "must be zero-padded HH:MM, got %q", r.EndTime)
	}
	// Same-day shifts only, so a lexicographic compare of zero-padded
	// HH:MM strings is a correct time compare.
	if r.StartTime >= r.EndTime {
		return models.Invalid("start_time", "start %s must be before end %s", r.StartTime, r.EndTime)
	}
	if r.MinStaff < 1 {
		return models.Invalid("min_staff", "must be at least 1, got %d", r.MinStaff)
	}
	if r.MinStaff > r.MaxStaff {
		return models.Invalid("min_staff", "min staff (%d) exceeds max staff (%d)", r.MinStaff, r.MaxStaff)
	}
	if r.Priority < 1 || r.Priority > 5 {
		return models.Invalid("priority", "must be between 1 and 5, got %d", r.Priority)
	}
	if roleExists != nil && !roleExists(r.JobRoleID) {
		return models.Invalid("job_role_id", "job role %q does not exist", r.JobRoleID)
	}
	return nil
}

// DayFilterAll is the passthrough value for day filtering
const DayFilterAll = "all"

// Active returns the non-archived rules, optionally narrowed to one day.
// Pass DayFilterAll (or empty) for every day.
func Active(rules []models.ShiftRule, day string) []models.ShiftRule {
	return filter(rules, false, day)
}

// Archived returns the archived rules, optionally narrowed to one day
func Archived(rules []models.ShiftRule, day string) []models.ShiftRule {
	return filter(rules, true, day)
}

func filter(rules []models.ShiftRule, archived bool, day string) []models.ShiftRule {
	out := make([]models.ShiftRule, 0, len(rules))
	for _, r := range rules {
		if r.Archived != archived {
			continue
		}
		if day != "" && day != DayFilterAll && string(r.DayOfWeek) != day {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CheckDelete enforces the two-step delete: a hard delete without the
// confirmation flag is rejected
func CheckDelete(confirm bool) error {
	if !confirm {
		return models.ErrConfirmationRequired
	}
	return nil
}
