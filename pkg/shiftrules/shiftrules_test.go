package shiftrules

import (
	"errors"
	"testing"

	"github.com/tomharber/rota-api-go/pkg/models"
)

func rule(id string, day models.DayOfWeek, archived bool) models.ShiftRule {
	return models.ShiftRule{
		ID:        id,
		JobRoleID: "role1",
		DayOfWeek: day,
		StartTime: "09:00",
		EndTime:   "17:00",
		MinStaff:  1,
		MaxStaff:  3,
		Priority:  2,
		Archived:  archived,
	}
}

func allowAll(string) bool { return true }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.ShiftRule)
		wantField string
	}{
		{"valid", func(r *models.ShiftRule) {}, ""},
		{"start after end", func(r *models.ShiftRule) {
			r.StartTime = "18:00"
			r.EndTime = "09:00"
		}, "start_time"},
		{"start equals end", func(r *models.ShiftRule) {
			r.StartTime = "09:00"
			r.EndTime = "09:00"
		}, "start_time"},
		{"unpadded time", func(r *models.ShiftRule) {
			r.StartTime = "9:00"
		}, "start_time"},
		{"zero min staff", func(r *models.ShiftRule) {
			r.MinStaff = 0
		}, "min_staff"},
		{"min over max", func(r *models.ShiftRule) {
			r.MinStaff = 4
			r.MaxStaff = 2
		}, "min_staff"},
		{"priority out of range", func(r *models.ShiftRule) {
			r.Priority = 6
		}, "priority"},
	}

	for _, tc := range tests {
		r := rule("s1", models.Monday, false)
		tc.mutate(&r)
		err := Validate(&r, allowAll)

		if tc.wantField == "" {
			if err != nil {
				t.Errorf("%s: expected no error, got %v", tc.name, err)
			}
			continue
		}
		ve, ok := err.(*models.ValidationError)
		if !ok {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}
		if ve.Field != tc.wantField {
			t.Errorf("%s: expected field %s, got %s", tc.name, tc.wantField, ve.Field)
		}
	}
}

func TestValidate_MissingRole(t *testing.T) {
	r := rule("s1", models.Monday, false)
	err := Validate(&r, func(string) bool { return false })

	ve, ok := err.(*models.ValidationError)
	if !ok || ve.Field != "job_role_id" {
		t.Errorf("Expected job_role_id validation error, got %v", err)
	}
}

func TestFilters(t *testing.T) {
	rules := []models.ShiftRule{
		rule("s1", models.Monday, false),
		rule("s2", models.Monday, true),
		rule("s3", models.Friday, false),
	}

	if got := Active(rules, DayFilterAll); len(got) != 2 {
		t.Errorf("Expected 2 active rules, got %d", len(got))
	}
	if got := Active(rules, "monday"); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("Expected only s1 active on monday, got %v", got)
	}
	if got := Archived(rules, ""); len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("Expected only s2 archived, got %v", got)
	}
	if got := Archived(rules, "friday"); len(got) != 0 {
		t.Errorf("Expected no archived rules on friday, got %v", got)
	}
}

func TestCheckDelete(t *testing.T) {
	if err := CheckDelete(false); !errors.Is(err, models.ErrConfirmationRequired) {
		t.Errorf("Expected ErrConfirmationRequired without confirm, got %v", err)
	}
	if err := CheckDelete(true); err != nil {
		t.Errorf("Expected confirmed delete to pass, got %v", err)
	}
}
