package rolemap

import (
	"testing"

	"github.com/tomharber/rota-api-go/pkg/models"
)

func mapping(id, roleID, title string, priority int) models.JobRoleMapping {
	return models.JobRoleMapping{
		ID:         id,
		LocationID: "loc1",
		JobRoleID:  roleID,
		JobTitle:   title,
		Priority:   priority,
	}
}

func TestReorder_DenseRenumbering(t *testing.T) {
	mappings := []models.JobRoleMapping{
		mapping("m1", "r1", "A", 1),
		mapping("m2", "r1", "B", 2),
		mapping("m3", "r1", "C", 3),
	}

	// Move C to the front
	out, err := Reorder(mappings, "r1", 2, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := TitlesInOrder(out, "r1")
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}

	group := Group(out, "r1")
	for i, m := range group {
		if m.Priority != i+1 {
			t.Errorf("Expected dense 1-based priorities, got %d at rank %d", m.Priority, i)
		}
	}
}

func TestReorder_OtherRolesUntouched(t *testing.T) {
	mappings := []models.JobRoleMapping{
		mapping("m1", "r1", "A", 1),
		mapping("m2", "r1", "B", 2),
		mapping("m3", "r2", "X", 7),
	}

	out, err := Reorder(mappings, "r1", 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, m := range out {
		if m.ID == "m3" && m.Priority != 7 {
			t.Errorf("Expected role r2 mapping to keep priority 7, got %d", m.Priority)
		}
	}
}

func TestReorder_GapsCollapse(t *testing.T) {
	// Deletes leave priority gaps; the next reorder collapses them
	mappings := []models.JobRoleMapping{
		mapping("m1", "r1", "A", 1),
		mapping("m3", "r1", "C", 4),
		mapping("m4", "r1", "D", 6),
	}

	out, err := Reorder(mappings, "r1", 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	group := Group(out, "r1")
	for i, m := range group {
		if m.Priority != i+1 {
			t.Errorf("Expected gap-free priorities after reorder, got %d at rank %d", m.Priority, i)
		}
	}
}

func TestReorder_IndexOutOfRange(t *testing.T) {
	mappings := []models.JobRoleMapping{mapping("m1", "r1", "A", 1)}

	if _, err := Reorder(mappings, "r1", 3, 0); !models.IsValidation(err) {
		t.Errorf("Expected ValidationError for bad fromIndex, got %v", err)
	}
	if _, err := Reorder(mappings, "r1", 0, -1); !models.IsValidation(err) {
		t.Errorf("Expected ValidationError for bad toIndex, got %v", err)
	}
}

func TestNextPriority(t *testing.T) {
	mappings := []models.JobRoleMapping{
		mapping("m1", "r1", "A", 1),
		mapping("m3", "r1", "C", 5), // gap left by a delete
	}

	if got := NextPriority(mappings, "r1"); got != 6 {
		t.Errorf("Expected next priority 6 (max+1), got %d", got)
	}
	if got := NextPriority(mappings, "empty"); got != 1 {
		t.Errorf("Expected priority 1 for empty group, got %d", got)
	}
}

func TestAppend_AllowsDuplicateTitles(t *testing.T) {
	mappings := []models.JobRoleMapping{mapping("m1", "r1", "Bartender", 1)}

	next := Append(mappings, "m2", "loc1", "r1", "Bartender")
	if next.Priority != 2 {
		t.Errorf("Expected appended mapping at priority 2, got %d", next.Priority)
	}
	if next.JobTitle != "Bartender" {
		t.Errorf("Expected duplicate title to be accepted")
	}
}
