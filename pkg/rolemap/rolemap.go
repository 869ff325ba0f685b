package rolemap

import (
	"sort"

	"github.com/tomharber/rota-api-go/pkg/models"
)

// Group returns the mappings for one role sorted by priority rank.
// Priority gaps left by deletes are tolerated; order is what matters.
func Group(mappings []models.JobRoleMapping, roleID string) []models.JobRoleMapping {
	group := make([]models.JobRoleMapping, 0, len(mappings))
	for _, m := range mappings {
		if m.JobRoleID == roleID {
			group = append(group, m)
		}
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Priority < group[j].Priority
	})
	return group
}

// Reorder moves the mapping at fromIndex within a role's ordered sublist to
// toIndex, then renumbers the whole sublist to a dense 1-based priority
// sequence. Mappings for other roles are returned untouched. Indexes refer
// to the priority-sorted sublist.
//
// The returned slice carries every mapping; only entries in the affected
// role group have new priorities. Persisting those rows is the caller's
// job; on partial persistence failure the documented recovery is a
// refetch, not a rollback.
func Reorder(mappings []models.JobRoleMapping, roleID string, fromIndex, toIndex int) ([]models.JobRoleMapping, error) {
	group := Group(mappings, roleID)
	if fromIndex < 0 || fromIndex >= len(group) {
		return nil, models.Invalid("from_index", "index %d out of range for %d mappings", fromIndex, len(group))
	}
	if toIndex < 0 || toIndex >= len(group) {
		return nil, models.Invalid("to_index", "index %d out of range for %d mappings", toIndex, len(group))
	}

	moved := group[fromIndex]
	group = append(group[:fromIndex], group[fromIndex+1:]...)
	group = append(group[:toIndex], append([]models.JobRoleMapping{moved}, group[toIndex:]...)...)

	renumbered := make(map[string]int, len(group))
	for i, m := range group {
		renumbered[m.ID] = i + 1
	}

	out := make([]models.JobRoleMapping, len(mappings))
	copy(out, mappings)
	for i := range out {
		if p, ok := renumbered[out[i].ID]; ok {
			out[i].Priority = p
		}
	}
	return out, nil
}

// NextPriority returns the priority an appended title should take:
// one past the group's current maximum, or 1 for an empty group
func NextPriority(mappings []models.JobRoleMapping, roleID string) int {
	max := 0
	for _, m := range mappings {
		if m.JobRoleID == roleID && m.Priority > max {
			max = m.Priority
		}
	}
	return max + 1
}

// Append builds a new mapping for a role at the end of its priority order.
// Duplicate titles within a role are allowed; a title may legitimately
// appear at two ranks.
func Append(mappings []models.JobRoleMapping, id, locationID, roleID, title string) models.JobRoleMapping {
	return models.JobRoleMapping{
		ID:         id,
		LocationID: locationID,
		JobRoleID:  roleID,
		JobTitle:   title,
		Priority:   NextPriority(mappings, roleID),
	}
}

// TitlesInOrder resolves a role's acceptable job titles by rank, used as
// the preference order during rota generation
func TitlesInOrder(mappings []models.JobRoleMapping, roleID string) []string {
	group := Group(mappings, roleID)
	titles := make([]string, len(group))
	for i, m := range group {
		titles[i] = m.JobTitle
	}
	return titles
}
