package searchcriteria

import (
	"fmt"
	"strings"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Objective is what an owner is looking for when browsing.
type Objective string

const (
	ObjectiveBreeding      Objective = "BREEDING"
	ObjectiveCompanionship Objective = "COMPANIONSHIP"
)

// IsValid returns true if the objective is recognized.
func (o Objective) IsValid() bool {
	return o == ObjectiveBreeding || o == ObjectiveCompanionship
}

// ParseObjective converts a case-insensitive string to an Objective.
func ParseObjective(s string) (Objective, error) {
	o := Objective(strings.ToUpper(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid objective: %q", s))
	}
	return o, nil
}
