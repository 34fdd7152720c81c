package services

import (
	"strings"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// maleNamePatterns are name prefixes that commonly indicate a male doctor
// in the dataset. The records carry no gender attribute, so this is a
// best-effort heuristic; ambiguous names pass through unfiltered.
var maleNamePatterns = []string{
	"Dr. Muhammad", "Dr. M.", "Dr. Ahmed", "Dr. Ali",
	"Dr. Usman", "Dr. Hassan", "Dr. Hamza",
}

// FilterByGenderPreference narrows candidates by a gender hint matched
// against doctor names. When filtering would empty the result set, the
// unfiltered set is returned instead: a weak hint never hides every
// doctor from the user.
func FilterByGenderPreference(doctors []*entities.Doctor, gender string) []*entities.Doctor {
	if strings.ToLower(gender) != "female" {
		// No reliable positive signal exists for male doctors either;
		// male preference passes through unchanged.
		return doctors
	}

	filtered := make([]*entities.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if hasMaleNamePattern(d.Name) {
			continue
		}
		filtered = append(filtered, d)
	}

	if len(filtered) == 0 {
		return doctors
	}
	return filtered
}

func hasMaleNamePattern(name string) bool {
	for _, pattern := range maleNamePatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
