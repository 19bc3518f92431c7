package client

import (
	"strings"

	"go-talentpool-backend/internal/domain"
)

// Search filters a profile snapshot by case-insensitive substring match
// against name, email, description or any skill. A blank query returns
// the empty set: the browse view starts empty until the user searches.
func Search(profiles []domain.StudentProfile, query string) []domain.StudentProfile {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []domain.StudentProfile{}
	if query == "" {
		return matches
	}

	for _, p := range profiles {
		if matchesQuery(&p, query) {
			matches = append(matches, p)
		}
	}
	return matches
}

func matchesQuery(p *domain.StudentProfile, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Email), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}
