package client

import "strings"

// SplitSkills turns the free-text editing representation into the
// canonical sequence: split on commas, trim, drop empties.
// "Java, SQL, React" -> ["Java", "SQL", "React"].
func SplitSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// JoinSkills is the inverse of SplitSkills for display. The round trip is
// exact for comma-free tokens and lossy for skills containing literal
// commas; that limitation is inherited from the editing format.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}
