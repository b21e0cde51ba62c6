package recommend

import "strings"

// BuildQuery - deterministic raw search phrase from a preference set.
// Field order is fixed: color, style, type, "for <occasion>", gender.
// Empty fields are skipped; an entirely empty set yields "".
func BuildQuery(prefs PreferenceSet) string {
	fields := []string{
		prefs.Color,
		prefs.Style,
		prefs.Type,
		occasionPhrase(prefs.Occasion),
		prefs.Gender,
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func occasionPhrase(occasion string) string {
	if occasion == "" {
		return ""
	}
	return "for " + occasion
}
