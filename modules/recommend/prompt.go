package recommend

import (
	"fmt"
	"strings"
)

// RefinePrompt - compress a raw query into concise image search keywords
func RefinePrompt(rawQuery string) string {
	return fmt.Sprintf(
		"Refine the following fashion query for concise image search (max 8 keywords). "+
			"Output ONLY the refined query: %q", rawQuery)
}

// DescriptionPrompt - 4-5 line outfit paragraph; unset fields become "any"
func DescriptionPrompt(prefs PreferenceSet) string {
	return fmt.Sprintf(
		"Generate a 4-5 line fashion description based on the following preferences:\n"+
			"Color: %s, Gender: %s, Type: %s, Occasion: %s, Style: %s.\n"+
			"Write a friendly paragraph, no bullets.",
		orAny(prefs.Color), orAny(prefs.Gender), orAny(prefs.Type),
		orAny(prefs.Occasion), orAny(prefs.Style))
}

// AccessoriesPrompt - elegant-tone accessory recommendation over the item list
func AccessoriesPrompt(outfit, gender string, items []string) string {
	return fmt.Sprintf(
		"Suggest fashionable matching accessories for this outfit:\n"+
			"Outfit: %s\n"+
			"Gender: %s\n"+
			"Requested Accessories: %s\n\n"+
			"Write a friendly paragraph that recommends stylish matching accessories. "+
			"Include why they go well with the outfit. Keep it elegant and fashion-focused.",
		outfit, gender, strings.Join(items, ", "))
}

func orAny(value string) string {
	if value == "" {
		return "any"
	}
	return value
}
