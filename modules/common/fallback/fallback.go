package fallback

import "strings"

// PlaceholderImageURL fills image slots when the search service returns nothing usable.
const PlaceholderImageURL = "https://via.placeholder.com/400x500.png?text=Image+Not+Found"

// GenericDescription replaces a failed or blocked outfit description.
const GenericDescription = "A stylish look for your preferences."

// GenericAccessories replaces a failed or blocked accessory suggestion.
const GenericAccessories = "Some matching accessories to enhance your look beautifully!"

// PlaceholderImages returns n copies of the placeholder URL.
func PlaceholderImages(n int) []string {
	if n <= 0 {
		return []string{}
	}
	urls := make([]string, n)
	for i := range urls {
		urls[i] = PlaceholderImageURL
	}
	return urls
}

// SafeString returns a trimmed string or the provided fallback.
func SafeString(value interface{}, fallback string) string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return fallback
}
