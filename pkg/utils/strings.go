package utils

import "strings"

// ContainsAny checks if the text contains any of the given keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// CountAny returns how many of the given keywords the text contains as
// substrings. Each keyword counts at most once regardless of repetition.
func CountAny(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}
