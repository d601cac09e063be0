package utils

import (
	"sort"
	"strings"
)

// GetKeys returns the map keys sorted, handy for stable command listings.
func GetKeys[T any](m map[string]T) []string {
	keys := []string{}
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SplitNonEmpty splits s by sep, trims each chunk and drops empty ones.
func SplitNonEmpty(s, sep string) []string {
	result := []string{}
	for _, chunk := range strings.Split(s, sep) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		result = append(result, chunk)
	}
	return result
}
