package domain

import "strings"

var categoryLabels = map[string]string{
	"sport":        "Sport",
	"nature":       "Nature",
	"people":       "People",
	"art":          "Art",
	"architecture": "Architecture",
	"animals":      "Animals",
}

// CategoryLabel returns the human-readable name of a category key.
// Unknown keys are returned as-is.
func CategoryLabel(key string) string {
	if label, ok := categoryLabels[strings.ToLower(key)]; ok {
		return label
	}
	return key
}
