package services

import (
	"regexp"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
)

// PlaceholderFallback replaces any {key} token that has no substitution.
const PlaceholderFallback = "N/A"

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// RenderPlaceholders replaces {key} tokens in text with the matching substitution.
// When a key appears more than once in subs the first value wins.
func RenderPlaceholders(text string, subs []domain.Substitution) string {
	values := make(map[string]string, len(subs))
	for _, sub := range subs {
		if _, seen := values[sub.Key]; !seen {
			values[sub.Key] = sub.Value
		}
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		if v, ok := values[token[1:len(token)-1]]; ok {
			return v
		}
		return PlaceholderFallback
	})
}
