package engine

import (
	"strings"

	"atscore/internal/types"
)

// GenerateSuggestions turns scoring gaps into tiered recommendations. Every
// applicable rule fires; the flat list concatenates critical, important, and
// optional tiers in that order.
func GenerateSuggestions(keyword types.KeywordAnalysis, semantic types.SemanticAnalysis, format types.FormatAnalysis) ([]string, types.Improvements) {
	var critical, important, optional []string

	if len(keyword.Required.Missing) > 0 {
		critical = append(critical, "Add missing required skills: "+joinHead(keyword.Required.Missing, 5))
	}
	if semantic.JobTitleMatch < 50 {
		critical = append(critical, "Update job titles to better match the target position")
	}
	if format.SectionCompleteness < 75 {
		critical = append(critical, "Add missing resume sections (Experience, Education, Skills, Contact)")
	}

	if len(keyword.Preferred.Missing) > 0 {
		important = append(important, "Consider adding preferred skills: "+joinHead(keyword.Preferred.Missing, 3))
	}
	if format.KeywordDensity < 2 {
		important = append(important, "Increase keyword density by adding more relevant technical terms")
	}
	if semantic.ExperienceLevel < 50 {
		important = append(important, "Highlight relevant experience and quantify achievements")
	}

	if len(keyword.SoftSkills.Missing) > 0 {
		optional = append(optional, "Add soft skills: "+joinHead(keyword.SoftSkills.Missing, 3))
	}
	if format.ReadabilityScore < 80 {
		optional = append(optional, "Improve readability by using shorter, more concise bullet points")
	}

	suggestions := make([]string, 0, len(critical)+len(important)+len(optional))
	suggestions = append(suggestions, critical...)
	suggestions = append(suggestions, important...)
	suggestions = append(suggestions, optional...)

	return suggestions, types.Improvements{
		Critical:  emptyIfNil(critical),
		Important: emptyIfNil(important),
		Optional:  emptyIfNil(optional),
	}
}

func joinHead(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
