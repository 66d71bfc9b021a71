package engine

import (
	"slices"
	"strings"
	"testing"

	"atscore/internal/types"
)

func TestGenerateSuggestions(t *testing.T) {
	keyword := types.KeywordAnalysis{
		Required: types.KeywordMatchResult{
			Missing: []string{"python", "react", "docker", "kubernetes", "terraform", "ansible"},
		},
		Preferred: types.KeywordMatchResult{
			Missing: []string{"aws", "gcp", "azure", "heroku"},
		},
		SoftSkills: types.KeywordMatchResult{
			Missing: []string{"leadership", "communication", "teamwork", "mentoring"},
		},
	}
	semantic := types.SemanticAnalysis{JobTitleMatch: 20, ExperienceLevel: 30}
	format := types.FormatAnalysis{ReadabilityScore: 60, KeywordDensity: 1, SectionCompleteness: 50}

	suggestions, improvements := GenerateSuggestions(keyword, semantic, format)

	if len(improvements.Critical) != 3 {
		t.Errorf("critical count = %d, want 3", len(improvements.Critical))
	}
	if len(improvements.Important) != 3 {
		t.Errorf("important count = %d, want 3", len(improvements.Important))
	}
	if len(improvements.Optional) != 2 {
		t.Errorf("optional count = %d, want 2", len(improvements.Optional))
	}

	// Flat list is critical, then important, then optional, no interleaving.
	want := slices.Concat(improvements.Critical, improvements.Important, improvements.Optional)
	if !slices.Equal(suggestions, want) {
		t.Errorf("flat suggestions = %v, want %v", suggestions, want)
	}

	// Missing keyword lists are truncated: 5 required, 3 preferred, 3 soft.
	if got := improvements.Critical[0]; !strings.Contains(got, "terraform") || strings.Contains(got, "ansible") {
		t.Errorf("required suggestion truncation wrong: %q", got)
	}
	if got := improvements.Important[0]; !strings.Contains(got, "azure") || strings.Contains(got, "heroku") {
		t.Errorf("preferred suggestion truncation wrong: %q", got)
	}
	if got := improvements.Optional[0]; strings.Contains(got, "mentoring") {
		t.Errorf("soft skill suggestion truncation wrong: %q", got)
	}
}

func TestGenerateSuggestionsNoIssues(t *testing.T) {
	keyword := types.KeywordAnalysis{}
	semantic := types.SemanticAnalysis{JobTitleMatch: 90, ExperienceLevel: 80}
	format := types.FormatAnalysis{ReadabilityScore: 100, KeywordDensity: 5, SectionCompleteness: 100}

	suggestions, improvements := GenerateSuggestions(keyword, semantic, format)

	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestions)
	}
	if improvements.Critical == nil || improvements.Important == nil || improvements.Optional == nil {
		t.Error("improvement tiers should be empty slices, not nil")
	}
}
