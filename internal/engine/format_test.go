package engine

import (
	"strings"
	"testing"
)

var testSkills = []string{"python", "docker", "react", "dynamodb", "dynamodb"}

func TestAnalyzeFormatStructure(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"all five sections", "Summary\nExperience\nEducation\nSkills\nObjective", 100.0},
		{"three sections", "Experience\nEducation\nSkills", 60.0},
		{"no sections", "just some text", 0.0},
		{"case insensitive", "EXPERIENCE and EDUCATION", 40.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeFormat(tt.text, testSkills)
			if got.StructureScore != tt.want {
				t.Errorf("StructureScore = %v, want %v", got.StructureScore, tt.want)
			}
		})
	}
}

func TestReadabilityScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"short lines", "short line\nanother short line", 100.0},
		{"long lines", strings.Repeat("x", 90) + "\n" + strings.Repeat("y", 90), 60.0},
		{"medium lines", strings.Repeat("x", 70) + "\n" + strings.Repeat("y", 70), 80.0},
		{"empty lines ignored", "short\n\n\n\nshort", 100.0},
		{"no non-empty lines", "\n\n\n", 100.0},
		{"boundary 80 exactly", strings.Repeat("x", 80), 100.0},
		{"boundary 60 exactly", strings.Repeat("x", 60), 100.0},
		{"just over 60", strings.Repeat("x", 61), 80.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readabilityScore(tt.text); got != tt.want {
				t.Errorf("readabilityScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordDensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no words", "", 0.0},
		{"no skills", "plain words only here", 0.0},
		// 2 skill hits over 4 words: 2/4*1000 capped at 100
		{"capped at 100", "python docker plain words", 100.0},
		// duplicate catalog listings count once per listing: dynamodb twice
		{"duplicate listings", "dynamodb " + strings.Repeat("word ", 39), 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordDensity(strings.ToLower(tt.text), testSkills); got != tt.want {
				t.Errorf("keywordDensity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSectionCompleteness(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"all markers", "Work history, a university degree, tools I use, me@example.com", 100.0},
		{"no markers", "nothing relevant", 0.0},
		{"email only", "contact: someone@company.io", 25.0},
		{"invalid email not counted", "someone@invalid", 0.0},
		{"experience and skills", "experience with many technologies", 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sectionCompleteness(tt.text); got != tt.want {
				t.Errorf("sectionCompleteness = %v, want %v", got, tt.want)
			}
		})
	}
}
