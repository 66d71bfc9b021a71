package engine

import (
	"slices"
	"testing"

	"atscore/internal/taxonomy"
)

func testMatcher(t *testing.T) *matcher {
	t.Helper()
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("loading taxonomy: %v", err)
	}
	return newMatcher(tax)
}

func TestWordBoundaryMatch(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		skill string
		want  bool
	}{
		{"skill whole word in term", "python developer", "python", true},
		{"term whole word in skill", "solving", "problem solving", true},
		{"exact equality", "machine learning", "machine learning", true},
		{"single letter skill rejected", "remote", "r", false},
		{"single letter skill rejected even standalone", "r", "r", false},
		{"compound form within one word", "vue.js-framework", "vue.js", true},
		{"compound with large length difference", "javascripting101", "javascript", false},
		{"substring without boundary", "javabeans", "java", false},
		{"punctuated skill exact match", "c++", "c++", true},
		{"punctuated skill inside compound word", "c++11", "c++", true},
		{"punctuated skill via compound rule", "c++ developer", "c++", true},
		{"dotted skill whole word", "node.js services", "node.js", true},
		{"case folding", "Python", "python", true},
		{"unrelated", "gardening", "kubernetes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordBoundaryMatch(tt.term, tt.skill); got != tt.want {
				t.Errorf("wordBoundaryMatch(%q, %q) = %v, want %v", tt.term, tt.skill, got, tt.want)
			}
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	m := testMatcher(t)

	tests := []struct {
		name        string
		terms       []string
		category    Category
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:        "required finds technical skills",
			terms:       []string{"python", "react", "teamwork"},
			category:    CategoryRequired,
			wantPresent: []string{"python", "react"},
			wantAbsent:  []string{"teamwork"},
		},
		{
			name:        "nestjs alias implies node.js",
			terms:       []string{"backend nestjs engineer"},
			category:    CategoryRequired,
			wantPresent: []string{"nestjs", "node.js"},
		},
		{
			name:        "no single letter false positive from remote",
			terms:       []string{"remotely", "developer"},
			category:    CategoryPreferred,
			wantAbsent:  []string{"r"},
			wantPresent: []string{"remote"},
		},
		{
			name:        "preferred includes soft skills",
			terms:       []string{"leadership", "python"},
			category:    CategoryPreferred,
			wantPresent: []string{"leadership", "python"},
		},
		{
			name:        "industry terms",
			terms:       []string{"machine learning", "scrum master"},
			category:    CategoryIndustry,
			wantPresent: []string{"machine learning", "scrum"},
		},
		{
			name:        "soft only",
			terms:       []string{"communication", "python"},
			category:    CategorySoft,
			wantPresent: []string{"communication"},
			wantAbsent:  []string{"python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.filterByCategory(tt.terms, tt.category)
			if !slices.IsSorted(got) {
				t.Errorf("result not sorted: %v", got)
			}
			for _, kw := range tt.wantPresent {
				if !slices.Contains(got, kw) {
					t.Errorf("missing %q in %v", kw, got)
				}
			}
			for _, kw := range tt.wantAbsent {
				if slices.Contains(got, kw) {
					t.Errorf("unexpected %q in %v", kw, got)
				}
			}
		})
	}
}

func TestLinguisticBackendExtract(t *testing.T) {
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("loading taxonomy: %v", err)
	}
	backend := NewLinguisticBackend(tax)

	tests := []struct {
		name        string
		text        string
		category    Category
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:       "adverbs cannot surface single letter skills",
			text:       "I work remotely as a developer",
			category:   CategoryPreferred,
			wantAbsent: []string{"r"},
		},
		{
			name:        "nestjs alias implies node.js",
			text:        "Backend NestJS Engineer",
			category:    CategoryRequired,
			wantPresent: []string{"nestjs", "node.js"},
		},
		{
			name:        "plain technical mentions",
			text:        "We use Python and Docker daily.",
			category:    CategoryRequired,
			wantPresent: []string{"python", "docker"},
		},
		{
			name:        "soft skills",
			text:        "Excellent communication and leadership skills.",
			category:    CategorySoft,
			wantPresent: []string{"communication", "leadership"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := backend.Extract(tt.text, tt.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.IsSorted(got) {
				t.Errorf("result not sorted: %v", got)
			}
			for _, kw := range tt.wantPresent {
				if !slices.Contains(got, kw) {
					t.Errorf("missing %q in %v", kw, got)
				}
			}
			for _, kw := range tt.wantAbsent {
				if slices.Contains(got, kw) {
					t.Errorf("unexpected %q in %v", kw, got)
				}
			}
		})
	}
}

func TestFallbackBackendExtract(t *testing.T) {
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("loading taxonomy: %v", err)
	}
	backend := NewFallbackBackend(tax)

	tests := []struct {
		name        string
		text        string
		category    Category
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:        "plain technical mentions",
			text:        "We use Python, Docker and PostgreSQL.",
			category:    CategoryRequired,
			wantPresent: []string{"python", "docker", "postgresql"},
		},
		{
			name:       "punctuated skills never match after normalization",
			text:       "Strong node.js background.",
			category:   CategoryRequired,
			wantAbsent: []string{"node.js"},
		},
		{
			name:        "soft skills",
			text:        "Excellent communication and leadership.",
			category:    CategorySoft,
			wantPresent: []string{"communication", "leadership"},
		},
		{
			name:        "industry terms",
			text:        "Experience with agile and microservices.",
			category:    CategoryIndustry,
			wantPresent: []string{"agile", "microservices"},
		},
		{
			name:     "empty text",
			text:     "",
			category: CategoryRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := backend.Extract(tt.text, tt.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.IsSorted(got) {
				t.Errorf("result not sorted: %v", got)
			}
			for _, kw := range tt.wantPresent {
				if !slices.Contains(got, kw) {
					t.Errorf("missing %q in %v", kw, got)
				}
			}
			for _, kw := range tt.wantAbsent {
				if slices.Contains(got, kw) {
					t.Errorf("unexpected %q in %v", kw, got)
				}
			}
		})
	}
}
