package taxonomy

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	wantCategories := []string{"cloud", "data", "databases", "devops", "frameworks", "programming", "web3"}
	if got := tax.TechnicalCategories(); !slices.Equal(got, wantCategories) {
		t.Errorf("TechnicalCategories() = %v, want %v", got, wantCategories)
	}

	if skills := tax.TechnicalSkills("programming"); !slices.Contains(skills, "python") {
		t.Errorf("programming skills missing python: %v", skills)
	}
	if skills := tax.SoftSkills(); !slices.Contains(skills, "leadership") {
		t.Errorf("soft skills missing leadership: %v", skills)
	}
	if terms := tax.IndustryTerms("data science"); !slices.Contains(terms, "machine learning") {
		t.Errorf("data science terms missing machine learning: %v", terms)
	}
}

func TestAllTechnicalSkillsKeepsDuplicateListings(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	// dynamodb is cataloged under both databases and cloud; density counting
	// depends on both listings surviving the flatten.
	count := 0
	for _, s := range tax.AllTechnicalSkills() {
		if s == "dynamodb" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("dynamodb listed %d times, want 2", count)
	}
}

func TestIsCommonWord(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	tests := []struct {
		word string
		want bool
	}{
		{"experience", true},
		{"team", true},
		{"system", true},
		{"kubernetes", false},
		{"python", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := tax.IsCommonWord(tt.word); got != tt.want {
				t.Errorf("IsCommonWord(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
	}{
		{
			name: "valid catalog",
			content: `technical:
  programming:
    - "go"
    - "python"
soft:
  - "teamwork"
industries:
  "software development":
    - "api"
common_words:
  - "experience"
`,
			expectError: false,
		},
		{
			name:        "malformed yaml",
			content:     "technical: [unclosed",
			expectError: true,
		},
		{
			name:        "missing technical section",
			content:     "soft:\n  - \"teamwork\"\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			tax, err := LoadFile(path)
			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Contains(tax.TechnicalSkills("programming"), "go") {
				t.Error("loaded catalog missing programming skill go")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
