package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atscore/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScoreResult", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreResult", &ScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoreResult:
		return "ScoreResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScoreTextFormatter handles text formatting for score results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResult)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score:    %.1f/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Confidence:       %.1f/100\n\n", result.Confidence))
	output.WriteString(fmt.Sprintf("Keyword Score:    %.1f/100\n", result.KeywordScore))
	output.WriteString(fmt.Sprintf("Semantic Score:   %.1f/100\n", result.SemanticScore))
	output.WriteString(fmt.Sprintf("Format Score:     %.1f/100\n", result.FormatScore))
	output.WriteString(fmt.Sprintf("Experience Score: %.1f/100\n\n", result.ExperienceScore))

	output.WriteString("=== KEYWORD ANALYSIS ===\n")
	writeMatchText(&output, "Required skills", result.KeywordAnalysis.Required)
	writeMatchText(&output, "Preferred skills", result.KeywordAnalysis.Preferred)
	writeMatchText(&output, "Industry terms", result.KeywordAnalysis.Industry)
	writeMatchText(&output, "Soft skills", result.KeywordAnalysis.SoftSkills)
	output.WriteString("\n")

	output.WriteString("=== FORMAT ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Structure:    %.1f/100\n", result.FormatAnalysis.StructureScore))
	output.WriteString(fmt.Sprintf("Readability:  %.1f/100\n", result.FormatAnalysis.ReadabilityScore))
	output.WriteString(fmt.Sprintf("Density:      %.1f/100\n", result.FormatAnalysis.KeywordDensity))
	output.WriteString(fmt.Sprintf("Completeness: %.1f/100\n\n", result.FormatAnalysis.SectionCompleteness))

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		writeSuggestionsText(&output, "Critical", result.Improvements.Critical)
		writeSuggestionsText(&output, "Important", result.Improvements.Important)
		writeSuggestionsText(&output, "Optional", result.Improvements.Optional)
	} else {
		output.WriteString("No suggestions.\n")
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreResult"
}

func writeMatchText(output *strings.Builder, label string, match types.KeywordMatchResult) {
	output.WriteString(fmt.Sprintf("%s: %.1f/100\n", label, match.Score))
	if len(match.Matched) > 0 {
		output.WriteString(fmt.Sprintf("  Matched: %s\n", strings.Join(match.Matched, ", ")))
	}
	if len(match.Missing) > 0 {
		output.WriteString(fmt.Sprintf("  Missing: %s\n", strings.Join(match.Missing, ", ")))
	}
}

func writeSuggestionsText(output *strings.Builder, tier string, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("%s:\n", tier))
	for _, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("- %s\n", suggestion))
	}
	output.WriteString("\n")
}

// ScoreMarkdownFormatter handles markdown formatting for score results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResult)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Confidence:** %.1f/100\n\n", result.Confidence))

	output.WriteString("| Component | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Keyword | %.1f |\n", result.KeywordScore))
	output.WriteString(fmt.Sprintf("| Semantic | %.1f |\n", result.SemanticScore))
	output.WriteString(fmt.Sprintf("| Format | %.1f |\n", result.FormatScore))
	output.WriteString(fmt.Sprintf("| Experience | %.1f |\n\n", result.ExperienceScore))

	output.WriteString("## Keyword Analysis\n\n")
	writeMatchMarkdown(&output, "Required Skills", result.KeywordAnalysis.Required)
	writeMatchMarkdown(&output, "Preferred Skills", result.KeywordAnalysis.Preferred)
	writeMatchMarkdown(&output, "Industry Terms", result.KeywordAnalysis.Industry)
	writeMatchMarkdown(&output, "Soft Skills", result.KeywordAnalysis.SoftSkills)

	output.WriteString("## Format Analysis\n\n")
	output.WriteString(fmt.Sprintf("- **Structure:** %.1f/100\n", result.FormatAnalysis.StructureScore))
	output.WriteString(fmt.Sprintf("- **Readability:** %.1f/100\n", result.FormatAnalysis.ReadabilityScore))
	output.WriteString(fmt.Sprintf("- **Keyword Density:** %.1f/100\n", result.FormatAnalysis.KeywordDensity))
	output.WriteString(fmt.Sprintf("- **Section Completeness:** %.1f/100\n\n", result.FormatAnalysis.SectionCompleteness))

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		writeSuggestionsMarkdown(&output, "Critical", result.Improvements.Critical)
		writeSuggestionsMarkdown(&output, "Important", result.Improvements.Important)
		writeSuggestionsMarkdown(&output, "Optional", result.Improvements.Optional)
	} else {
		output.WriteString("## No Suggestions\n\nThe resume already covers the extracted requirements.\n")
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreResult"
}

func writeMatchMarkdown(output *strings.Builder, label string, match types.KeywordMatchResult) {
	output.WriteString(fmt.Sprintf("### %s (%.1f/100)\n\n", label, match.Score))
	if len(match.Matched) > 0 {
		output.WriteString(fmt.Sprintf("**Matched:** %s\n\n", strings.Join(match.Matched, ", ")))
	}
	if len(match.Missing) > 0 {
		output.WriteString(fmt.Sprintf("**Missing:** %s\n\n", strings.Join(match.Missing, ", ")))
	}
	if len(match.Matched) == 0 && len(match.Missing) == 0 {
		output.WriteString("No terms extracted.\n\n")
	}
}

func writeSuggestionsMarkdown(output *strings.Builder, tier string, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("### %s\n\n", tier))
	for _, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("- %s\n", suggestion))
	}
	output.WriteString("\n")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
