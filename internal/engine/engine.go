// Package engine implements the deterministic resume scoring pipeline:
// keyword extraction against a skill taxonomy, lexical similarity, experience
// detection, format analysis, suggestion generation, and fixed-weight
// aggregation into one overall score.
package engine

import (
	"math"
	"strings"

	"atscore/internal/taxonomy"
	"atscore/internal/types"
)

// Engine scores resumes against job descriptions. It is a pure function of
// its inputs once constructed: no I/O, no clock, no randomness, safe for
// concurrent use. The taxonomy is read-only after construction.
type Engine struct {
	primary  ExtractionBackend
	fallback *FallbackBackend
	techFlat []string
}

// Option configures engine construction.
type Option func(*options)

type options struct {
	linguistic bool
}

// WithLinguisticBackend toggles the tagger-based extraction backend. When
// disabled, or whenever the tagger fails on a given text, the substring
// fallback runs instead.
func WithLinguisticBackend(enabled bool) Option {
	return func(o *options) {
		o.linguistic = enabled
	}
}

// New builds a scoring engine over the given taxonomy.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Engine {
	o := options{linguistic: true}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		fallback: NewFallbackBackend(tax),
		techFlat: tax.AllTechnicalSkills(),
	}
	if o.linguistic {
		e.primary = NewLinguisticBackend(tax)
	} else {
		e.primary = e.fallback
	}
	return e
}

// ExtractKeywords finds canonical taxonomy terms of one category in text.
// Backend failures degrade to the substring fallback; extraction never fails.
func (e *Engine) ExtractKeywords(text string, category Category) []string {
	keywords, err := e.primary.Extract(text, category)
	if err != nil {
		keywords, _ = e.fallback.Extract(text, category)
	}
	return keywords
}

// BackendName reports which extraction backend the engine prefers.
func (e *Engine) BackendName() string {
	return e.primary.Name()
}

// ComputeScore runs the full scoring pipeline. Empty or degenerate inputs
// degrade to neutral scores rather than erroring; callers that want to reject
// empty requests validate before invoking.
func (e *Engine) ComputeScore(resumeText, jobDescription, jobTitle string) types.ScoreResult {
	resumeLower := strings.ToLower(resumeText)

	keyword := types.KeywordAnalysis{
		Required:   e.matchCategory(jobDescription, resumeLower, CategoryRequired),
		Preferred:  e.matchCategory(jobDescription, resumeLower, CategoryPreferred),
		Industry:   e.matchCategory(jobDescription, resumeLower, CategoryIndustry),
		SoftSkills: e.matchCategory(jobDescription, resumeLower, CategorySoft),
	}

	keywordScore := keyword.Required.Score*0.5 +
		keyword.Preferred.Score*0.3 +
		keyword.Industry.Score*0.2

	responsibilityMatch := Similarity(resumeText, jobDescription) * 100
	semantic := types.SemanticAnalysis{
		JobTitleMatch:       Similarity(resumeText, jobTitle) * 100,
		IndustryAlignment:   keyword.Industry.Score,
		ExperienceLevel:     DetectExperienceLevel(resumeText),
		ResponsibilityMatch: responsibilityMatch,
	}

	semanticScore := semantic.JobTitleMatch*0.3 +
		semantic.IndustryAlignment*0.3 +
		semantic.ExperienceLevel*0.2 +
		semantic.ResponsibilityMatch*0.2

	format := AnalyzeFormat(resumeText, e.techFlat)
	formatScore := format.StructureScore*0.3 +
		format.ReadabilityScore*0.3 +
		format.KeywordDensity*0.2 +
		format.SectionCompleteness*0.2

	experience := types.ExperienceAnalysis{
		YearsOfExperience:    semantic.ExperienceLevel,
		RelevantExperience:   responsibilityMatch,
		ProjectMatch:         responsibilityMatch,
		AchievementAlignment: responsibilityMatch,
	}
	experienceScore := experience.RelevantExperience*0.4 +
		experience.ProjectMatch*0.3 +
		experience.AchievementAlignment*0.3

	overall := keywordScore*0.35 + semanticScore*0.25 + formatScore*0.20 + experienceScore*0.20

	suggestions, improvements := GenerateSuggestions(keyword, semantic, format)

	confidence := math.Min(100.0,
		float64(runeLen(resumeText))/1000*30+
			float64(runeLen(jobDescription))/1000*30+
			float64(len(keyword.Required.Matched)+len(keyword.Preferred.Matched))*2)

	return types.ScoreResult{
		OverallScore:       round1(clamp(overall)),
		KeywordScore:       round1(clamp(keywordScore)),
		SemanticScore:      round1(clamp(semanticScore)),
		FormatScore:        round1(clamp(formatScore)),
		ExperienceScore:    round1(clamp(experienceScore)),
		KeywordAnalysis:    keyword,
		SemanticAnalysis:   semantic,
		FormatAnalysis:     format,
		ExperienceAnalysis: experience,
		Suggestions:        suggestions,
		Improvements:       improvements,
		Confidence:         round1(clamp(confidence)),
	}
}

// genericJobDescription stands in for a real posting when a resume is
// analyzed on its own.
const genericJobDescription = "Software Engineer with experience in programming, development, and technical skills."

// AnalyzeResume scores a resume without a specific job posting, using a
// generic job description and an empty title.
func (e *Engine) AnalyzeResume(resumeText string) types.ScoreResult {
	return e.ComputeScore(resumeText, genericJobDescription, "")
}

// matchCategory extracts the requirement keywords of one category from the
// job description and tests each for presence in the resume. Presence is a
// plain case-insensitive substring test, deliberately looser than the
// extraction matching, since this stage checks evidence rather than
// extracting new terms. No candidates means the requirement is vacuously
// satisfied at 100.
func (e *Engine) matchCategory(jobDescription, resumeLower string, category Category) types.KeywordMatchResult {
	candidates := e.ExtractKeywords(jobDescription, category)

	matched := []string{}
	missing := []string{}
	for _, kw := range candidates {
		if strings.Contains(resumeLower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	score := 100.0
	if len(candidates) > 0 {
		score = float64(len(matched)) / float64(len(candidates)) * 100
	}

	return types.KeywordMatchResult{Matched: matched, Missing: missing, Score: score}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
