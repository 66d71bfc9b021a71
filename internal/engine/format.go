package engine

import (
	"regexp"
	"strings"

	"atscore/internal/types"
)

var (
	experienceSection = regexp.MustCompile(`(?i)experience|work|employment`)
	educationSection  = regexp.MustCompile(`(?i)education|degree|university|college`)
	skillsSection     = regexp.MustCompile(`(?i)skills|technologies|tools`)
	emailPattern      = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
)

var sectionNames = []string{"experience", "education", "skills", "summary", "objective"}

// AnalyzeFormat scores the resume's structure, readability, technical keyword
// density, and section completeness from its raw text layout.
func AnalyzeFormat(resumeText string, technicalSkills []string) types.FormatAnalysis {
	lower := strings.ToLower(resumeText)

	structure := 0.0
	for _, section := range sectionNames {
		if strings.Contains(lower, section) {
			structure += 20.0
		}
	}

	return types.FormatAnalysis{
		StructureScore:      structure,
		ReadabilityScore:    readabilityScore(resumeText),
		KeywordDensity:      keywordDensity(lower, technicalSkills),
		SectionCompleteness: sectionCompleteness(resumeText),
	}
}

// readabilityScore rates mean line length over non-empty lines; shorter lines
// read as more screener-friendly. No non-empty lines rates 100.
func readabilityScore(resumeText string) float64 {
	total, count := 0, 0
	for _, line := range strings.Split(resumeText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total += runeLen(line)
		count++
	}
	if count == 0 {
		return 100.0
	}

	avg := float64(total) / float64(count)
	switch {
	case avg > 80:
		return 60.0
	case avg > 60:
		return 80.0
	default:
		return 100.0
	}
}

// keywordDensity counts technical skill mentions per thousand words, capped
// at 100. Skills cataloged under multiple categories count once per listing.
func keywordDensity(lowerText string, technicalSkills []string) float64 {
	words := len(strings.Fields(lowerText))
	if words == 0 {
		return 0.0
	}

	hits := 0
	for _, skill := range technicalSkills {
		if strings.Contains(lowerText, strings.ToLower(skill)) {
			hits++
		}
	}

	density := float64(hits) / float64(words) * 1000
	if density > 100.0 {
		return 100.0
	}
	return density
}

// sectionCompleteness grants 25 points each for experience, education, and
// skills markers plus a syntactically valid email address.
func sectionCompleteness(resumeText string) float64 {
	score := 0.0
	for _, re := range []*regexp.Regexp{experienceSection, educationSection, skillsSection, emailPattern} {
		if re.MatchString(resumeText) {
			score += 25.0
		}
	}
	return score
}
