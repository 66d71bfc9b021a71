package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)

// DetectExperienceLevel infers a 0-100 experience score from the resume. An
// explicit "N years of experience" phrase wins; the first occurrence is used.
// Without one, seniority wording decides, and a flat 25 is the floor so
// resumes that omit seniority language are not zeroed out.
func DetectExperienceLevel(resumeText string) float64 {
	text := strings.ToLower(resumeText)

	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case years >= 10:
				return 100.0
			case years >= 7:
				return 85.0
			case years >= 5:
				return 70.0
			case years >= 3:
				return 55.0
			case years >= 1:
				return 40.0
			}
		}
	}

	if containsAny(text, "senior", "lead", "manager", "director") {
		return 80.0
	}
	if containsAny(text, "mid-level", "intermediate", "experienced") {
		return 60.0
	}
	if containsAny(text, "junior", "entry-level", "graduate") {
		return 30.0
	}

	return 25.0
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
