package types

// ScoreInput represents the input for scoring a resume against a job description
type ScoreInput struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
}

// AnalyzeInput represents the input for a resume-only analysis
type AnalyzeInput struct {
	ResumeText string `json:"resume_text"`
}

// KeywordMatchResult holds the matched and missing keywords for one category
type KeywordMatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   float64  `json:"score"` // 0-100
}

// KeywordAnalysis breaks keyword matching down by category
type KeywordAnalysis struct {
	Required   KeywordMatchResult `json:"required"`
	Preferred  KeywordMatchResult `json:"preferred"`
	Industry   KeywordMatchResult `json:"industry"`
	SoftSkills KeywordMatchResult `json:"soft_skills"`
}

// SemanticAnalysis holds the similarity-derived components of the score
type SemanticAnalysis struct {
	JobTitleMatch       float64 `json:"job_title_match"`
	IndustryAlignment   float64 `json:"industry_alignment"`
	ExperienceLevel     float64 `json:"experience_level"`
	ResponsibilityMatch float64 `json:"responsibility_match"`
}

// FormatAnalysis holds the structural quality components of the resume
type FormatAnalysis struct {
	StructureScore      float64 `json:"structure_score"`
	ReadabilityScore    float64 `json:"readability_score"`
	KeywordDensity      float64 `json:"keyword_density"`
	SectionCompleteness float64 `json:"section_completeness"`
}

// ExperienceAnalysis holds the experience relevance components
type ExperienceAnalysis struct {
	YearsOfExperience    float64 `json:"years_of_experience"`
	RelevantExperience   float64 `json:"relevant_experience"`
	ProjectMatch         float64 `json:"project_match"`
	AchievementAlignment float64 `json:"achievement_alignment"`
}

// Improvements groups suggestions by priority tier
type Improvements struct {
	Critical  []string `json:"critical"`
	Important []string `json:"important"`
	Optional  []string `json:"optional"`
}

// ScoreResult is the complete output of a scoring run. Component scores and
// confidence are rounded to one decimal; every numeric field lies in [0,100].
type ScoreResult struct {
	OverallScore       float64            `json:"overall_score"`
	KeywordScore       float64            `json:"keyword_score"`
	SemanticScore      float64            `json:"semantic_score"`
	FormatScore        float64            `json:"format_score"`
	ExperienceScore    float64            `json:"experience_score"`
	KeywordAnalysis    KeywordAnalysis    `json:"keyword_analysis"`
	SemanticAnalysis   SemanticAnalysis   `json:"semantic_analysis"`
	FormatAnalysis     FormatAnalysis     `json:"format_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	Suggestions        []string           `json:"suggestions"`
	Improvements       Improvements       `json:"improvements"`
	Confidence         float64            `json:"confidence"`
}
