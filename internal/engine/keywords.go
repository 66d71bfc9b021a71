package engine

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"

	"atscore/internal/taxonomy"
)

// Category selects which taxonomy subsets a keyword extraction searches.
type Category string

const (
	CategoryRequired  Category = "required"
	CategoryPreferred Category = "preferred"
	CategoryIndustry  Category = "industry"
	CategorySoft      Category = "soft"
)

// ExtractionBackend finds canonical taxonomy terms in free text. Extraction
// yields an empty set rather than an error when nothing matches; an error
// signals the backend itself could not process the text.
type ExtractionBackend interface {
	Extract(text string, category Category) ([]string, error)
	Name() string
}

// matcher holds the taxonomy flattened into the shapes extraction needs.
type matcher struct {
	tax       *taxonomy.Taxonomy
	techLists [][]string
	techFlat  []string
	soft      []string
	indLists  [][]string
}

func newMatcher(tax *taxonomy.Taxonomy) *matcher {
	m := &matcher{tax: tax, soft: tax.SoftSkills()}
	for _, cat := range tax.TechnicalCategories() {
		m.techLists = append(m.techLists, tax.TechnicalSkills(cat))
	}
	m.techFlat = tax.AllTechnicalSkills()
	for _, industry := range tax.Industries() {
		m.indLists = append(m.indLists, tax.IndustryTerms(industry))
	}
	return m
}

// wordBoundaryMatch reports whether a candidate term counts as a mention of a
// taxonomy skill. Checked in priority order: skill as a whole word inside the
// term, term as a whole word inside the skill, exact equality, then skill
// (longer than 2 runes) embedded in one space-delimited word of the term with
// a length difference of at most 2. Single-rune skills never match; that
// keeps "r" from firing inside "remote".
func wordBoundaryMatch(term, skill string) bool {
	term = strings.ToLower(term)
	skill = strings.ToLower(skill)

	skillLen := utf8.RuneCountInString(skill)
	if skillLen <= 1 {
		return false
	}

	if containsWholeWord(term, skill) {
		return true
	}
	if containsWholeWord(skill, term) {
		return true
	}
	if term == skill {
		return true
	}

	if skillLen > 2 && strings.Contains(term, skill) {
		for _, part := range strings.Fields(term) {
			if strings.Contains(part, skill) && utf8.RuneCountInString(part)-skillLen <= 2 {
				return true
			}
		}
	}

	return false
}

// filterByCategory maps raw candidate terms to canonical taxonomy keywords.
// Each term may contribute at most one skill per taxonomy list. The nestjs
// alias applies only in the required branch: a nestjs mention also implies
// node.js.
func (m *matcher) filterByCategory(terms []string, category Category) []string {
	var keywords []string

	switch category {
	case CategoryRequired:
		for _, term := range terms {
			for _, skills := range m.techLists {
				for _, skill := range skills {
					if wordBoundaryMatch(term, skill) {
						keywords = append(keywords, strings.ToLower(skill))
						break
					}
				}
			}
			if strings.Contains(strings.ToLower(term), "nestjs") && !slices.Contains(keywords, "node.js") {
				keywords = append(keywords, "node.js")
			}
		}
	case CategoryPreferred:
		for _, term := range terms {
			for _, skills := range m.techLists {
				for _, skill := range skills {
					if wordBoundaryMatch(term, skill) {
						keywords = append(keywords, strings.ToLower(skill))
						break
					}
				}
			}
			for _, skill := range m.soft {
				if wordBoundaryMatch(term, skill) {
					keywords = append(keywords, strings.ToLower(skill))
					break
				}
			}
		}
	case CategoryIndustry:
		for _, term := range terms {
			for _, industryTerms := range m.indLists {
				for _, it := range industryTerms {
					if wordBoundaryMatch(term, it) {
						keywords = append(keywords, strings.ToLower(it))
						break
					}
				}
			}
		}
	case CategorySoft:
		for _, term := range terms {
			for _, skill := range m.soft {
				if wordBoundaryMatch(term, skill) {
					keywords = append(keywords, strings.ToLower(skill))
					break
				}
			}
		}
	}

	return sortedUnique(keywords)
}

// FallbackBackend finds skills by literal substring scan of punctuation-
// stripped, lowercased text. Cheap and lower precision: taxonomy terms that
// carry punctuation (node.js, c++) can never match because normalization
// removes it from the text.
type FallbackBackend struct {
	m *matcher
}

// NewFallbackBackend builds the substring-scan extraction backend.
func NewFallbackBackend(tax *taxonomy.Taxonomy) *FallbackBackend {
	return &FallbackBackend{m: newMatcher(tax)}
}

func (b *FallbackBackend) Name() string { return "fallback" }

func (b *FallbackBackend) Extract(text string, category Category) ([]string, error) {
	normalized := normalizeText(text)

	var keywords []string
	scan := func(skills []string) {
		for _, skill := range skills {
			if strings.Contains(normalized, strings.ToLower(skill)) {
				keywords = append(keywords, strings.ToLower(skill))
			}
		}
	}

	switch category {
	case CategoryRequired:
		scan(b.m.techFlat)
	case CategoryPreferred:
		scan(b.m.techFlat)
		scan(b.m.soft)
	case CategoryIndustry:
		for _, terms := range b.m.indLists {
			scan(terms)
		}
	case CategorySoft:
		scan(b.m.soft)
	}

	return sortedUnique(keywords), nil
}

// LinguisticBackend builds candidate terms from part-of-speech tagged tokens,
// short noun phrases, and named entities, then filters them against the
// taxonomy with word-boundary matching.
type LinguisticBackend struct {
	m *matcher
}

// NewLinguisticBackend builds the tagger-based extraction backend. The tagger
// model loads lazily inside prose on first use and is reused across calls.
func NewLinguisticBackend(tax *taxonomy.Taxonomy) *LinguisticBackend {
	return &LinguisticBackend{m: newMatcher(tax)}
}

func (b *LinguisticBackend) Name() string { return "linguistic" }

func (b *LinguisticBackend) Extract(text string, category Category) ([]string, error) {
	doc, err := prose.NewDocument(strings.ToLower(text))
	if err != nil {
		return nil, err
	}

	terms := b.candidateTokens(doc)
	terms = append(terms, b.nounPhrases(doc)...)
	terms = append(terms, b.namedEntities(doc)...)

	return b.m.filterByCategory(terms, category), nil
}

// candidateTokens keeps noun, proper-noun, and adjective tokens that are not
// generic resume language.
func (b *LinguisticBackend) candidateTokens(doc *prose.Document) []string {
	var terms []string
	for _, tok := range doc.Tokens() {
		word := tok.Text
		if b.m.tax.IsCommonWord(word) || utf8.RuneCountInString(word) < 3 {
			continue
		}
		if _, stop := englishStopWords[word]; stop {
			continue
		}
		if !hasWordRune(word) {
			continue
		}
		if isNounTag(tok.Tag) || isAdjectiveTag(tok.Tag) {
			terms = append(terms, word)
		}
	}
	return terms
}

// nounPhrases chunks contiguous determiner/adjective/noun tag runs that end
// in a noun, then drops phrases that lead with an article, exceed 4 words, or
// contain generic language.
func (b *LinguisticBackend) nounPhrases(doc *prose.Document) []string {
	var phrases []string
	var chunk []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(chunk) > 0 {
			phrases = append(phrases, strings.Join(chunk, " "))
		}
		chunk = chunk[:0]
		hasNoun = false
	}

	for _, tok := range doc.Tokens() {
		switch {
		case isNounTag(tok.Tag):
			chunk = append(chunk, tok.Text)
			hasNoun = true
		case isAdjectiveTag(tok.Tag) || tok.Tag == "DT":
			chunk = append(chunk, tok.Text)
		default:
			flush()
		}
	}
	flush()

	var kept []string
	for _, phrase := range phrases {
		if utf8.RuneCountInString(phrase) <= 2 {
			continue
		}
		if strings.HasPrefix(phrase, "the ") || strings.HasPrefix(phrase, "a ") || strings.HasPrefix(phrase, "an ") {
			continue
		}
		words := strings.Fields(phrase)
		if len(words) > 4 {
			continue
		}
		generic := false
		for _, w := range words {
			if b.m.tax.IsCommonWord(w) {
				generic = true
				break
			}
		}
		if !generic {
			kept = append(kept, phrase)
		}
	}
	return kept
}

// namedEntities keeps person and place entities; organization and product
// mentions usually surface through the token and phrase pools as well.
func (b *LinguisticBackend) namedEntities(doc *prose.Document) []string {
	var terms []string
	for _, ent := range doc.Entities() {
		if utf8.RuneCountInString(ent.Text) <= 2 {
			continue
		}
		if b.m.tax.IsCommonWord(ent.Text) {
			continue
		}
		if ent.Label == "PERSON" || ent.Label == "GPE" {
			terms = append(terms, ent.Text)
		}
	}
	return terms
}

func isNounTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}

func isAdjectiveTag(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS":
		return true
	}
	return false
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if isWordChar(r) {
			return true
		}
	}
	return false
}

func sortedUnique(list []string) []string {
	if len(list) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, v := range list {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
