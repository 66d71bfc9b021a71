// Package taxonomy holds the curated catalog of technical skills, soft
// skills, and industry terms the scoring engine matches against. The catalog
// ships embedded as YAML and can be replaced by an external file at startup
// or at runtime; a loaded Taxonomy is immutable.
package taxonomy

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"atscore/internal/errors"
)

//go:embed taxonomy.yaml
var embeddedCatalog []byte

// catalogFile mirrors the YAML layout of a taxonomy file.
type catalogFile struct {
	Technical   map[string][]string `yaml:"technical"`
	Soft        []string            `yaml:"soft"`
	Industries  map[string][]string `yaml:"industries"`
	CommonWords []string            `yaml:"common_words"`
}

// Taxonomy is the immutable skill catalog used for keyword matching.
type Taxonomy struct {
	technical   map[string][]string
	techOrder   []string
	soft        []string
	industries  map[string][]string
	indOrder    []string
	commonWords map[string]struct{}
}

// Default returns the taxonomy built from the embedded catalog. The embedded
// data is validated at build time by tests, so a parse failure here means a
// corrupted binary.
func Default() (*Taxonomy, error) {
	return parse(embeddedCatalog)
}

// LoadFile reads a taxonomy override from a YAML file on disk.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"cannot read taxonomy file", err).WithContext("path", path)
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeTaxonomyLoad,
			"cannot parse taxonomy YAML", err)
	}
	if len(cf.Technical) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeTaxonomyLoad,
			"taxonomy has no technical skill categories", nil)
	}

	t := &Taxonomy{
		technical:   make(map[string][]string, len(cf.Technical)),
		soft:        append([]string(nil), cf.Soft...),
		industries:  make(map[string][]string, len(cf.Industries)),
		commonWords: make(map[string]struct{}, len(cf.CommonWords)),
	}
	for cat, skills := range cf.Technical {
		t.technical[cat] = append([]string(nil), skills...)
		t.techOrder = append(t.techOrder, cat)
	}
	sort.Strings(t.techOrder)
	for industry, terms := range cf.Industries {
		t.industries[industry] = append([]string(nil), terms...)
		t.indOrder = append(t.indOrder, industry)
	}
	sort.Strings(t.indOrder)
	for _, w := range cf.CommonWords {
		t.commonWords[strings.ToLower(w)] = struct{}{}
	}
	return t, nil
}

// TechnicalCategories returns the technical category names in sorted order.
func (t *Taxonomy) TechnicalCategories() []string {
	return append([]string(nil), t.techOrder...)
}

// TechnicalSkills returns the skill list for one technical category.
func (t *Taxonomy) TechnicalSkills(category string) []string {
	return append([]string(nil), t.technical[category]...)
}

// AllTechnicalSkills returns every technical skill across all categories, in
// category order. Skills listed under more than one category appear once per
// listing; keyword density counts rely on that.
func (t *Taxonomy) AllTechnicalSkills() []string {
	var all []string
	for _, cat := range t.techOrder {
		all = append(all, t.technical[cat]...)
	}
	return all
}

// SoftSkills returns the soft skill list.
func (t *Taxonomy) SoftSkills() []string {
	return append([]string(nil), t.soft...)
}

// Industries returns the industry names in sorted order.
func (t *Taxonomy) Industries() []string {
	return append([]string(nil), t.indOrder...)
}

// IndustryTerms returns the keyword list for one industry.
func (t *Taxonomy) IndustryTerms(industry string) []string {
	return append([]string(nil), t.industries[industry]...)
}

// AllIndustryTerms returns every industry keyword across all industries.
func (t *Taxonomy) AllIndustryTerms() []string {
	var all []string
	for _, industry := range t.indOrder {
		all = append(all, t.industries[industry]...)
	}
	return all
}

// IsCommonWord reports whether a lowercased word is on the generic-language
// deny list and should be excluded from keyword candidates.
func (t *Taxonomy) IsCommonWord(word string) bool {
	_, ok := t.commonWords[word]
	return ok
}
