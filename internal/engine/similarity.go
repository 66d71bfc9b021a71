package engine

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Similarity returns a lexical similarity in [0,1] between two texts. The
// primary path builds TF-IDF vectors over the two-document corpus (unigrams
// and bigrams of stop-word-filtered tokens, smoothed idf, L2 normalization)
// and returns their cosine. When the shared vocabulary is empty the Jaccard
// overlap of raw word tokens stands in. Either text empty yields 0.0 with no
// vectorization attempted. Symmetric and deterministic.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	featsA := ngramFeatures(a)
	featsB := ngramFeatures(b)
	if len(featsA) == 0 && len(featsB) == 0 {
		return jaccardSimilarity(a, b)
	}

	return cosineTFIDF(featsA, featsB)
}

// ngramFeatures tokenizes lowercased text into word runs of 2+ runes, drops
// English stop words, and emits the remaining unigrams plus adjacent bigrams.
func ngramFeatures(text string) []string {
	tokens := wordTokens(strings.ToLower(text), 2)

	filtered := tokens[:0]
	for _, tok := range tokens {
		if _, stop := englishStopWords[tok]; !stop {
			filtered = append(filtered, tok)
		}
	}

	features := make([]string, 0, 2*len(filtered))
	features = append(features, filtered...)
	for i := 0; i+1 < len(filtered); i++ {
		features = append(features, filtered[i]+" "+filtered[i+1])
	}
	return features
}

// cosineTFIDF computes the cosine of the two documents' TF-IDF vectors.
// idf uses the smoothed form ln((1+n)/(1+df))+1 with n=2 documents.
func cosineTFIDF(featsA, featsB []string) float64 {
	countsA := termCounts(featsA)
	countsB := termCounts(featsB)

	idf := func(term string) float64 {
		df := 0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		return math.Log(3.0/(1.0+float64(df))) + 1.0
	}

	var dot, normA, normB float64
	for term, ca := range countsA {
		w := idf(term)
		va := float64(ca) * w
		normA += va * va
		if cb, ok := countsB[term]; ok {
			dot += va * float64(cb) * w
		}
	}
	for term, cb := range countsB {
		vb := float64(cb) * idf(term)
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termCounts(features []string) map[string]int {
	counts := make(map[string]int, len(features))
	for _, f := range features {
		counts[f]++
	}
	return counts
}

// jaccardSimilarity is the degraded-mode similarity: word-token set overlap
// over set union, 0.0 when the union is empty.
func jaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range wordTokens(strings.ToLower(text), 1) {
		set[tok] = struct{}{}
	}
	return set
}

// runeLen counts code points; score formulas measure text length in runes,
// not bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
