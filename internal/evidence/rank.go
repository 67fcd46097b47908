package evidence

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// TopK is the number of ranked records kept for summarization. Runs with
// fewer records keep whatever evidence exists.
const TopK = 5

// Rank scores each record by cosine similarity between its title vector and
// the query text vector in a TF-IDF space fitted on the record titles, then
// returns the top k records sorted by descending relevance. Ties keep input
// order, so output is deterministic for a fixed evidence set. An all-zero
// similarity corpus is legitimate (the query shares no vocabulary with the
// titles) and preserves input order.
func Rank(records []Record, queryText string, k int) []Record {
	docs := make([][]string, len(records))
	df := make(map[string]int)
	for i, r := range records {
		docs[i] = tokenize(r.Title)
		for _, t := range uniqueTokens(docs[i]) {
			df[t]++
		}
	}

	// Smooth inverse document frequency: ln((1+n)/(1+df)) + 1.
	n := len(records)
	idf := make(map[string]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	// The query is transformed against the fitted vocabulary; query terms
	// absent from every title are ignored.
	qvec := vectorize(tokenize(queryText), idf)

	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		out[i].Relevance = cosine(qvec, vectorize(docs[i], idf))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// tokenize lowercases the text, splits on non-alphanumeric runes, and drops
// single-character tokens and English stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		toks = append(toks, f)
	}
	return toks
}

func uniqueTokens(toks []string) []string {
	seen := make(map[string]struct{}, len(toks))
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// vectorize builds an l2-normalized term-frequency*idf vector over the
// fitted vocabulary. Tokens outside the vocabulary contribute nothing.
func vectorize(toks []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range toks {
		w, ok := idf[t]
		if !ok {
			continue
		}
		vec[t] += w
	}

	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for t := range vec {
		vec[t] /= norm
	}
	return vec
}

// cosine of two l2-normalized sparse vectors is their dot product.
func cosine(a, b map[string]float64) float64 {
	var dot float64
	for t, wa := range a {
		dot += wa * b[t]
	}
	return dot
}
