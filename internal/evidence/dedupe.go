package evidence

import "strings"

// normalizeTitle collapses case and whitespace so near-identical headlines
// from different sources compare equal.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Dedupe returns the records with at most one record per normalized title,
// keeping the first occurrence in input order. Idempotent:
// Dedupe(Dedupe(x)) == Dedupe(x).
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := normalizeTitle(r.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
