package i18n

// LabelRow is the slice of a lookup entity (country, city, grade
// level, program type) that label translation needs.
type LabelRow struct {
	Name   string
	NameEn string
}

// TranslateLabel resolves the display name for a raw lookup value
// embedded in entity content. Historical rows store either the
// canonical or the English name, so raw is matched against both
// columns. The function is total: an unmatched value comes back
// unchanged rather than being dropped.
func TranslateLabel(raw string, rows []LabelRow, lang, canonicalLang string) string {
	for _, row := range rows {
		if row.Name != raw && row.NameEn != raw {
			continue
		}
		if lang != canonicalLang && row.NameEn != "" {
			return row.NameEn
		}
		if row.Name != "" {
			return row.Name
		}
		return raw
	}
	return raw
}

// TranslateLabels applies TranslateLabel element-wise across an
// array-typed field such as a program's type or grade-level list.
func TranslateLabels(raw []string, rows []LabelRow, lang, canonicalLang string) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = TranslateLabel(v, rows, lang, canonicalLang)
	}
	return out
}
