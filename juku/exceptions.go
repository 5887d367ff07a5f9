// Package juku resolves kanji positions the alignment search could not match:
// known non-compositional readings come from a curated exception table, and
// everything else gets the unassigned mora redistributed evenly.
package juku

import "kanahighlight/model"

// ExceptionEntry assigns one kanji position of an exception word its reading
// class and mora portion.
type ExceptionEntry struct {
	Class model.ReadingClass
	Mora  string
}

// ExceptionRecord maps one (word, furigana) pair to its hand-specified
// per-kanji assignment. Entries has exactly one item per kanji of Word.
type ExceptionRecord struct {
	Word     string
	Furigana string
	Entries  []ExceptionEntry
}

// ExceptionTable is the static collaborator listing readings the general
// algorithm cannot derive from per-kanji dictionary data.
type ExceptionTable []ExceptionRecord

// DefaultExceptions returns the built-in exception table.
func DefaultExceptions() ExceptionTable {
	return ExceptionTable{
		{"麻雀", "まーじゃん", []ExceptionEntry{
			{model.ClassJukujikun, "まー"},
			{model.ClassJukujikun, "じゃん"},
		}},
		{"菠薐草", "ほうれんそう", []ExceptionEntry{
			{model.ClassJukujikun, "ほう"},
			{model.ClassJukujikun, "れん"},
			{model.ClassOnyomi, "そう"},
		}},
		{"菠薐", "ほうれん", []ExceptionEntry{
			{model.ClassJukujikun, "ほう"},
			{model.ClassJukujikun, "れん"},
		}},
		// 清々しい reads すがすが despite neither kanji carrying that kunyomi.
		{"清々", "すがすが", []ExceptionEntry{
			{model.ClassJukujikun, "すが"},
			{model.ClassJukujikun, "すが"},
		}},
		{"田圃", "たんぼ", []ExceptionEntry{
			{model.ClassJukujikun, "たん"},
			{model.ClassOnyomi, "ぼ"},
		}},
		{"袋小路", "ふくろこうじ", []ExceptionEntry{
			{model.ClassKunyomi, "ふくろ"},
			{model.ClassJukujikun, "こう"},
			{model.ClassKunyomi, "じ"},
		}},
		// しっぽ is kunyomi on both sides, but the ぽ realization is not
		// derivable from 尾's dictionary readings.
		{"尻尾", "しっぽ", []ExceptionEntry{
			{model.ClassKunyomi, "しっ"},
			{model.ClassKunyomi, "ぽ"},
		}},
		// Both kanji have かぜ-adjacent kunyomi, yet the compound reading is
		// assigned to the word as a whole.
		{"風邪", "かぜ", []ExceptionEntry{
			{model.ClassJukujikun, "か"},
			{model.ClassJukujikun, "ぜ"},
		}},
		{"薔薇", "ばら", []ExceptionEntry{
			{model.ClassJukujikun, "ば"},
			{model.ClassJukujikun, "ら"},
		}},
		{"真面目", "まじめ", []ExceptionEntry{
			{model.ClassJukujikun, "ま"},
			{model.ClassJukujikun, "じ"},
			{model.ClassKunyomi, "め"},
		}},
		{"蕎麦", "そば", []ExceptionEntry{
			{model.ClassJukujikun, "そ"},
			{model.ClassJukujikun, "ば"},
		}},
		{"襤褸", "ぼろ", []ExceptionEntry{
			{model.ClassJukujikun, "ぼ"},
			{model.ClassJukujikun, "ろ"},
		}},
		// 愈 alone reads いよいよ; the repeated spelling keeps that reading.
		{"愈々", "いよいよ", []ExceptionEntry{
			{model.ClassKunyomi, "いよ"},
			{model.ClassKunyomi, "いよ"},
		}},
		// The shortened spelling whose furigana does not fully repeat.
		{"蝶々", "ちょうちょ", []ExceptionEntry{
			{model.ClassOnyomi, "ちょう"},
			{model.ClassOnyomi, "ちょ"},
		}},
	}
}

// Lookup returns the hand-specified alignment for an exact (word, furigana)
// pair. The resulting alignment is complete; jukujikun entries surface as
// matched positions with ClassJukujikun.
func (t ExceptionTable) Lookup(word, furigana string) (model.MoraAlignment, bool) {
	for _, rec := range t {
		if rec.Word != word || rec.Furigana != furigana {
			continue
		}
		runes := []rune(word)
		a := model.MoraAlignment{
			PerKanji:  make([]model.PositionResult, len(rec.Entries)),
			Partition: make([][]string, len(rec.Entries)),
			Complete:  true,
		}
		for i, entry := range rec.Entries {
			a.PerKanji[i] = model.MatchedPosition(model.ReadingMatchInfo{
				MatchedMora: entry.Mora,
				DictForm:    entry.Mora,
				Class:       entry.Class,
				Variant:     model.VariantPlain,
				Kanji:       runes[i],
			})
			a.Partition[i] = []string{entry.Mora}
		}
		return a, true
	}
	return model.MoraAlignment{}, false
}
