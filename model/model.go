// Package model holds the value types shared by the furigana alignment
// pipeline: reading classification enums, per-kanji match results, whole-word
// alignments and the renderable units the reconstructor consumes.
package model

// ReadingClass classifies how a kanji's furigana portion relates to its
// dictionary readings.
type ReadingClass int

const (
	ClassOnyomi ReadingClass = iota
	ClassKunyomi
	ClassJukujikun
	// ClassMixed marks merged spans whose members disagree, e.g. a long
	// numeral run combining kun and on digit readings.
	ClassMixed
)

func (c ReadingClass) String() string {
	switch c {
	case ClassOnyomi:
		return "onyomi"
	case ClassKunyomi:
		return "kunyomi"
	case ClassJukujikun:
		return "jukujikun"
	case ClassMixed:
		return "mixed"
	}
	return "unknown"
}

// Tag returns the markup tag name for the class.
func (c ReadingClass) Tag() string {
	switch c {
	case ClassOnyomi:
		return "on"
	case ClassKunyomi:
		return "kun"
	case ClassJukujikun:
		return "juk"
	case ClassMixed:
		return "mix"
	}
	return "mix"
}

// ReadingVariant records which phonetic transformation turned a dictionary
// reading into the surface form found in the furigana.
type ReadingVariant int

const (
	VariantPlain ReadingVariant = iota
	VariantRendaku
	VariantSmallTsu
	VariantRendakuSmallTsu
	VariantVowelChange
	VariantNChange
)

func (v ReadingVariant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantRendaku:
		return "rendaku"
	case VariantSmallTsu:
		return "small_tsu"
	case VariantRendakuSmallTsu:
		return "rendaku_small_tsu"
	case VariantVowelChange:
		return "vowel_change"
	case VariantNChange:
		return "n_change"
	}
	return "unknown"
}

// ReadingMatchInfo describes a successful reading match for one kanji.
type ReadingMatchInfo struct {
	// MatchedMora is the furigana portion that matched, post-transformation.
	MatchedMora string
	// DictForm is the original dictionary reading, keeping the kunyomi
	// inflection marker (e.g. "ひ.く") regardless of which variant matched.
	DictForm string
	Class    ReadingClass
	Variant  ReadingVariant
	Kanji    rune
	// Okurigana and RestKana are filled for the last kanji of a word once
	// the inflection detector has split the trailing kana.
	Okurigana string
	RestKana  string
}

// PositionResult is the per-kanji outcome of the alignment search: either a
// match or an explicitly unmatched (jukujikun) position.
type PositionResult struct {
	Info    ReadingMatchInfo
	Matched bool
}

// MatchedPosition wraps a match result.
func MatchedPosition(info ReadingMatchInfo) PositionResult {
	return PositionResult{Info: info, Matched: true}
}

// UnmatchedPosition marks a kanji position no dictionary reading covers.
func UnmatchedPosition() PositionResult {
	return PositionResult{}
}

// MoraAlignment is the result of aligning a whole word's furigana to its
// kanji. Values are never mutated after construction; the jukujikun
// processor derives patched copies via WithPosition.
type MoraAlignment struct {
	// PerKanji has exactly one entry per kanji position of the word.
	PerKanji []PositionResult
	// Partition holds the mora subsequences assigned to each position;
	// the concatenation of all groups is the full mora list.
	Partition [][]string
	// Unmatched lists the indices whose PerKanji entry is unmatched,
	// in ascending order.
	Unmatched []int
	Complete  bool
	// TrailingOkurigana/TrailingRest split the kana following the word.
	TrailingOkurigana string
	TrailingRest      string
	// SuruVerb is set when the trailing okurigana is a suru-compound
	// inflection; the reconstructor uses it for highlight placement.
	SuruVerb bool
}

// WithPosition returns a copy of the alignment with position i filled in and
// removed from the unmatched set. The receiver is left untouched.
func (a MoraAlignment) WithPosition(i int, info ReadingMatchInfo) MoraAlignment {
	out := a
	out.PerKanji = make([]PositionResult, len(a.PerKanji))
	copy(out.PerKanji, a.PerKanji)
	out.PerKanji[i] = MatchedPosition(info)
	out.Unmatched = make([]int, 0, len(a.Unmatched))
	for _, pos := range a.Unmatched {
		if pos != i {
			out.Unmatched = append(out.Unmatched, pos)
		}
	}
	out.Complete = len(out.Unmatched) == 0
	return out
}

// MoraString returns the joined mora group at position i.
func (a MoraAlignment) MoraString(i int) string {
	if i < 0 || i >= len(a.Partition) {
		return ""
	}
	s := ""
	for _, m := range a.Partition[i] {
		s += m
	}
	return s
}

// WordToken is the externally supplied unit of work.
type WordToken struct {
	// Word is the kanji/digit/repeater surface form.
	Word string
	// Reading is the kana reading covering the whole word.
	Reading string
	// TrailingKana is the kana run immediately following the word.
	TrailingKana string
	// Highlight selects the kanji whose span gets bolded; zero means none.
	Highlight rune
}

// RenderEntry is one renderable unit after alignment.
type RenderEntry struct {
	// Surface is the kanji text of the unit; numeral entries keep the
	// original digit spelling.
	Surface     string
	Furigana    string
	Class       ReadingClass
	IsNumeral   bool
	Highlighted bool
}

// OkuriType states how confidently trailing kana was split into okurigana.
type OkuriType int

const (
	NoOkuri OkuriType = iota
	FullOkuri
	PartialOkuri
	DetectedOkuri
)

// OkuriResult is the outcome of inflection detection on trailing kana.
type OkuriResult struct {
	// Okurigana is the inflected tail belonging to the matched reading.
	Okurigana string
	// Rest is everything after the okurigana.
	Rest string
	// VerbLike is set for suru-compound inflections of noun/adverb heads.
	VerbLike bool
	Type     OkuriType
}
