package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanahighlight/kana"
	"kanahighlight/kanji"
	"kanahighlight/model"
	"kanahighlight/okuri"
)

func newTestSearcher() *Searcher {
	return NewSearcher(newTestMatcher(), 0)
}

func alignWord(t *testing.T, s *Searcher, word, reading, trailing string) model.MoraAlignment {
	t.Helper()
	runes := []rune(word)
	mora, _ := kana.SplitMora(reading, len(runes))
	return s.Align(runes, mora, trailing, trailing != "")
}

func TestAlignOnyomiCompound(t *testing.T) {
	s := newTestSearcher()
	a := alignWord(t, s, "漢字", "かんじ", "")

	require.True(t, a.Complete)
	require.Len(t, a.PerKanji, 2)
	assert.Equal(t, "かん", a.PerKanji[0].Info.MatchedMora)
	assert.Equal(t, "じ", a.PerKanji[1].Info.MatchedMora)
	assert.Equal(t, model.ClassOnyomi, a.PerKanji[0].Info.Class)
	assert.Equal(t, model.ClassOnyomi, a.PerKanji[1].Info.Class)
	assert.Equal(t, model.VariantPlain, a.PerKanji[0].Info.Variant)
}

func TestAlignGemination(t *testing.T) {
	s := newTestSearcher()
	a := alignWord(t, s, "一見", "いっけん", "")

	require.True(t, a.Complete)
	assert.Equal(t, "いっ", a.PerKanji[0].Info.MatchedMora)
	assert.Equal(t, model.VariantSmallTsu, a.PerKanji[0].Info.Variant)
	assert.Equal(t, "けん", a.PerKanji[1].Info.MatchedMora)
	assert.Equal(t, model.VariantPlain, a.PerKanji[1].Info.Variant)
}

func TestAlignRepeaterWithRendaku(t *testing.T) {
	s := newTestSearcher()
	a := alignWord(t, s, "人々", "ひとびと", "")

	require.True(t, a.Complete, "repeater words must never fall through to jukujikun")
	require.Len(t, a.PerKanji, 2)
	assert.Equal(t, "ひと", a.PerKanji[0].Info.MatchedMora)
	assert.Equal(t, "びと", a.PerKanji[1].Info.MatchedMora)
	assert.Equal(t, a.PerKanji[0].Info.DictForm, a.PerKanji[1].Info.DictForm,
		"the repeater reuses the first occurrence's reading")
	assert.Equal(t, rune('々'), a.PerKanji[1].Info.Kanji)
}

func TestAlignRepeaterRejectsUnevenSplits(t *testing.T) {
	word := []rune("人々")
	groups := []string{"ひ", "とびと"}
	assert.False(t, validSplitForRepeaters(word, groups))
	assert.True(t, validSplitForRepeaters(word, []string{"ひと", "びと"}))
}

func TestAlignJukujikunFallback(t *testing.T) {
	s := newTestSearcher()
	a := alignWord(t, s, "大人", "おとな", "")

	assert.False(t, a.Complete)
	assert.Equal(t, []int{0, 1}, a.Unmatched)
	assert.False(t, a.PerKanji[0].Matched)
	assert.False(t, a.PerKanji[1].Matched)
}

func TestAlignPartialKeepsBestMatch(t *testing.T) {
	s := newTestSearcher()
	// 字 matches じ but 大 matches nothing in おおじ... the partial result
	// must keep the position that did match.
	a := alignWord(t, s, "仮字", "かりじ", "")

	assert.False(t, a.Complete)
	require.Len(t, a.PerKanji, 2)
	assert.False(t, a.PerKanji[0].Matched, "仮 is not in the dictionary")
	assert.True(t, a.PerKanji[1].Matched)
	assert.Equal(t, "じ", a.PerKanji[1].Info.MatchedMora)
	assert.Equal(t, []int{0}, a.Unmatched)
}

func TestAlignLastKanjiOkurigana(t *testing.T) {
	s := newTestSearcher()
	a := alignWord(t, s, "引", "ひ", "く")

	require.True(t, a.Complete)
	assert.Equal(t, "ひ.く", a.PerKanji[0].Info.DictForm)
	assert.Equal(t, "く", a.TrailingOkurigana)
	assert.Empty(t, a.TrailingRest)
}

func TestAlignEmptyWord(t *testing.T) {
	s := newTestSearcher()
	a := s.Align(nil, nil, "", false)
	assert.True(t, a.Complete)
	assert.Empty(t, a.PerKanji)
}

func TestAlignPartitionCap(t *testing.T) {
	capped := NewSearcher(newTestMatcher(), 1)
	runes := []rune("人見")
	mora, _ := kana.SplitMora("ひとみ", len(runes))
	// The complete split ひと/み is the second candidate; with the cap at
	// one partition the search must settle for a partial alignment.
	a := capped.Align(runes, mora, "", false)
	assert.False(t, a.Complete)

	full := NewSearcher(newTestMatcher(), 0)
	a = full.Align(runes, mora, "", false)
	assert.True(t, a.Complete)
	assert.Equal(t, "ひと", a.PerKanji[0].Info.MatchedMora)
	assert.Equal(t, "み", a.PerKanji[1].Info.MatchedMora)
}

func TestAlignYoonBoundaryRepair(t *testing.T) {
	// Synthetic entries that only align once the small kana crosses the
	// boundary: きし + ょ instead of き + しょ.
	dict := kanji.Dict{
		'岸': {Kunyomi: []string{"き", "きし"}},
		'拗': {Kunyomi: []string{"ょ"}},
	}
	m := NewMatcher(dict, okuri.NewDetector(emptyAnalyzer{}))
	s := NewSearcher(m, 0)

	mora, _ := kana.SplitMora("きしょ", 2)
	require.Equal(t, []string{"き", "しょ"}, mora)

	a := s.Align([]rune("岸拗"), mora, "", false)
	require.True(t, a.Complete)
	assert.Equal(t, "きし", a.PerKanji[0].Info.MatchedMora)
	assert.Equal(t, "ょ", a.PerKanji[1].Info.MatchedMora)
}

func TestAlignMoraRoundTrip(t *testing.T) {
	for _, reading := range []string{"かんじ", "いっけん", "ひとびと", "しょっちゅう", "コーヒー", "ん"} {
		mora, _ := kana.SplitMora(reading, 0)
		joined := ""
		for _, m := range mora {
			joined += m
		}
		assert.Equal(t, kana.ToHiragana(reading), joined, "mora join must reproduce %q", reading)
	}
}
