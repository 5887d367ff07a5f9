package furi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kanahighlight/model"
)

func entry(surface, furigana string, class model.ReadingClass) model.RenderEntry {
	return model.RenderEntry{Surface: surface, Furigana: furigana, Class: class}
}

func numEntry(surface, furigana string, class model.ReadingClass) model.RenderEntry {
	e := entry(surface, furigana, class)
	e.IsNumeral = true
	return e
}

var tagged = Options{WithTags: true, OnyomiToKatakana: true}
var taggedMerged = Options{WithTags: true, MergeConsecutive: true, OnyomiToKatakana: true}

func TestRenderOnyomiCompound(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		entry("漢", "かん", model.ClassOnyomi),
		entry("字", "じ", model.ClassOnyomi),
	}}
	assert.Equal(t, "<on> 漢[カン]</on><on> 字[ジ]</on>", Render(w, Furigana, tagged))
	assert.Equal(t, "<on> 漢字[カンジ]</on>", Render(w, Furigana, taggedMerged))
	assert.Equal(t, "<on> カン[漢]</on><on> ジ[字]</on>", Render(w, Furikanji, tagged))
	assert.Equal(t, "<on>カン</on><on>ジ</on>", Render(w, KanaOnly, tagged))
}

func TestRenderUntagged(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		entry("漢", "かん", model.ClassOnyomi),
		entry("字", "じ", model.ClassOnyomi),
	}}
	opts := Options{OnyomiToKatakana: true, MergeConsecutive: true}
	assert.Equal(t, " 漢字[カンジ]", Render(w, Furigana, opts))
}

func TestRenderHighlight(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		{Surface: "漢", Furigana: "かん", Class: model.ClassOnyomi, Highlighted: true},
		entry("字", "じ", model.ClassOnyomi),
	}}
	assert.Equal(t, "<b><on> 漢[カン]</on></b><on> 字[ジ]</on>", Render(w, Furigana, tagged))
	// Differing highlight blocks the merge even when merging is on.
	assert.Equal(t, "<b><on> 漢[カン]</on></b><on> 字[ジ]</on>", Render(w, Furigana, taggedMerged))
}

func TestRenderDifferentClassesDoNotMerge(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		entry("友", "とも", model.ClassKunyomi),
		entry("達", "だち", model.ClassOnyomi),
	}}
	opts := Options{WithTags: true, MergeConsecutive: true}
	assert.Equal(t, "<kun> 友[とも]</kun><on> 達[だち]</on>", Render(w, Furigana, opts))
}

func TestRenderJukujikunMerge(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		entry("大", "おと", model.ClassJukujikun),
		entry("人", "な", model.ClassJukujikun),
	}}
	assert.Equal(t, "<juk> 大[おと]</juk><juk> 人[な]</juk>", Render(w, Furigana, tagged))
	assert.Equal(t, "<juk> 大人[おとな]</juk>", Render(w, Furigana, taggedMerged))
	assert.Equal(t, "<juk>おとな</juk>", Render(w, KanaOnly, taggedMerged))
}

func TestRenderRepeaterAlwaysMerges(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		entry("人", "ひと", model.ClassKunyomi),
		entry("々", "びと", model.ClassKunyomi),
	}}
	opts := Options{WithTags: true}
	assert.Equal(t, "<kun> 人々[ひとびと]</kun>", Render(w, Furigana, opts))
}

func TestRenderNumeralContinuation(t *testing.T) {
	// ４０ expands to 四十: kun よん plus on じゅっ; the continuation entry
	// carries no surface of its own.
	w := Word{Entries: []model.RenderEntry{
		numEntry("40", "よん", model.ClassKunyomi),
		numEntry("", "じゅっ", model.ClassOnyomi),
		entry("分", "ぷん", model.ClassOnyomi),
	}}
	opts := Options{WithTags: true}
	assert.Equal(t, "<mix> 40[よんじゅっ]</mix><on> 分[ぷん]</on>", Render(w, Furigana, opts))
	assert.Equal(t, "<mix> よんじゅっ[40]</mix><on> ぷん[分]</on>", Render(w, Furikanji, opts))
	// kana-only keeps the components apart so each keeps its own class.
	assert.Equal(t, "<kun>よん</kun><on>じゅっ</on><on>ぷん</on>", Render(w, KanaOnly, opts))

	merged := Options{WithTags: true, MergeConsecutive: true}
	assert.Equal(t, "<mix> 40[よんじゅっ]</mix><on> 分[ぷん]</on>", Render(w, Furigana, merged))
	assert.Equal(t, "<kun>よん</kun><on>じゅっぷん</on>", Render(w, KanaOnly, merged))
}

func TestRenderNumeralSameClass(t *testing.T) {
	w := Word{Entries: []model.RenderEntry{
		numEntry("11", "じゅういっ", model.ClassOnyomi),
		entry("個", "こ", model.ClassOnyomi),
	}}
	opts := Options{WithTags: true}
	assert.Equal(t, "<on> 11[じゅういっ]</on><on> 個[こ]</on>", Render(w, Furigana, opts))

	merged := Options{WithTags: true, MergeConsecutive: true}
	assert.Equal(t, "<on> 11個[じゅういっこ]</on>", Render(w, Furigana, merged))
	assert.Equal(t, "<on> じゅういっこ[11個]</on>", Render(w, Furikanji, merged))
}

func TestRenderLongNumeralBecomesMixed(t *testing.T) {
	// 111 converts to 百十一, three kanji numerals, too long to label with
	// a single reading class.
	w := Word{Entries: []model.RenderEntry{
		numEntry("111", "ひゃくじゅういち", model.ClassOnyomi),
	}}
	opts := Options{WithTags: true}
	assert.Equal(t, "<mix> 111[ひゃくじゅういち]</mix>", Render(w, Furigana, opts))
	assert.Equal(t, "<on>ひゃくじゅういち</on>", Render(w, KanaOnly, opts),
		"kana-only keeps the original class")
}

func TestRenderOkuriganaInsideHighlight(t *testing.T) {
	w := Word{
		Entries: []model.RenderEntry{
			{Surface: "引", Furigana: "ひ", Class: model.ClassKunyomi, Highlighted: true},
		},
		Okurigana: "く",
		RestKana:  "と",
	}
	assert.Equal(t, "<b><kun> 引[ひ]</kun><oku>く</oku></b>と", Render(w, Furigana, tagged))
}

func TestRenderSuruOkuriganaOutsideHighlight(t *testing.T) {
	w := Word{
		Entries: []model.RenderEntry{
			entry("勉", "べん", model.ClassOnyomi),
			{Surface: "強", Furigana: "きょう", Class: model.ClassOnyomi, Highlighted: true},
		},
		Okurigana: "しません",
		SuruVerb:  true,
	}
	assert.Equal(t,
		"<on> 勉[ベン]</on><b><on> 強[キョウ]</on></b><oku>しません</oku>",
		Render(w, Furigana, tagged))

	include := tagged
	include.IncludeSuruOkuri = true
	assert.Equal(t,
		"<on> 勉[ベン]</on><b><on> 強[キョウ]</on><oku>しません</oku></b>",
		Render(w, Furigana, include))
}

func TestRenderOkuriganaAfterUnhighlightedWord(t *testing.T) {
	w := Word{
		Entries:   []model.RenderEntry{entry("読", "よ", model.ClassKunyomi)},
		Okurigana: "みかた",
		RestKana:  "を",
	}
	assert.Equal(t, "<kun> 読[よ]</kun><oku>みかた</oku>を", Render(w, Furigana, tagged))
	assert.Equal(t, " 読[よ]みかたを", Render(w, Furigana, Options{}))
}

func TestRenderKatakanaReadingRestored(t *testing.T) {
	w := Word{
		Entries: []model.RenderEntry{
			entry("珈", "こー", model.ClassJukujikun),
			entry("琲", "ひー", model.ClassJukujikun),
		},
		Katakana: true,
	}
	assert.Equal(t, "<juk> 珈琲[コーヒー]</juk>", Render(w, Furigana, taggedMerged))
}

func TestRenderAbsorbsEmptyReading(t *testing.T) {
	// More kanji than mora in the input; the empty entry folds into its
	// neighbor instead of rendering empty brackets.
	w := Word{Entries: []model.RenderEntry{
		entry("大", "おおき", model.ClassKunyomi),
		entry("人", "", model.ClassKunyomi),
	}}
	assert.Equal(t, "<kun> 大人[おおき]</kun>", Render(w, Furigana, Options{WithTags: true}))
}
