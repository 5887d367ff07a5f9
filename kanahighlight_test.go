package kanahighlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanahighlight/furi"
	"kanahighlight/kanji"
	"kanahighlight/model"
	"kanahighlight/okuri"
)

type scriptedAnalyzer struct {
	script map[string][]okuri.Token
}

func (s *scriptedAnalyzer) Analyze(text string) []okuri.Token {
	return s.script[text]
}

func testDict() kanji.Dict {
	return kanji.Dict{
		'漢': {Onyomi: []string{"カン"}},
		'字': {Onyomi: []string{"ジ"}},
		'一': {Onyomi: []string{"イチ", "イツ"}, Kunyomi: []string{"ひと-", "ひと.つ"}},
		'見': {Onyomi: []string{"ケン"}, Kunyomi: []string{"み.る", "み.える", "み.せる"}},
		'人': {Onyomi: []string{"ジン", "ニン"}, Kunyomi: []string{"ひと"}},
		'大': {Onyomi: []string{"ダイ", "タイ"}, Kunyomi: []string{"おお-", "おお.きい"}},
		'引': {Onyomi: []string{"イン"}, Kunyomi: []string{"ひ.く", "ひ.ける"}},
		'勉': {Onyomi: []string{"ベン"}, Kunyomi: []string{"つと.める"}},
		'強': {Onyomi: []string{"キョウ", "ゴウ"}, Kunyomi: []string{"つよ.い", "し.いる"}},
		'十': {Onyomi: []string{"ジュウ", "ジッ"}, Kunyomi: []string{"とお", "と"}},
		'分': {Onyomi: []string{"フン", "ブン"}, Kunyomi: []string{"わ.ける", "わ.かる"}},
		'口': {Onyomi: []string{"コウ", "ク"}, Kunyomi: []string{"くち"}},
		'調': {Onyomi: []string{"チョウ"}, Kunyomi: []string{"しら.べる", "ととの.う"}},
		'不': {Onyomi: []string{"フ", "フウ", "ブ"}},
		'運': {Onyomi: []string{"ウン"}, Kunyomi: []string{"はこ.ぶ"}},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	az := &scriptedAnalyzer{script: map[string][]okuri.Token{
		"強しません": {
			{Surface: "強", Headword: "強", POS: "名詞"},
			{Surface: "し", Headword: "する", POS: "動詞", InflectionType: "サ変・スル", InflectionForm: "連用形"},
			{Surface: "ませ", Headword: "ます", POS: "助動詞", InflectionType: "特殊・マス", InflectionForm: "未然形"},
			{Surface: "ん", Headword: "ん", POS: "助動詞", InflectionType: "不変化型", InflectionForm: "基本形"},
		},
	}}
	all := append([]Option{WithAnalyzer(az)}, opts...)
	e, err := NewEngine(testDict(), all...)
	require.NoError(t, err)
	return e
}

func process(e *Engine, word, reading, trailing string, highlight rune) string {
	return e.ProcessWord(model.WordToken{
		Word:         word,
		Reading:      reading,
		TrailingKana: trailing,
		Highlight:    highlight,
	}, furi.Furigana)
}

func TestEngineOnyomiCompound(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "<on> 漢字[カンジ]</on>", process(e, "漢字", "かんじ", "", 0))

	split := newTestEngine(t, WithRenderOptions(furi.Options{
		WithTags:         true,
		OnyomiToKatakana: true,
	}))
	assert.Equal(t, "<on> 漢[カン]</on><on> 字[ジ]</on>", process(split, "漢字", "かんじ", "", 0))

	plain := newTestEngine(t, WithRenderOptions(furi.Options{
		MergeConsecutive: true,
		OnyomiToKatakana: true,
	}))
	assert.Equal(t, " 漢字[カンジ]", process(plain, "漢字", "かんじ", "", 0))
}

func TestEngineGeminationHighlight(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t,
		"<b><on> 一[イッ]</on></b><on> 見[ケン]</on>",
		process(e, "一見", "いっけん", "", '一'))
}

func TestEngineJukujikunHighlight(t *testing.T) {
	e := newTestEngine(t)
	// Neither 大 nor 人 carries a reading covering おと/な; the unmatched
	// mora redistribute evenly.
	assert.Equal(t,
		"<b><juk> 大[おと]</juk></b><juk> 人[な]</juk>",
		process(e, "大人", "おとな", "", '大'))
}

func TestEngineExceptionForcesKunyomi(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t,
		"<b><kun> 尻[しっ]</kun></b><kun> 尾[ぽ]</kun>",
		process(e, "尻尾", "しっぽ", "", '尻'))
}

func TestEngineExceptionForcesJukujikun(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "<juk> 風邪[かぜ]</juk>", process(e, "風邪", "かぜ", "", 0))
}

func TestEngineSuruCompoundOkuriOutsideHighlight(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t,
		"<on> 勉[ベン]</on><b><on> 強[キョウ]</on></b><oku>しません</oku>",
		process(e, "勉強", "べんきょう", "しません", '強'))
}

func TestEngineKunyomiOkurigana(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "<kun> 引[ひ]</kun><oku>く</oku>", process(e, "引", "ひ", "く", 0))
}

func TestEngineDigitRuns(t *testing.T) {
	e := newTestEngine(t)
	want := "<on> 10分[ジュップン]</on>"
	assert.Equal(t, want, process(e, "10分", "じゅっぷん", "", 0))
	assert.Equal(t, "<on> １０分[ジュップン]</on>", process(e, "１０分", "じゅっぷん", "", 0))
	// The kanji-numeral spelling splits the same way.
	assert.Equal(t, "<on> 十分[ジュップン]</on>", process(e, "十分", "じゅっぷん", "", 0))
}

func TestEngineDoubledKanjiNormalized(t *testing.T) {
	e := newTestEngine(t)
	want := "<kun> 人々[ひとびと]</kun>"
	assert.Equal(t, want, process(e, "人々", "ひとびと", "", 0))
	assert.Equal(t, want, process(e, "人人", "ひとびと", "", 0))
}

func TestEngineKatakanaReadingRestored(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "<juk> 珈琲[コーヒー]</juk>", process(e, "珈琲", "コーヒー", "", 0))
}

func TestEngineInvalidReading(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "<err> 漢字[abc]</err>", process(e, "漢字", "abc", "", 0))
	assert.Equal(t, "<err> 漢字[〓]</err>", process(e, "漢字", "", "", 0))
	assert.Equal(t, "<err>〓</err>", e.ProcessWord(model.WordToken{Word: "漢字"}, furi.KanaOnly))
}

func TestEngineProcessText(t *testing.T) {
	e := newTestEngine(t)
	got := e.Process("これは 漢字[かんじ]です", 0, furi.Furigana)
	assert.Equal(t, "これは<on> 漢字[カンジ]</on>です", got)
}

func TestEngineProcessSoundPassthrough(t *testing.T) {
	e := newTestEngine(t)
	text := "漢字[sound:example.mp3]"
	assert.Equal(t, text, e.Process(text, 0, furi.Furigana))
}

func TestEngineReassignmentIdempotent(t *testing.T) {
	tagged := newTestEngine(t)
	plain := newTestEngine(t, WithRenderOptions(furi.Options{OnyomiToKatakana: true}))

	words := []struct{ word, reading string }{
		{"漢字", "かんじ"},
		{"一見", "いっけん"},
		{"大人", "おとな"},
		{"人々", "ひとびと"},
	}
	for _, w := range words {
		// The kana-only render is the word's reconstructed reading; feeding
		// it back in must reproduce the same per-kanji assignment.
		rebuilt := plain.ProcessWord(model.WordToken{Word: w.word, Reading: w.reading}, furi.KanaOnly)
		first := process(tagged, w.word, w.reading, "", 0)
		second := process(tagged, w.word, rebuilt, "", 0)
		assert.Equal(t, first, second, w.word)
	}
}

func TestEngineAmbiguousReadingChoice(t *testing.T) {
	e := newTestEngine(t)

	// 口 has both the kunyomi くち and the onyomi ク available against
	// くちょう; the leftmost-cut partition order settles on く|ちょう before
	// the kunyomi split is ever considered.
	got := e.ProcessWord(model.WordToken{
		Word: "口調", Reading: "くちょう", Highlight: '口',
	}, furi.KanaOnly)
	assert.Equal(t, "<b><on>ク</on></b><on>チョウ</on>", got)

	// 不 carries both フ and フウ; folding the standalone ん into うん leaves
	// ふ|うん as the only two-way split, so the shorter reading wins.
	got = e.ProcessWord(model.WordToken{
		Word: "不運", Reading: "ふうん", Highlight: '不',
	}, furi.KanaOnly)
	assert.Equal(t, "<b><on>フ</on></b><on>ウン</on>", got)
}

func TestEngineProcessKanaOnly(t *testing.T) {
	e := newTestEngine(t)
	got := e.Process("一見[いっけん]した", '一', furi.KanaOnly)
	assert.Equal(t, "<b><on>イッ</on></b><on>ケン</on>した", got)
}
