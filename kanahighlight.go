// Package kanahighlight aligns furigana readings to the kanji of annotated
// Japanese text and re-renders them with per-kanji reading-class tags and an
// optional highlight on one kanji. Input text carries readings in the
// word[reading]trailing form; the engine classifies each kanji's reading as
// onyomi, kunyomi or jukujikun, splits inflected tails off the trailing kana
// and reconstructs the requested output layout.
package kanahighlight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"kanahighlight/align"
	"kanahighlight/furi"
	"kanahighlight/juku"
	"kanahighlight/kana"
	"kanahighlight/kanji"
	"kanahighlight/model"
	"kanahighlight/okuri"
)

// tokenRe matches one word[reading]trailing token: a run of kanji, digits or
// the repeater glyph, a bracketed reading, and the hiragana right after it.
var tokenRe = regexp.MustCompile(`([0-9０-９々\x{4e00}-\x{9faf}\x{3400}-\x{4dbf}]+)\[(.+?)\]([ぁ-ん]*)`)

var (
	spacedTagRe     = regexp.MustCompile(` <(b|on|kun|juk|mix|err)> `)
	spacedBoldTagRe = regexp.MustCompile(` <b><(on|kun|juk|mix|err)> `)
)

// placeholderGlyph stands in for a missing reading.
const placeholderGlyph = "〓"

// Engine is the configured alignment pipeline. It holds only read-only state
// after construction and is safe for concurrent use.
type Engine struct {
	dict   kanji.Dict
	table  juku.ExceptionTable
	det    *okuri.Detector
	search *align.Searcher
	proc   *juku.Processor
	render furi.Options
}

type config struct {
	analyzer      okuri.Analyzer
	uniDict       bool
	table         juku.ExceptionTable
	maxPartitions int
	render        furi.Options
}

// Option configures the engine.
type Option func(*config)

// WithAnalyzer injects a morphological analyzer, replacing the default
// kagome IPA analyzer.
func WithAnalyzer(az okuri.Analyzer) Option {
	return func(c *config) { c.analyzer = az }
}

// WithUniDict builds the default analyzer over UniDic instead of IPA.
func WithUniDict() Option {
	return func(c *config) { c.uniDict = true }
}

// WithExceptions replaces the built-in jukujikun exception table.
func WithExceptions(table juku.ExceptionTable) Option {
	return func(c *config) { c.table = table }
}

// WithMaxPartitions caps the number of candidate mora partitions the
// alignment search considers per word.
func WithMaxPartitions(n int) Option {
	return func(c *config) { c.maxPartitions = n }
}

// WithRenderOptions replaces the default render configuration.
func WithRenderOptions(opts furi.Options) Option {
	return func(c *config) { c.render = opts }
}

// DefaultRenderOptions emits tags, merges consecutive spans, renders onyomi
// in katakana and keeps suru-compound okurigana out of highlights.
func DefaultRenderOptions() furi.Options {
	return furi.Options{
		WithTags:         true,
		MergeConsecutive: true,
		OnyomiToKatakana: true,
	}
}

// NewEngine wires the pipeline over the given reading dictionary.
func NewEngine(dict kanji.Dict, opts ...Option) (*Engine, error) {
	cfg := config{
		table:         juku.DefaultExceptions(),
		maxPartitions: align.DefaultMaxPartitions,
		render:        DefaultRenderOptions(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	az := cfg.analyzer
	if az == nil {
		var err error
		if cfg.uniDict {
			az, err = okuri.NewKagomeUniAnalyzer()
		} else {
			az, err = okuri.NewKagomeAnalyzer()
		}
		if err != nil {
			return nil, fmt.Errorf("kanahighlight: %w", err)
		}
	}
	det := okuri.NewDetector(az)
	return &Engine{
		dict:   dict,
		table:  cfg.table,
		det:    det,
		search: align.NewSearcher(align.NewMatcher(dict, det), cfg.maxPartitions),
		proc:   juku.NewProcessor(cfg.table, dict, det),
		render: cfg.render,
	}, nil
}

// Process rewrites every word[reading]trailing token in text, highlighting
// the given kanji (zero for none). sound: brackets pass through untouched.
func (e *Engine) Process(text string, highlight rune, mode furi.Mode) string {
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	out := tokenRe.ReplaceAllStringFunc(text, func(m string) string {
		g := tokenRe.FindStringSubmatch(m)
		if strings.HasPrefix(g[2], "sound:") {
			return m
		}
		return e.ProcessWord(model.WordToken{
			Word:         g[1],
			Reading:      g[2],
			TrailingKana: g[3],
			Highlight:    highlight,
		}, mode)
	})
	// Clean up the spacing the bracket layouts introduce at token joints.
	out = strings.ReplaceAll(out, "  ", " ")
	out = spacedTagRe.ReplaceAllString(out, "<$1> ")
	out = spacedBoldTagRe.ReplaceAllString(out, "<b><$1> ")
	return out
}

// ProcessWord aligns and renders a single token.
func (e *Engine) ProcessWord(tok model.WordToken, mode furi.Mode) string {
	word := normalizeDoubledKanji(tok.Word)
	reading := tok.Reading
	trailing := tok.TrailingKana

	if reading == "" {
		return e.renderError(word, placeholderGlyph, trailing, mode)
	}
	if !kana.ContainsKana(reading) {
		log.Debug().Str("word", word).Str("reading", reading).Msg("reading contains no kana")
		return e.renderError(word, reading, trailing, mode)
	}

	hira := kana.ToHiragana(reading)
	wasKatakana := kana.IsAllKatakana(reading)
	expanded := kanji.ExpandDigits(word)

	var a model.MoraAlignment
	if ex, ok := e.table.Lookup(word, hira); ok && len(ex.PerKanji) == len(expanded.Runes) {
		a = ex
	} else {
		mora, _ := kana.SplitMora(hira, len(expanded.Runes))
		a = e.search.Align(expanded.Runes, mora, trailing, trailing != "")
		a = e.proc.Process(expanded.Runes, expanded.Numeral, a, trailing)
	}

	oku, rest, suru := e.resolveTrailing(word, hira, trailing, a)

	return furi.Render(furi.Word{
		Entries:   lowerEntries(expanded, a, tok.Highlight),
		Okurigana: oku,
		RestKana:  rest,
		SuruVerb:  suru,
		Katakana:  wasKatakana,
	}, mode, e.render)
}

// resolveTrailing finishes the okurigana split when the alignment left it
// open (exception-table words bypass the per-kanji extraction entirely) and
// decides whether the okurigana is a suru-compound inflection.
func (e *Engine) resolveTrailing(word, reading, trailing string, a model.MoraAlignment) (oku, rest string, suru bool) {
	oku, rest, suru = a.TrailingOkurigana, a.TrailingRest, a.SuruVerb
	if trailing == "" {
		return oku, rest, suru
	}
	if oku == "" && rest == "" {
		res := e.det.Detect(word, reading, trailing, okuri.ByWord)
		oku, rest, suru = res.Okurigana, res.Rest, res.VerbLike
		if res.Type == model.NoOkuri {
			rest = trailing
		}
	}
	if oku != "" && !suru && len(a.PerKanji) > 0 {
		last := a.PerKanji[len(a.PerKanji)-1]
		first, _ := firstRune(oku)
		if last.Matched &&
			(last.Info.Class == model.ClassOnyomi || last.Info.Class == model.ClassJukujikun) &&
			suruHeads[first] &&
			(len(a.PerKanji) > 1 || oku == "する") {
			suru = true
		}
	}
	return oku, rest, suru
}

// suruHeads are the kana a suru-compound inflection can start with.
var suruHeads = map[rune]bool{
	'し': true, 'す': true, 'さ': true, 'せ': true, 'ざ': true, 'じ': true,
}

// lowerEntries turns the per-position alignment into render entries. Digit
// runs whose expanded positions share class and highlight collapse into a
// single numeral entry; mixed runs keep one entry per position, the first
// carrying the digit surface and the rest an empty one.
func lowerEntries(w kanji.ExpandedWord, a model.MoraAlignment, highlight rune) []model.RenderEntry {
	entries := make([]model.RenderEntry, 0, len(w.Runes))
	i := 0
	for i < len(w.Runes) {
		if !w.Numeral[i] {
			info := a.PerKanji[i].Info
			entries = append(entries, model.RenderEntry{
				Surface:     w.Surface[i],
				Furigana:    info.MatchedMora,
				Class:       info.Class,
				Highlighted: highlightAt(w.Runes, i, highlight),
			})
			i++
			continue
		}
		j := i
		run := make([]model.RenderEntry, 0, 4)
		for j < len(w.Runes) && w.Numeral[j] {
			if j > i && w.Surface[j] != "" {
				// A fresh digit run starts here.
				break
			}
			info := a.PerKanji[j].Info
			run = append(run, model.RenderEntry{
				Surface:     w.Surface[j],
				Furigana:    info.MatchedMora,
				Class:       info.Class,
				IsNumeral:   true,
				Highlighted: highlightAt(w.Runes, j, highlight),
			})
			j++
		}
		uniform := true
		for k := 1; k < len(run); k++ {
			if run[k].Class != run[0].Class || run[k].Highlighted != run[0].Highlighted {
				uniform = false
				break
			}
		}
		if uniform && len(run) > 1 {
			merged := run[0]
			for k := 1; k < len(run); k++ {
				merged.Furigana += run[k].Furigana
			}
			entries = append(entries, merged)
		} else {
			entries = append(entries, run...)
		}
		i = j
	}
	return entries
}

func highlightAt(word []rune, i int, highlight rune) bool {
	if highlight == 0 {
		return false
	}
	if word[i] == highlight {
		return true
	}
	// The repeater glyph extends its base kanji's highlight.
	return word[i] == kana.Repeater && i > 0 && word[i-1] == highlight
}

// renderError wraps unalignable tokens in an err tag so broken input stays
// visible instead of aborting the document.
func (e *Engine) renderError(word, reading, trailing string, mode furi.Mode) string {
	var base string
	switch mode {
	case furi.Furikanji:
		base = " " + reading + "[" + word + "]"
	case furi.KanaOnly:
		base = reading
	default:
		base = " " + word + "[" + reading + "]"
	}
	return "<err>" + base + "</err>" + trailing
}

// normalizeDoubledKanji rewrites a kanji repeated back to back as the
// repeater glyph, the spelling the alignment understands.
func normalizeDoubledKanji(word string) string {
	runes := []rune(word)
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] && kana.IsKanji(runes[i]) {
			runes[i] = kana.Repeater
		}
	}
	return string(runes)
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
