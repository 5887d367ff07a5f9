// Package furi reconstructs output text from aligned reading entries: it
// merges adjacent entries into spans, wraps them in reading-class tags and
// emits one of three layouts (furigana above kanji, reading-first furikanji,
// or kana only).
package furi

import (
	"strings"

	"kanahighlight/kana"
	"kanahighlight/kanji"
	"kanahighlight/model"
)

// Mode selects the output layout.
type Mode int

const (
	// Furigana renders " 漢字[かんじ]".
	Furigana Mode = iota
	// Furikanji renders " かんじ[漢字]".
	Furikanji
	// KanaOnly renders the reading alone.
	KanaOnly
)

// Options control tag emission and span merging.
type Options struct {
	// WithTags wraps each span in <on>/<kun>/<juk>/<mix> and the okurigana
	// in <oku>.
	WithTags bool
	// MergeConsecutive joins adjacent spans sharing class and highlight
	// state. Numeral runs merge regardless in the non-kana layouts.
	MergeConsecutive bool
	// OnyomiToKatakana renders onyomi readings in katakana.
	OnyomiToKatakana bool
	// IncludeSuruOkuri keeps suru-compound okurigana inside the highlight.
	IncludeSuruOkuri bool
}

// Word is one fully aligned word ready for rendering.
type Word struct {
	Entries   []model.RenderEntry
	Okurigana string
	RestKana  string
	// SuruVerb marks the okurigana as a suru-compound inflection.
	SuruVerb bool
	// Katakana restores the reading to katakana, for words whose furigana
	// was written in katakana before hiragana normalization.
	Katakana bool
}

type segment struct {
	surface     string
	furigana    string
	class       model.ReadingClass
	isNum       bool
	highlighted bool
}

// Render emits the word in the given layout. Highlighted spans are wrapped
// in <b>; okurigana joins the highlight when the last span carries it,
// except for suru compounds kept outside per Options. RestKana is always
// appended last, unwrapped.
func Render(w Word, mode Mode, opts Options) string {
	segs := mergeSegments(prepare(w, opts), mode, opts)

	var b strings.Builder
	inBold := false
	for _, seg := range segs {
		if seg.surface == "" && mode != KanaOnly {
			// Unmerged numeral continuation; its reading lives in the
			// kana-only layout only.
			continue
		}
		if seg.highlighted && !inBold {
			b.WriteString("<b>")
			inBold = true
		} else if !seg.highlighted && inBold {
			b.WriteString("</b>")
			inBold = false
		}
		b.WriteString(segmentText(seg, mode, opts))
	}

	okuri := w.Okurigana
	if opts.WithTags && okuri != "" {
		okuri = "<oku>" + okuri + "</oku>"
	}
	if inBold {
		if !opts.IncludeSuruOkuri && w.SuruVerb {
			b.WriteString("</b>")
			b.WriteString(okuri)
		} else {
			b.WriteString(okuri)
			b.WriteString("</b>")
		}
	} else {
		b.WriteString(okuri)
	}
	b.WriteString(w.RestKana)
	return b.String()
}

func segmentText(seg segment, mode Mode, opts Options) string {
	var base string
	switch mode {
	case Furikanji:
		base = " " + seg.furigana + "[" + seg.surface + "]"
	case KanaOnly:
		base = seg.furigana
	default:
		base = " " + seg.surface + "[" + seg.furigana + "]"
	}
	if opts.WithTags {
		tag := seg.class.Tag()
		base = "<" + tag + ">" + base + "</" + tag + ">"
	}
	return base
}

func prepare(w Word, opts Options) []segment {
	segs := make([]segment, 0, len(w.Entries))
	for _, e := range w.Entries {
		furigana := e.Furigana
		if w.Katakana {
			furigana = kana.ToKatakana(furigana)
		} else if opts.OnyomiToKatakana && e.Class == model.ClassOnyomi {
			furigana = kana.ToKatakana(furigana)
		}
		segs = append(segs, segment{
			surface:     e.Surface,
			furigana:    furigana,
			class:       e.Class,
			isNum:       e.IsNumeral,
			highlighted: e.Highlighted,
		})
	}
	return segs
}

func mergeSegments(segs []segment, mode Mode, opts Options) []segment {
	out := make([]segment, 0, len(segs))
	i := 0
	for i < len(segs) {
		cur := segs[i]
		j := i + 1
		for j < len(segs) {
			merged, ok := tryMerge(cur, segs[j], j == len(segs)-1, mode, opts)
			if !ok {
				break
			}
			cur = merged
			j++
		}
		// Long numeral runs mix kun and on digit readings too often to
		// label honestly; three or more kanji numerals render as mixed.
		if cur.isNum && mode != KanaOnly && cur.class != model.ClassMixed && allDigits(cur.surface) {
			if len([]rune(kanji.NumberToKanji(cur.surface))) >= 3 {
				cur.class = model.ClassMixed
			}
		}
		out = append(out, cur)
		i = j
	}
	return out
}

func tryMerge(cur, next segment, nextIsLast bool, mode Mode, opts Options) (segment, bool) {
	sameClass := cur.class == next.class
	sameHighlight := cur.highlighted == next.highlighted
	merged := segment{
		surface:     cur.surface + next.surface,
		furigana:    cur.furigana + next.furigana,
		class:       cur.class,
		isNum:       cur.isNum && next.isNum,
		highlighted: cur.highlighted,
	}

	switch {
	// Repeated kanji and the repeater glyph always join their base.
	case (next.surface == cur.surface || next.surface == string(kana.Repeater)) &&
		sameClass && sameHighlight &&
		(opts.MergeConsecutive || !(cur.isNum && next.isNum)) &&
		(opts.MergeConsecutive || cur.surface != "" || next.surface != ""):
		return merged, true

	case opts.MergeConsecutive && sameClass && sameHighlight:
		// Keep the numeral/kanji boundary when one side is highlighted so
		// the bold span stays targeted.
		if cur.isNum != next.isNum && (cur.highlighted || next.highlighted) {
			return segment{}, false
		}
		return merged, true

	// Numeral continuations (digit run expanded to several kanji numerals)
	// fold into the run in the non-kana layouts.
	case mode != KanaOnly && cur.isNum && next.surface == "" && sameHighlight:
		merged.class = model.ClassMixed
		merged.isNum = true
		return merged, true

	case mode != KanaOnly && cur.isNum && next.isNum && sameHighlight:
		if !sameClass {
			merged.class = model.ClassMixed
		}
		merged.isNum = true
		return merged, true

	// Number + trailing counter in furikanji layout.
	case opts.MergeConsecutive && mode == Furikanji && cur.isNum && !next.isNum &&
		nextIsLast && sameClass:
		merged.isNum = false
		return merged, true

	// More kanji than mora in bad input leaves empty readings behind;
	// absorb them rather than emit broken brackets.
	case next.furigana == "":
		merged.isNum = cur.isNum
		return merged, true
	}
	return segment{}, false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !kana.IsDigit(r) {
			return false
		}
	}
	return true
}
