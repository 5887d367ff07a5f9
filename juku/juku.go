package juku

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"kanahighlight/kana"
	"kanahighlight/kanji"
	"kanahighlight/model"
	"kanahighlight/okuri"
)

// Processor fills the unmatched positions of an alignment.
type Processor struct {
	table ExceptionTable
	dict  kanji.Dict
	det   *okuri.Detector
}

// NewProcessor builds a processor over the given exception table, reading
// dictionary and okurigana detector.
func NewProcessor(table ExceptionTable, dict kanji.Dict, det *okuri.Detector) *Processor {
	return &Processor{table: table, dict: dict, det: det}
}

// Process returns a copy of a with every unmatched position filled, via the
// exception table when a known substring applies and by even redistribution
// otherwise. numeral flags the positions that came from a digit run (may be
// nil). When the last position was unmatched, the trailing kana is split into
// okurigana and rest on the returned alignment.
func (p *Processor) Process(word []rune, numeral []bool, a model.MoraAlignment, trailing string) model.MoraAlignment {
	if len(a.Unmatched) == 0 {
		return a
	}

	fullFurigana := ""
	for i := range a.Partition {
		fullFurigana += strings.Join(a.Partition[i], "")
	}

	patched, filled := p.applyExceptionSubstring(word, a, fullFurigana)
	if !filled {
		patched, filled = p.redistribute(word, numeral, a)
		if !filled {
			return patched
		}
	} else if len(patched.Unmatched) > 0 {
		// Exception entries of onyomi/kunyomi class can leave positions
		// open; the remainder still gets redistributed.
		patched, _ = p.redistribute(word, numeral, patched)
	}

	last := len(word) - 1
	lastFilled := !a.PerKanji[last].Matched && patched.PerKanji[last].Matched
	if !lastFilled || trailing == "" {
		return patched
	}

	// The last position had no established kana-to-glyph link, so parse by
	// reading instead of by kanji.
	jukuReading := patched.PerKanji[last].Info.MatchedMora
	lastKanji := string(word[last])
	if word[last] == kana.Repeater && last > 0 {
		lastKanji = string(word[last-1]) + string(kana.Repeater)
		jukuReading = patched.PerKanji[last-1].Info.MatchedMora + jukuReading
	}
	res := p.det.Detect(lastKanji, jukuReading, trailing, okuri.ByReading)
	oku, rest := res.Okurigana, res.Rest

	// When the analyzer cannot parse the reading (many jukujikun are too
	// rare for it), claim the whole trailing run unless it starts like a
	// standalone particle.
	if oku == "" {
		tr := []rune(trailing)
		if len(tr) > 1 && !kana.ParticleHeads[tr[0]] {
			oku, rest = trailing, ""
		} else {
			rest = trailing
		}
	}
	patched.TrailingOkurigana = oku
	patched.TrailingRest = rest
	return patched
}

// applyExceptionSubstring looks for a known exception word inside word whose
// reading occurs in the furigana, assigns its jukujikun positions verbatim
// and synthesizes plain matches for the surrounding positions.
func (p *Processor) applyExceptionSubstring(word []rune, a model.MoraAlignment, fullFurigana string) (model.MoraAlignment, bool) {
	wordStr := string(word)
	unmatchedSet := make(map[int]bool, len(a.Unmatched))
	for _, pos := range a.Unmatched {
		unmatchedSet[pos] = true
	}

	// Longer exception words first so 菠薐草 wins over 菠薐.
	records := make([]ExceptionRecord, len(p.table))
	copy(records, p.table)
	sort.SliceStable(records, func(i, j int) bool {
		return len(records[i].Word) > len(records[j].Word)
	})

	for _, rec := range records {
		if !strings.Contains(wordStr, rec.Word) || !strings.Contains(fullFurigana, rec.Furigana) {
			continue
		}
		patched := a
		filled := false
		exRunes := []rune(rec.Word)

		searchFrom := 0
		firstStart := -1
		for {
			start := indexRunes(word, exRunes, searchFrom)
			if start < 0 {
				break
			}
			if firstStart < 0 {
				firstStart = start
			}
			for offset, entry := range rec.Entries {
				pos := start + offset
				if entry.Class != model.ClassJukujikun {
					// Leave onyomi/kunyomi positions to the
					// alignment's own matches.
					continue
				}
				patched = patched.WithPosition(pos, model.ReadingMatchInfo{
					MatchedMora: entry.Mora,
					DictForm:    entry.Mora,
					Class:       model.ClassJukujikun,
					Variant:     model.VariantPlain,
					Kanji:       word[pos],
				})
				filled = true
			}
			// A single kanji before the exception takes the furigana
			// prefix preceding the exception reading.
			if searchFrom == 0 && start == 1 && !patched.PerKanji[0].Matched {
				if prefix, _, ok := strings.Cut(fullFurigana, rec.Furigana); ok && prefix != "" {
					patched = patched.WithPosition(0, model.ReadingMatchInfo{
						MatchedMora: prefix,
						DictForm:    prefix,
						Class:       model.ClassOnyomi,
						Variant:     model.VariantPlain,
						Kanji:       word[0],
					})
				}
			}
			searchFrom = start + len(exRunes)
		}
		if !filled {
			continue
		}

		// Positions outside the exception span still lacking a match get
		// their partition mora as a plain reading.
		for pos := 0; pos < firstStart; pos++ {
			patched = p.synthesizeMatch(word, patched, pos)
		}
		for pos := firstStart + len(rec.Entries); pos < len(word); pos++ {
			patched = p.synthesizeMatch(word, patched, pos)
		}
		log.Debug().Str("word", wordStr).Str("exception", rec.Word).Msg("exception substring applied")
		return patched, true
	}
	return a, false
}

func (p *Processor) synthesizeMatch(word []rune, a model.MoraAlignment, pos int) model.MoraAlignment {
	if pos < 0 || pos >= len(word) || a.PerKanji[pos].Matched {
		return a
	}
	moraSeq := a.MoraString(pos)
	if moraSeq == "" {
		return a
	}
	class := model.ClassOnyomi
	if rd, ok := p.dict.Lookup(word[pos]); ok {
		switch {
		case containsReading(rd.Onyomi, moraSeq, false):
			class = model.ClassOnyomi
		case containsReading(rd.Kunyomi, moraSeq, true):
			class = model.ClassKunyomi
		}
	}
	return a.WithPosition(pos, model.ReadingMatchInfo{
		MatchedMora: moraSeq,
		DictForm:    moraSeq,
		Class:       class,
		Variant:     model.VariantPlain,
		Kanji:       word[pos],
	})
}

func containsReading(readings []string, moraSeq string, stems bool) bool {
	for _, r := range readings {
		cand := kanji.NormalizeReading(r)
		if stems {
			cand = kanji.KunyomiStem(kanji.CleanKunyomi(r))
		}
		if cand == moraSeq {
			return true
		}
	}
	return false
}

// redistribute hands the mora not consumed by matched positions evenly to the
// unmatched ones: floor(n/count) each, with the first n mod count positions
// taking one extra.
func (p *Processor) redistribute(word []rune, numeral []bool, a model.MoraAlignment) (model.MoraAlignment, bool) {
	jukuCount := len(a.Unmatched)
	if jukuCount == 0 {
		return a, false
	}

	var sb strings.Builder
	for _, pos := range a.Unmatched {
		sb.WriteString(a.MoraString(pos))
	}
	jukuMora, _ := kana.SplitMora(sb.String(), jukuCount)
	if len(jukuMora) == 0 {
		return a, false
	}

	perPos := len(jukuMora) / jukuCount
	remainder := len(jukuMora) % jukuCount

	patched := a
	idx := 0
	for i, pos := range a.Unmatched {
		end := idx + perPos
		if i < remainder {
			end++
		}
		if end > len(jukuMora) {
			end = len(jukuMora)
		}
		portion := strings.Join(jukuMora[idx:end], "")
		idx = end

		// Numerals and the irregular stem 為(し/さ) behave like ordinary
		// kunyomi for okurigana purposes.
		class := model.ClassJukujikun
		isNum := len(numeral) > pos && numeral[pos]
		if isNum || (word[pos] == '為' && (portion == "し" || portion == "さ")) {
			class = model.ClassKunyomi
		}
		patched = patched.WithPosition(pos, model.ReadingMatchInfo{
			MatchedMora: portion,
			DictForm:    portion,
			Class:       class,
			Variant:     model.VariantPlain,
			Kanji:       word[pos],
		})
	}
	return patched, true
}

// indexRunes finds needle in haystack starting at from, in rune offsets.
func indexRunes(haystack, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
