package align

import (
	"strings"

	"github.com/rs/zerolog/log"

	"kanahighlight/kana"
	"kanahighlight/model"
)

// DefaultMaxPartitions bounds the number of candidate partitions examined per
// word. Real words rarely need more than the first few; the cap keeps
// degenerate inputs from exploding combinatorially.
const DefaultMaxPartitions = 4096

// Searcher runs the combinatorial mora-to-kanji alignment with early exit.
type Searcher struct {
	matcher       *Matcher
	maxPartitions int
}

// NewSearcher builds a searcher. maxPartitions <= 0 selects
// DefaultMaxPartitions.
func NewSearcher(matcher *Matcher, maxPartitions int) *Searcher {
	if maxPartitions <= 0 {
		maxPartitions = DefaultMaxPartitions
	}
	return &Searcher{matcher: matcher, maxPartitions: maxPartitions}
}

// Align distributes moraList across the kanji of word. trailing is the kana
// following the word; preferKunyomi flips the matcher's class order. The
// first fully matched partition wins; otherwise the partial alignment with
// the fewest unmatched positions (then most kana matched) is returned, and a
// fully unmatched fallback when nothing matched at all.
func (s *Searcher) Align(word []rune, moraList []string, trailing string, preferKunyomi bool) model.MoraAlignment {
	kanjiCount := len(word)
	if kanjiCount == 0 {
		return model.MoraAlignment{Complete: true}
	}

	hasRepeater := containsRepeatedKanji(word)

	var best model.MoraAlignment
	haveBest := false
	bestUnmatched := kanjiCount + 1
	bestCharsMatched := 0
	var yoonRepairs [][]string

	consider := func(a model.MoraAlignment) {
		unmatched := len(a.Unmatched)
		chars := 0
		for _, p := range a.PerKanji {
			if p.Matched {
				chars += len([]rune(p.Info.MatchedMora))
			}
		}
		if (unmatched < bestUnmatched && chars >= bestCharsMatched) ||
			(unmatched <= bestUnmatched && chars > bestCharsMatched) {
			best, haveBest = a, true
			bestUnmatched, bestCharsMatched = unmatched, chars
		}
	}

	it := NewPartitionIter(moraList, kanjiCount)
	seen := 0
	for split := it.Next(); split != nil; split = it.Next() {
		if seen++; seen > s.maxPartitions {
			log.Debug().Int("cap", s.maxPartitions).Msg("partition cap reached")
			break
		}
		groups := joinGroups(split)
		if hasRepeater && !validSplitForRepeaters(word, groups) {
			continue
		}
		a := s.matchSplit(word, groups, trailing, preferKunyomi, false, &yoonRepairs)
		if a.Complete {
			return a
		}
		consider(a)
	}

	// Contraction-boundary repairs discovered during the main loop.
	for _, groups := range yoonRepairs {
		a := s.matchSplit(word, groups, trailing, preferKunyomi, true, nil)
		if a.Complete {
			return a
		}
		consider(a)
	}

	if haveBest {
		return best
	}

	// Nothing matched anywhere; hand everything to the jukujikun path.
	fallback := model.MoraAlignment{
		PerKanji:     make([]model.PositionResult, kanjiCount),
		Partition:    make([][]string, kanjiCount),
		Unmatched:    make([]int, kanjiCount),
		TrailingRest: trailing,
	}
	for i := 0; i < kanjiCount; i++ {
		fallback.Unmatched[i] = i
		if i < len(moraList) {
			fallback.Partition[i] = []string{moraList[i]}
		} else {
			fallback.Partition[i] = nil
		}
	}
	return fallback
}

// matchSplit validates one candidate partition position by position.
func (s *Searcher) matchSplit(word []rune, groups []string, trailing string, preferKunyomi, skipYoon bool, yoonOut *[][]string) model.MoraAlignment {
	kanjiCount := len(word)
	perKanji := make([]model.PositionResult, 0, kanjiCount)
	var unmatched []int
	finalOkuri, finalRest := "", ""

	for i := 0; i < kanjiCount; {
		kj := word[i]
		isLast := i == kanjiCount-1
		nextIsRepeater := false
		if !isLast {
			next := word[i+1]
			nextIsRepeater = next == kana.Repeater || next == kj
		}
		group := ""
		if i < len(groups) {
			group = groups[i]
		}

		lastForMatch := isLast && !nextIsRepeater
		trailingForMatch := ""
		if lastForMatch {
			trailingForMatch = trailing
		}
		info, ok := s.matcher.Match(kj, group, trailingForMatch, lastForMatch, preferKunyomi)

		// A yōon-initial group after another position may really be a
		// contraction of the previous reading's final kana; queue the
		// shifted split for a later full pass.
		if !skipYoon && !nextIsRepeater && i > 0 && yoonOut != nil {
			gr := []rune(group)
			if len(gr) == 2 && isSmallYoon(gr[1]) {
				small := string(gr[1])
				if _, yok := s.matcher.Match(kj, small, trailingForMatch, lastForMatch, preferKunyomi); yok {
					repaired := make([]string, len(groups))
					copy(repaired, groups)
					repaired[i-1] = groups[i-1] + string(gr[0])
					repaired[i] = small
					*yoonOut = append(*yoonOut, repaired)
				}
			}
		}

		if !ok {
			perKanji = append(perKanji, model.UnmatchedPosition())
			unmatched = append(unmatched, i)
			if nextIsRepeater {
				perKanji = append(perKanji, model.UnmatchedPosition())
				unmatched = append(unmatched, i+1)
				i += 2
				continue
			}
			i++
			continue
		}

		if nextIsRepeater {
			secondGroup := ""
			if i+1 < len(groups) {
				secondGroup = groups[i+1]
			}
			perKanji = append(perKanji, model.MatchedPosition(info))

			repeaterInfo := info
			repeaterInfo.MatchedMora = secondGroup
			repeaterInfo.Kanji = word[i+1]
			if !repeats(info.MatchedMora, secondGroup) {
				// Accepted anyway: repetition carries no further
				// phonetic constraint beyond matching style.
				log.Debug().
					Str("first", info.MatchedMora).
					Str("second", secondGroup).
					Msg("repeater mora differs beyond voicing")
			}
			if i+1 == kanjiCount-1 {
				oku, rest := s.matcher.ExtractOkurigana(info, trailing)
				repeaterInfo.Okurigana, repeaterInfo.RestKana = oku, rest
				finalOkuri, finalRest = oku, rest
			}
			perKanji = append(perKanji, model.MatchedPosition(repeaterInfo))
			i += 2
			continue
		}

		if isLast {
			oku, rest := s.matcher.ExtractOkurigana(info, trailing)
			info.Okurigana, info.RestKana = oku, rest
			finalOkuri, finalRest = oku, rest
		}
		perKanji = append(perKanji, model.MatchedPosition(info))
		i++
	}

	a := model.MoraAlignment{
		PerKanji:          perKanji,
		Partition:         resplitGroups(groups, kanjiCount),
		Unmatched:         unmatched,
		Complete:          len(unmatched) == 0,
		TrailingOkurigana: finalOkuri,
		TrailingRest:      finalRest,
	}
	if a.TrailingOkurigana == "" && len(a.PerKanji) == kanjiCount && a.PerKanji[kanjiCount-1].Matched {
		last := a.PerKanji[kanjiCount-1].Info
		if last.Okurigana == "" && trailing != "" {
			oku, rest := s.matcher.ExtractOkurigana(last, trailing)
			a.TrailingOkurigana, a.TrailingRest = oku, rest
		} else {
			a.TrailingRest = last.RestKana
			a.TrailingOkurigana = last.Okurigana
		}
	}
	if !a.Complete && a.TrailingOkurigana == "" && a.TrailingRest == "" {
		a.TrailingRest = trailing
	}
	return a
}

func joinGroups(split [][]string) []string {
	out := make([]string, len(split))
	for i, group := range split {
		out[i] = strings.Join(group, "")
	}
	return out
}

// resplitGroups rebuilds per-position mora lists from the joined group
// strings so repaired boundaries stay representable.
func resplitGroups(groups []string, kanjiCount int) [][]string {
	out := make([][]string, kanjiCount)
	for i := 0; i < kanjiCount; i++ {
		if i < len(groups) && groups[i] != "" {
			mora, _ := kana.SplitMora(groups[i], 0)
			out[i] = mora
		}
	}
	return out
}

func containsRepeatedKanji(word []rune) bool {
	for i := 1; i < len(word); i++ {
		if word[i] == kana.Repeater {
			return true
		}
	}
	return false
}

// validSplitForRepeaters requires a repeater position to carry the same mora
// count as the position it repeats.
func validSplitForRepeaters(word []rune, groups []string) bool {
	for i := 1; i < len(word) && i < len(groups); i++ {
		if word[i] != kana.Repeater {
			continue
		}
		if len([]rune(groups[i])) != len([]rune(groups[i-1])) {
			return false
		}
	}
	return true
}

// repeats reports whether second is first verbatim or with its initial kana
// voiced.
func repeats(first, second string) bool {
	if first == second {
		return true
	}
	for _, r := range kana.RendakuForms(first) {
		if r == second {
			return true
		}
	}
	return false
}

func isSmallYoon(r rune) bool {
	return r == 'ゃ' || r == 'ゅ' || r == 'ょ'
}
