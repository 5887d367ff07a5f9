package align

import (
	"strings"

	"github.com/rs/zerolog/log"

	"kanahighlight/kana"
	"kanahighlight/kanji"
	"kanahighlight/model"
	"kanahighlight/okuri"
)

// Matcher decides whether a mora portion realizes one of a kanji's dictionary
// readings under the phonetic transformation rules.
type Matcher struct {
	dict kanji.Dict
	det  *okuri.Detector
}

// NewMatcher builds a matcher over the given reading dictionary and detector.
func NewMatcher(dict kanji.Dict, det *okuri.Detector) *Matcher {
	return &Matcher{dict: dict, det: det}
}

// Match tries both reading classes for kj against moraSeq. trailing is the
// kana after the word, consulted only when isLast; preferKunyomi flips the
// class order for words whose trailing kana makes kunyomi likelier.
func (m *Matcher) Match(kj rune, moraSeq, trailing string, isLast, preferKunyomi bool) (model.ReadingMatchInfo, bool) {
	rd, ok := m.dict.Lookup(kj)
	if !ok {
		// Unknown kanji degrades to an unmatched position.
		return model.ReadingMatchInfo{}, false
	}
	if !isLast {
		trailing = ""
	}
	if preferKunyomi {
		if info, ok := m.matchKunyomi(kj, rd, moraSeq, trailing, isLast); ok {
			return info, true
		}
		return m.matchOnyomi(kj, rd, moraSeq, trailing)
	}
	if info, ok := m.matchOnyomi(kj, rd, moraSeq, trailing); ok {
		return info, true
	}
	return m.matchKunyomi(kj, rd, moraSeq, trailing, isLast)
}

func (m *Matcher) matchOnyomi(kj rune, rd kanji.Readings, moraSeq, trailing string) (model.ReadingMatchInfo, bool) {
	// Exact equality across every reading first: a reading that coincides
	// with another reading's voiced or geminated form must report itself
	// as the plain match, not the other's variant.
	for pass := 0; pass < 2; pass++ {
		for _, on := range rd.Onyomi {
			reading := kanji.NormalizeReading(on)
			if reading == "" {
				continue
			}
			var variant model.ReadingVariant
			if pass == 0 {
				if reading != moraSeq {
					continue
				}
				variant = model.VariantPlain
			} else {
				if reading == moraSeq {
					continue
				}
				v, ok := checkReadingMatch(reading, moraSeq, trailing)
				if !ok {
					continue
				}
				variant = v
			}
			return model.ReadingMatchInfo{
				MatchedMora: moraSeq,
				DictForm:    reading,
				Class:       model.ClassOnyomi,
				Variant:     variant,
				Kanji:       kj,
			}, true
		}
	}
	return model.ReadingMatchInfo{}, false
}

func (m *Matcher) matchKunyomi(kj rune, rd kanji.Readings, moraSeq, trailing string, isLast bool) (model.ReadingMatchInfo, bool) {
	// 為 conjugates irregularly; し and さ are stems of す.る.
	if kj == '為' && (moraSeq == "し" || moraSeq == "さ") {
		return model.ReadingMatchInfo{
			MatchedMora: moraSeq,
			DictForm:    "す.る",
			Class:       model.ClassKunyomi,
			Variant:     model.VariantPlain,
			Kanji:       kj,
		}, true
	}

	// Same two-pass order as onyomi: every candidate's exact form before
	// any candidate's phonetic variants, so a stem that equals another
	// reading's voiced form still matches as its own plain reading.
	if info, ok := m.scanKunyomi(kj, rd, moraSeq, trailing, isLast, true); ok {
		return info, true
	}
	return m.scanKunyomi(kj, rd, moraSeq, trailing, isLast, false)
}

func (m *Matcher) scanKunyomi(kj rune, rd kanji.Readings, moraSeq, trailing string, isLast, exactOnly bool) (model.ReadingMatchInfo, bool) {
	var best model.ReadingMatchInfo
	bestScore := -1
	haveBest := false

	for _, kun := range rd.Kunyomi {
		cleaned := kanji.CleanKunyomi(kun)
		if cleaned == "" {
			continue
		}
		for _, cand := range kunyomiCandidates(cleaned) {
			var variant model.ReadingVariant
			if exactOnly {
				if cand != moraSeq {
					continue
				}
				variant = model.VariantPlain
			} else {
				if cand == moraSeq {
					continue
				}
				v, ok := checkReadingMatch(cand, moraSeq, trailing)
				if !ok {
					continue
				}
				variant = v
			}
			info := model.ReadingMatchInfo{
				MatchedMora: moraSeq,
				DictForm:    cleaned,
				Class:       model.ClassKunyomi,
				Variant:     variant,
				Kanji:       kj,
			}
			if !isLast || trailing == "" {
				return info, true
			}
			// Several stems can match here; keep the candidate whose
			// okurigana claims the most of the trailing kana.
			dictOkuri := kanji.KunyomiOkuri(cleaned)
			if dictOkuri == "" {
				if !haveBest {
					best, haveBest = info, true
					if bestScore < 0 {
						bestScore = 0
					}
				}
				continue
			}
			res := m.det.MatchDictOkuri(string(kj), kanji.KunyomiStem(cleaned), dictOkuri, trailing)
			if res.Type == model.FullOkuri {
				return info, true
			}
			if score := len([]rune(res.Okurigana)); score > bestScore {
				best, bestScore, haveBest = info, score, true
			}
		}
	}
	return best, haveBest
}

// kunyomiCandidates lists the surface forms a kunyomi reading can take in a
// compound: the bare stem, the noun-derived form of an inflectable reading,
// and the full reading.
func kunyomiCandidates(cleaned string) []string {
	stem := kanji.KunyomiStem(cleaned)
	dictOkuri := kanji.KunyomiOkuri(cleaned)
	full := stem + dictOkuri

	out := []string{stem}
	if dictOkuri != "" {
		if noun := nounFormOkuri(dictOkuri); noun != "" && stem+noun != full {
			out = append(out, stem+noun)
		}
	}
	if full != stem {
		out = append(out, full)
	}
	return out
}

// nounFormFinal swaps a godan verb's final okurigana kana to its continuative
// (noun-forming) い-row counterpart, e.g. ひ.く → ひき.
var nounFormFinal = map[rune]rune{
	'う': 'い', 'く': 'き', 'ぐ': 'ぎ', 'す': 'し', 'つ': 'ち', 'づ': 'ぢ',
	'ぬ': 'に', 'ふ': 'ひ', 'ぶ': 'び', 'む': 'み', 'る': 'り',
}

func nounFormOkuri(dictOkuri string) string {
	runes := []rune(dictOkuri)
	if len(runes) == 0 {
		return ""
	}
	last := runes[len(runes)-1]
	// Ichidan verbs drop る in the noun form (と.める → とめ).
	if last == 'る' && len(runes) > 1 {
		return string(runes[:len(runes)-1])
	}
	if swapped, ok := nounFormFinal[last]; ok {
		return string(runes[:len(runes)-1]) + string(swapped)
	}
	return ""
}

// checkReadingMatch tests moraSeq against reading under each phonetic
// transformation, in priority order, stopping at the first hit.
func checkReadingMatch(reading, moraSeq, trailing string) (model.ReadingVariant, bool) {
	if reading == "" || moraSeq == "" {
		return 0, false
	}
	if reading == moraSeq {
		return model.VariantPlain, true
	}

	runes := []rune(reading)
	first, last := runes[0], runes[len(runes)-1]
	rendaku := kana.RendakuForms(reading)

	for _, r := range rendaku {
		if r == moraSeq {
			return model.VariantRendaku, true
		}
	}

	if kana.SmallTsuFinals[last] {
		if string(runes[:len(runes)-1])+"っ" == moraSeq {
			return model.VariantSmallTsu, true
		}
	}

	if alts, ok := kana.VowelChange[first]; ok {
		for _, a := range alts {
			if string(a)+string(runes[1:]) == moraSeq {
				return model.VariantVowelChange, true
			}
		}
	}

	// Yōon contraction: しよ → しょ, also on voiced variants.
	if len(runes) >= 2 {
		if small, ok := kana.YoonSmall[runes[1]]; ok {
			if string(runes[0])+string(small)+string(runes[2:]) == moraSeq {
				return model.VariantVowelChange, true
			}
		}
	}
	for _, r := range rendaku {
		rr := []rune(r)
		if len(rr) < 2 {
			continue
		}
		if small, ok := kana.YoonSmall[rr[1]]; ok {
			if string(rr[0])+string(small)+string(rr[2:]) == moraSeq {
				return model.VariantVowelChange, true
			}
		}
	}

	for _, r := range rendaku {
		rr := []rune(r)
		if kana.SmallTsuFinals[rr[len(rr)-1]] {
			if string(rr[:len(rr)-1])+"っ" == moraSeq {
				return model.VariantRendakuSmallTsu, true
			}
		}
	}

	// う drops before っ okurigana (言う[いう]って → い + って).
	if strings.HasPrefix(trailing, "っ") && last == 'う' {
		if string(runes[:len(runes)-1]) == moraSeq {
			return model.VariantVowelChange, true
		}
		for _, r := range rendaku {
			rr := []rune(r)
			if rr[len(rr)-1] == 'う' && string(rr[:len(rr)-1]) == moraSeq {
				return model.VariantVowelChange, true
			}
		}
	}

	if kana.NChangeFinals[last] {
		if string(runes[:len(runes)-1])+"ん" == moraSeq {
			return model.VariantNChange, true
		}
	}

	return 0, false
}

// suruGate lists the kana that can begin a す/する conjugation after an
// onyomi reading.
var suruGate = map[rune]bool{
	'し': true, 'す': true, 'さ': true, 'せ': true, 'ざ': true, 'じ': true,
}

// ExtractOkurigana splits the kana trailing a word into the inflected tail of
// the last kanji's matched reading and the rest.
func (m *Matcher) ExtractOkurigana(info model.ReadingMatchInfo, trailing string) (string, string) {
	if trailing == "" {
		return "", ""
	}
	switch info.Class {
	case model.ClassOnyomi:
		tr := []rune(trailing)
		if !suruGate[tr[0]] {
			// Onyomi carries no okurigana outside す-verb conjugations.
			return "", trailing
		}
		if strings.HasPrefix(trailing, "する") {
			return "する", strings.TrimPrefix(trailing, "する")
		}
		res := m.det.Detect(string(info.Kanji), info.MatchedMora, trailing, okuri.ByWord)
		if res.Type == model.NoOkuri {
			return "", trailing
		}
		return res.Okurigana, res.Rest

	case model.ClassKunyomi:
		dictForm := info.DictForm
		dictOkuri := kanji.KunyomiOkuri(dictForm)
		if dictOkuri == "" {
			// A markerless kunyomi matched first; look for a sibling
			// reading with a marker sharing the same stem.
			dictForm, dictOkuri = m.siblingWithOkuri(info.Kanji, dictForm)
			if dictOkuri == "" {
				return "", trailing
			}
		}
		res := m.det.MatchDictOkuri(string(info.Kanji), kanji.KunyomiStem(dictForm), dictOkuri, trailing)
		if res.Type == model.NoOkuri {
			return "", trailing
		}
		return res.Okurigana, res.Rest
	}
	return "", trailing
}

func (m *Matcher) siblingWithOkuri(kj rune, dictForm string) (string, string) {
	rd, ok := m.dict.Lookup(kj)
	if !ok {
		return dictForm, ""
	}
	for _, kun := range rd.Kunyomi {
		cleaned := kanji.CleanKunyomi(kun)
		dictOkuri := kanji.KunyomiOkuri(cleaned)
		if dictOkuri == "" {
			continue
		}
		stem := kanji.KunyomiStem(cleaned)
		if dictForm == stem || dictForm == stem+dictOkuri {
			log.Debug().
				Str("dict_form", dictForm).
				Str("sibling", cleaned).
				Msg("using sibling kunyomi for okurigana extraction")
			return cleaned, dictOkuri
		}
	}
	return dictForm, ""
}
