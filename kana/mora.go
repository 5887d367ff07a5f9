package kana

import "strings"

// Palatalized (yōon) and other two-kana mora.
var palatalizedMora = []string{
	"くぃ", "きゃ", "きゅ", "きぇ", "きょ",
	"ぐぃ", "ぎゃ", "ぎゅ", "ぎぇ", "ぎょ",
	"すぃ", "しゃ", "しゅ", "しぇ", "しょ",
	"ずぃ", "じゃ", "じゅ", "じぇ", "じょ",
	"てぃ", "とぅ", "ちゃ", "ちゅ", "ちぇ", "ちょ",
	"でぃ", "どぅ", "ぢゃ", "でゅ", "ぢゅ", "ぢぇ", "ぢょ",
	"つぁ", "つぃ", "つぇ", "つぉ",
	"づぁ", "づぃ", "づぇ", "づぉ",
	"ひぃ", "ほぅ", "ひゃ", "ひゅ", "ひぇ", "ひょ",
	"びぃ", "びゃ", "びゅ", "びぇ", "びょ",
	"ぴぃ", "ぴゃ", "ぴゅ", "ぴぇ", "ぴょ",
	"ふぁ", "ふぃ", "ふぇ", "ふぉ",
	"ゔぁ", "ゔぃ", "ゔぇ", "ゔぉ",
	"ぬぃ", "にゃ", "にゅ", "にぇ", "にょ",
	"むぃ", "みゃ", "みゅ", "みぇ", "みょ",
	"るぃ", "りゃ", "りゅ", "りぇ", "りょ",
	"いぇ",
}

var singleKanaMora = []string{
	"か", "く", "け", "こ", "き", "が", "ぐ", "げ", "ご", "ぎ",
	"さ", "す", "せ", "そ", "し", "ざ", "ず", "ぜ", "ぞ", "じ",
	"た", "と", "て", "ち", "だ", "で", "ど", "ぢ", "つ", "づ",
	"は", "へ", "ほ", "ひ", "ば", "ぶ", "べ", "ぼ", "び",
	"ぱ", "ぷ", "ぺ", "ぽ", "ぴ", "ふ", "ゔ",
	"な", "ぬ", "ね", "の", "に",
	"ま", "む", "め", "も", "み",
	"ら", "る", "れ", "ろ", "り",
	"あ", "い", "う", "え", "お",
	"や", "ゆ", "よ", "わ", "ゐ", "ゑ", "を",
}

// moraSet holds every recognized mora string, including elongated forms and
// small-tsu terminated compounds. Keys are hiragana.
var moraSet map[string]bool

// maxMoraRunes is the longest entry in moraSet, in runes.
const maxMoraRunes = 3

func init() {
	moraSet = make(map[string]bool, 8*len(singleKanaMora)+4*len(palatalizedMora))
	add := func(m string) {
		moraSet[m] = true
		moraSet[m+"っ"] = true
	}
	for _, m := range palatalizedMora {
		add(m)
	}
	for _, m := range singleKanaMora {
		add(m)
		// Elongated vowel form of each plain mora.
		add(m + "ー")
	}
	add("ん")
}

// SplitMora segments a kana reading into mora units. The reading is
// normalized to hiragana; wasKatakana records whether the original was fully
// katakana so the caller can restore the script on output.
//
// Two repair passes keep the mora count compatible with the kanji count:
// standalone ん merges into its predecessor when the count exceeds
// kanjiCount, and ー elongations split into their own vowel mora when the
// count falls short of it. Unrecognized characters become singleton mora so
// the concatenation of the result always reproduces the input.
func SplitMora(reading string, kanjiCount int) (mora []string, wasKatakana bool) {
	wasKatakana = IsAllKatakana(reading)
	runes := []rune(ToHiragana(reading))

	for i := 0; i < len(runes); {
		n := maxMoraRunes
		if rem := len(runes) - i; rem < n {
			n = rem
		}
		matched := 1
		for l := n; l >= 1; l-- {
			if moraSet[string(runes[i:i+l])] {
				matched = l
				break
			}
		}
		mora = append(mora, string(runes[i:i+matched]))
		i += matched
	}

	if kanjiCount > 0 && len(mora) > kanjiCount {
		mora = mergeNMora(mora, kanjiCount)
	}
	if kanjiCount > 0 && len(mora) < kanjiCount && strings.ContainsRune(reading, 'ー') {
		mora = splitLongVowels(mora)
	}
	return mora, wasKatakana
}

// mergeNMora folds each standalone ん into the preceding mora.
func mergeNMora(mora []string, kanjiCount int) []string {
	hasN := false
	for _, m := range mora {
		if m == "ん" {
			hasN = true
			break
		}
	}
	if !hasN {
		return mora
	}
	out := make([]string, 0, len(mora))
	for _, m := range mora {
		if m == "ん" && len(out) > 0 {
			out[len(out)-1] += m
			continue
		}
		out = append(out, m)
	}
	return out
}

// splitLongVowels turns mora of the form Xー into X plus the vowel ー stood
// for, as its own mora.
func splitLongVowels(mora []string) []string {
	out := make([]string, 0, len(mora)+1)
	for _, m := range mora {
		runes := []rune(m)
		if len(runes) >= 2 && runes[len(runes)-1] == 'ー' {
			if vowel, ok := LongVowel[runes[len(runes)-2]]; ok {
				out = append(out, string(runes[:len(runes)-1]), string(vowel))
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
