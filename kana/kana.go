// Package kana provides kana character classification, script conversion and
// the phonetic rule tables and mora segmentation the alignment engine is
// built on.
package kana

import "strings"

// IsKanji reports whether r is a CJK ideograph, the repeater glyph or a
// digit usable inside a kanji word.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FAF) || (r >= 0x3400 && r <= 0x4DBF) ||
		r == Repeater || IsDigit(r)
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is in the katakana block (excluding the
// prolonged sound mark, which is shared between scripts).
func IsKatakana(r rune) bool {
	return r >= 0x30A1 && r <= 0x30F6
}

// IsKana reports whether r is hiragana or katakana, including ー.
func IsKana(r rune) bool {
	return IsHiragana(r) || (r >= 0x30A0 && r <= 0x30FF)
}

// IsDigit reports whether r is an ASCII or full-width digit.
func IsDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '０' && r <= '９')
}

// Repeater is the iteration mark indicating the preceding kanji repeats.
const Repeater = '々'

// ToHiragana converts katakana runes to hiragana, leaving others untouched.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if IsKatakana(r) {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// ToKatakana converts hiragana runes to katakana, leaving others untouched.
func ToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x3041 && r <= 0x3096 {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// IsAllKatakana reports whether s contains at least one kana rune and every
// kana rune in it is katakana.
func IsAllKatakana(s string) bool {
	seen := false
	for _, r := range s {
		if IsHiragana(r) {
			return false
		}
		if IsKatakana(r) {
			seen = true
		}
	}
	return seen
}

// ContainsKana reports whether s contains any kana rune.
func ContainsKana(s string) bool {
	return strings.IndexFunc(s, IsKana) >= 0
}

// ContainsKanji reports whether s contains any kanji rune.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// ParticleHeads are the kana that commonly begin a standalone particle after
// a word; trailing kana starting with one of these is not claimed as
// okurigana by the jukujikun fallback.
var ParticleHeads = map[rune]bool{
	'を': true, 'は': true, 'が': true, 'に': true, 'で': true,
	'と': true, 'も': true, 'へ': true, 'の': true, 'や': true, 'か': true,
}
