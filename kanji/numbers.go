package kanji

import "strings"

var digitKanji = [...]rune{'零', '一', '二', '三', '四', '五', '六', '七', '八', '九'}

// smallUnits are the in-group magnitude markers, index 1..3 for 10^1..10^3.
var smallUnits = [...]string{"", "十", "百", "千"}

// groupUnits mark each 4-digit group, ordered by ascending magnitude.
var groupUnits = [...]string{"", "万", "億", "兆", "京"}

// NumberToKanji converts a run of ASCII or full-width digits to its kanji
// numeral spelling (e.g. "40" → "四十", "１２３" → "百二十三"). A leading 一
// is elided before every magnitude unit, so "10" becomes 十 and "100000000"
// becomes 億. Strings that are not purely digits are returned unchanged.
func NumberToKanji(num string) string {
	digits := make([]int, 0, len(num))
	for _, r := range num {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r >= '０' && r <= '９':
			digits = append(digits, int(r-'０'))
		default:
			return num
		}
	}
	if len(digits) == 0 {
		return num
	}
	// Drop leading zeros; an all-zero input is 零.
	for len(digits) > 1 && digits[0] == 0 {
		digits = digits[1:]
	}
	if len(digits) == 1 && digits[0] == 0 {
		return string(digitKanji[0])
	}
	if len(digits) > 4*len(groupUnits) {
		// Beyond 京 range; leave the input alone.
		return num
	}

	var b strings.Builder
	// Walk 4-digit groups from the most significant end.
	firstGroup := (len(digits) + 3) / 4
	for gi := firstGroup - 1; gi >= 0; gi-- {
		start := len(digits) - (gi+1)*4
		end := start + 4
		if start < 0 {
			start = 0
		}
		group := digits[start:end]
		part := groupToKanji(group)
		if part == "" {
			continue
		}
		if gi > 0 && part == string(digitKanji[1]) {
			// 一万 → 万, 一億 → 億 and so on.
			part = ""
		}
		b.WriteString(part)
		b.WriteString(groupUnits[gi])
	}
	if b.Len() == 0 {
		return string(digitKanji[0])
	}
	return b.String()
}

func groupToKanji(group []int) string {
	var b strings.Builder
	n := len(group)
	for i, d := range group {
		if d == 0 {
			continue
		}
		unit := smallUnits[n-1-i]
		if d == 1 && unit != "" {
			b.WriteString(unit)
			continue
		}
		b.WriteRune(digitKanji[d])
		b.WriteString(unit)
	}
	return b.String()
}

// ExpandedWord is a word with its digit runs rewritten as kanji numerals so
// the alignment can match numeral readings, plus the bookkeeping needed to
// render the original digits afterwards.
type ExpandedWord struct {
	// Runes is the expanded word the alignment operates on.
	Runes []rune
	// Surface holds, per expanded position, the original text it stands
	// for: the digit run on the first position of a numeral expansion,
	// "" on its continuation positions, and the rune itself elsewhere.
	Surface []string
	// Numeral flags the positions that came from a digit run.
	Numeral []bool
}

// ExpandDigits rewrites each digit run of word into kanji numerals.
func ExpandDigits(word string) ExpandedWord {
	var ew ExpandedWord
	runes := []rune(word)
	for i := 0; i < len(runes); {
		if !isDigitRune(runes[i]) {
			ew.Runes = append(ew.Runes, runes[i])
			ew.Surface = append(ew.Surface, string(runes[i]))
			ew.Numeral = append(ew.Numeral, false)
			i++
			continue
		}
		j := i
		for j < len(runes) && isDigitRune(runes[j]) {
			j++
		}
		run := string(runes[i:j])
		converted := NumberToKanji(run)
		if converted == run {
			// Conversion declined; keep the digits verbatim.
			for _, r := range runes[i:j] {
				ew.Runes = append(ew.Runes, r)
				ew.Surface = append(ew.Surface, string(r))
				ew.Numeral = append(ew.Numeral, true)
			}
			i = j
			continue
		}
		for k, r := range []rune(converted) {
			ew.Runes = append(ew.Runes, r)
			if k == 0 {
				ew.Surface = append(ew.Surface, run)
			} else {
				ew.Surface = append(ew.Surface, "")
			}
			ew.Numeral = append(ew.Numeral, true)
		}
		i = j
	}
	return ew
}

func isDigitRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '０' && r <= '９')
}
