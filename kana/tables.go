package kana

// Rendaku maps a reading's initial kana to its voiced (or half-voiced)
// alternations seen in compounds.
var Rendaku = map[rune][]rune{
	'か': {'が'}, 'き': {'ぎ'}, 'く': {'ぐ'}, 'け': {'げ'}, 'こ': {'ご'},
	'さ': {'ざ'}, 'し': {'じ'}, 'す': {'ず'}, 'せ': {'ぜ'}, 'そ': {'ぞ'},
	'た': {'だ'}, 'ち': {'ぢ'}, 'つ': {'づ'}, 'て': {'で'}, 'と': {'ど'},
	'は': {'ば', 'ぱ'}, 'ひ': {'び', 'ぴ'}, 'ふ': {'ぶ', 'ぷ'},
	'へ': {'べ', 'ぺ'}, 'ほ': {'ぼ', 'ぽ'},
	'う': {'ぬ'},
}

// SmallTsuFinals are the reading-final kana that geminate to っ in compounds.
var SmallTsuFinals = map[rune]bool{
	'つ': true, 'ち': true, 'く': true, 'き': true,
	'り': true, 'ん': true, 'う': true,
}

// VowelChange maps a reading's initial vowel kana to its glide contractions.
var VowelChange = map[rune][]rune{
	'お': {'よ', 'ょ'},
	'あ': {'や', 'ゃ'},
	'う': {'ゆ', 'ゅ'},
}

// YoonSmall maps the full glide kana to their small yōon forms.
var YoonSmall = map[rune]rune{
	'や': 'ゃ',
	'ゆ': 'ゅ',
	'よ': 'ょ',
}

// NChangeFinals are the reading-final kana that reduce to ん in compounds.
var NChangeFinals = map[rune]bool{
	'の': true,
	'に': true,
}

// LongVowel maps a kana to the vowel its ー elongation stands for.
var LongVowel = map[rune]rune{
	'あ': 'あ', 'か': 'あ', 'さ': 'あ', 'た': 'あ', 'な': 'あ', 'は': 'あ',
	'ま': 'あ', 'や': 'あ', 'ら': 'あ', 'わ': 'あ', 'が': 'あ', 'ざ': 'あ',
	'だ': 'あ', 'ば': 'あ', 'ぱ': 'あ', 'ゃ': 'あ',
	'い': 'い', 'き': 'い', 'し': 'い', 'ち': 'い', 'に': 'い', 'ひ': 'い',
	'み': 'い', 'り': 'い', 'ぎ': 'い', 'じ': 'い', 'ぢ': 'い', 'び': 'い',
	'ぴ': 'い',
	'う': 'う', 'く': 'う', 'す': 'う', 'つ': 'う', 'ぬ': 'う', 'ふ': 'う',
	'む': 'う', 'ゆ': 'う', 'る': 'う', 'ぐ': 'う', 'ず': 'う', 'づ': 'う',
	'ぶ': 'う', 'ぷ': 'う', 'ゅ': 'う',
	'え': 'え', 'け': 'え', 'せ': 'え', 'て': 'え', 'ね': 'え', 'へ': 'え',
	'め': 'え', 'れ': 'え', 'げ': 'え', 'ぜ': 'え', 'で': 'え', 'べ': 'え',
	'ぺ': 'え',
	'お': 'お', 'こ': 'お', 'そ': 'お', 'と': 'お', 'の': 'お', 'ほ': 'お',
	'も': 'お', 'よ': 'お', 'ろ': 'お', 'を': 'お', 'ご': 'お', 'ぞ': 'お',
	'ど': 'お', 'ぼ': 'お', 'ぽ': 'お', 'ょ': 'お',
}

// RendakuForms returns the voiced alternations of s's first kana applied to
// the whole string, or nil when the first kana has none.
func RendakuForms(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	voiced, ok := Rendaku[runes[0]]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(voiced))
	for _, v := range voiced {
		out = append(out, string(v)+string(runes[1:]))
	}
	return out
}
