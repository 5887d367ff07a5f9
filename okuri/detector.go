package okuri

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"kanahighlight/model"
)

// ParseStrategy selects what heads the text handed to the analyzer. Some
// entries only parse correctly one way; callers retry with the other strategy
// when the first yields nothing usable.
type ParseStrategy int

const (
	// ByWord analyzes kanji + trailing kana.
	ByWord ParseStrategy = iota
	// ByReading analyzes the kana reading + trailing kana; used when the
	// kanji itself mis-parses or when no kanji-glyph link exists.
	ByReading
)

// maxRetries bounds the strategy fallback so the two strategies are tried at
// most once each.
const maxRetries = 1

// IPA coarse part-of-speech categories.
const (
	posVerb       = "動詞"
	posIAdjective = "形容詞"
	posNoun       = "名詞"
	posAdverb     = "副詞"
	posBoundAux   = "助動詞"
	posParticle   = "助詞"
)

// Inflected forms accepted as i-adjective continuations.
const (
	formContinuativeTa = "連用タ接続"
	formHypothetical   = "仮定形"
)

// wordClass is the coarse classification the continuation rules key on.
type wordClass int

const (
	classNone wordClass = iota
	classVerb
	classIAdjective
	classNaAdjective
	classAdverb
	classNoun
)

// Detector splits trailing kana into the inflected tail of a matched reading
// and the rest. Analyzer calls are memoized; a Detector is safe for
// concurrent use when its Analyzer is.
type Detector struct {
	az Analyzer

	mu   sync.Mutex
	memo map[memoKey]model.OkuriResult
}

type memoKey struct {
	word     string
	reading  string
	trailing string
	strategy ParseStrategy
}

// NewDetector wraps az with memoization.
func NewDetector(az Analyzer) *Detector {
	return &Detector{az: az, memo: make(map[memoKey]model.OkuriResult)}
}

// Detect finds the longest prefix of trailing that is the conjugated tail of
// word read as reading. The zero result carries Type NoOkuri with all of
// trailing in Rest.
func (d *Detector) Detect(word, reading, trailing string, strategy ParseStrategy) model.OkuriResult {
	if trailing == "" {
		return model.OkuriResult{Type: model.NoOkuri}
	}
	key := memoKey{word, reading, trailing, strategy}
	d.mu.Lock()
	if res, ok := d.memo[key]; ok {
		d.mu.Unlock()
		return res
	}
	d.mu.Unlock()

	res := d.detect(word, reading, trailing, strategy, 0)

	d.mu.Lock()
	d.memo[key] = res
	d.mu.Unlock()
	return res
}

func (d *Detector) detect(word, reading, trailing string, strategy ParseStrategy, depth int) model.OkuriResult {
	noOkuri := model.OkuriResult{Rest: trailing, Type: model.NoOkuri}

	prefix := ""
	switch strategy {
	case ByWord:
		switch {
		case word != "":
			// 為 parses wrong headed by its glyph; 抉 likewise.
			if (word == "為" && reading == "し") || word == "抉" {
				prefix, strategy = reading, ByReading
			} else {
				prefix = word
			}
		case reading != "":
			prefix, strategy = reading, ByReading
		}
	case ByReading:
		switch {
		case reading != "":
			prefix = reading
		case word != "":
			prefix, strategy = word, ByWord
		}
	}
	if prefix == "" {
		return noOkuri
	}

	if res, ok := handVerified(word, reading, trailing); ok {
		return res
	}

	tokens := d.az.Analyze(prefix + trailing)
	if len(tokens) == 0 {
		log.Debug().Str("text", prefix+trailing).Msg("analyzer returned no tokens")
		return noOkuri
	}
	first := tokens[0]
	class := classify(first)
	if class == classNone {
		if strategy == ByWord && depth < maxRetries {
			return d.detect(word, reading, trailing, ByReading, depth+1)
		}
		log.Debug().
			Str("surface", first.Surface).
			Str("pos", first.POS).
			Msg("first token has no processable part of speech")
		return noOkuri
	}

	// The first token includes the parse prefix; the tail beyond it is the
	// start of the conjugation.
	surfaceRunes := []rune(first.Surface)
	prefixLen := len([]rune(prefix))
	conj := ""
	if len(surfaceRunes) > prefixLen {
		conj = string(surfaceRunes[prefixLen:])
	}

	// げ-final nouns (恥ずかしげ = 恥ずかし気) keep the げ out of the tail.
	if class == classNoun && strings.HasSuffix(first.Surface, "げ") && conj != "" {
		conjRunes := []rune(conj)
		conj = string(conjRunes[:len(conjRunes)-1])
		return model.OkuriResult{
			Okurigana: conj,
			Rest:      trimRunes(trailing, len(conjRunes)-1),
			Type:      model.FullOkuri,
		}
	}

	verbLike := false
	consumed := len([]rune(conj))
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		var next *Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}
		if !continues(class, tok, next, &verbLike) {
			break
		}
		conj += tok.Surface
		consumed += len([]rune(tok.Surface))
	}
	return model.OkuriResult{
		Okurigana: conj,
		Rest:      trimRunes(trailing, consumed),
		VerbLike:  verbLike,
		Type:      model.DetectedOkuri,
	}
}

// MatchDictOkuri reports how much of trailing belongs to a dictionary
// reading whose inflectable part is dictOkuri: exact and prefix matches win
// immediately; otherwise the analyzer decides how far the conjugation
// reaches.
func (d *Detector) MatchDictOkuri(word, stem, dictOkuri, trailing string) model.OkuriResult {
	if dictOkuri == "" || trailing == "" {
		return model.OkuriResult{Rest: trailing, Type: model.NoOkuri}
	}
	if trailing == dictOkuri {
		return model.OkuriResult{Okurigana: dictOkuri, Type: model.FullOkuri}
	}
	if strings.HasPrefix(trailing, dictOkuri) {
		return model.OkuriResult{
			Okurigana: dictOkuri,
			Rest:      strings.TrimPrefix(trailing, dictOkuri),
			Type:      model.FullOkuri,
		}
	}
	res := d.Detect(word, stem, trailing, ByWord)
	if res.Type == model.DetectedOkuri {
		res.Type = model.PartialOkuri
	}
	if res.Type == model.NoOkuri {
		res.Rest = trailing
	}
	return res
}

// stoppers end the conjugated tail regardless of class.
var stoppers = map[string]bool{
	"だろう": true, "でしょう": true, "なら": true, "から": true,
}

func continues(class wordClass, tok Token, next *Token, verbLike *bool) bool {
	if stoppers[tok.Surface] {
		return false
	}
	switch class {
	case classVerb:
		if tok.POS == posBoundAux && tok.InflectionType != "" &&
			tok.Headword != "だ" && tok.Headword != "です" {
			return true
		}
		if tok.POS == posParticle {
			if tok.Surface == "て" {
				return true
			}
			if tok.Surface == "で" && next != nil && next.Headword == "いる" {
				return true
			}
		}
		if tok.POS == posVerb {
			switch tok.Headword {
			case "れる", "られる", "せる", "させる", "てる":
				return true
			}
		}
	case classIAdjective:
		if tok.POS == posBoundAux {
			if tok.InflectionForm == formContinuativeTa || tok.InflectionForm == formHypothetical {
				return true
			}
			if tok.Surface == "た" || tok.Surface == "ない" {
				return true
			}
		}
		if tok.POS == posParticle && (tok.Surface == "て" || tok.Surface == "ば") {
			return true
		}
		if tok.Surface == "さ" {
			return true
		}
	case classNaAdjective:
		return tok.Surface == "な"
	case classAdverb, classNoun:
		if tok.POS == posVerb && tok.Headword == "する" {
			*verbLike = true
			return true
		}
		if tok.POS == posBoundAux && tok.Headword != "だ" {
			*verbLike = true
			return true
		}
	}
	return false
}

func classify(first Token) wordClass {
	switch {
	case first.POS == posVerb:
		return classVerb
	case first.POS == posIAdjective:
		return classIAdjective
	// An i-adjective inflected to く gets categorized as an adverb.
	case first.POS == posAdverb && strings.HasSuffix(first.Surface, "く"):
		return classIAdjective
	case first.POS == posNoun && strings.HasSuffix(first.Surface, "か"):
		return classNaAdjective
	case first.POS == posAdverb:
		return classAdverb
	case first.POS == posNoun:
		return classNoun
	}
	return classNone
}

// handVerified short-circuits combinations the analyzer is known to
// mis-segment.
func handVerified(word, reading, trailing string) (model.OkuriResult, bool) {
	if word == "久" && reading == "ひさ" && strings.HasPrefix(trailing, "しぶり") {
		// 久しぶり parses as a single noun instead of ひさし+ぶり.
		return model.OkuriResult{
			Okurigana: "し",
			Rest:      trimRunes(trailing, 1),
			Type:      model.DetectedOkuri,
		}, true
	}
	if word == "仄々" && reading == "ほのぼの" {
		for _, oku := range []string{"した", "しい", "し"} {
			if strings.HasPrefix(trailing, oku) {
				return model.OkuriResult{
					Okurigana: oku,
					Rest:      strings.TrimPrefix(trailing, oku),
					Type:      model.DetectedOkuri,
				}, true
			}
		}
	}
	return model.OkuriResult{}, false
}

// trimRunes drops the first n runes of s.
func trimRunes(s string, n int) string {
	runes := []rune(s)
	if n >= len(runes) {
		return ""
	}
	return string(runes[n:])
}
