// Package okuri finds the inflected tail (okurigana) of a matched reading in
// the kana following a word, using an external morphological analyzer.
package okuri

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one morpheme as reported by the analyzer. POS is the coarse
// part-of-speech category; InflectionType/InflectionForm are the finer
// conjugation tags when the dictionary carries them.
type Token struct {
	Surface        string
	Headword       string
	POS            string
	InflectionType string
	InflectionForm string
}

// Analyzer tokenizes a kana-or-mixed text string into morphemes. The engine
// only reads the token fields; it never configures the analyzer.
type Analyzer interface {
	Analyze(text string) []Token
}

// KagomeAnalyzer adapts a kagome tokenizer to the Analyzer interface.
type KagomeAnalyzer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeAnalyzer builds an analyzer over the IPA dictionary.
func NewKagomeAnalyzer() (*KagomeAnalyzer, error) {
	return newKagomeAnalyzer(ipa.Dict())
}

// NewKagomeUniAnalyzer builds an analyzer over the UniDic dictionary, whose
// segmentation is finer-grained than IPA's.
func NewKagomeUniAnalyzer() (*KagomeAnalyzer, error) {
	return newKagomeAnalyzer(uni.Dict())
}

func newKagomeAnalyzer(d *dict.Dict) (*KagomeAnalyzer, error) {
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("okuri: init tokenizer: %w", err)
	}
	return &KagomeAnalyzer{t: t}, nil
}

// Analyze implements Analyzer.
func (a *KagomeAnalyzer) Analyze(text string) []Token {
	if text == "" {
		return nil
	}
	ktoks := a.t.Tokenize(text)
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		head, ok := kt.BaseForm()
		if !ok || head == "" {
			head = kt.Surface
		}
		pos := ""
		if p := kt.POS(); len(p) > 0 {
			pos = p[0]
		}
		infType, infForm := "", ""
		if features := kt.Features(); len(features) > 5 {
			infType = features[4]
			infForm = features[5]
		}
		out = append(out, Token{
			Surface:        kt.Surface,
			Headword:       head,
			POS:            pos,
			InflectionType: infType,
			InflectionForm: infForm,
		})
	}
	return out
}
