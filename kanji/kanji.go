// Package kanji provides the per-kanji reading dictionary the alignment
// engine matches against, a kanjidic2 XML loader for it, and conversion of
// digit runs to their kanji-numeral spelling.
package kanji

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"kanahighlight/kana"
)

// Readings is the dictionary record for one kanji.
type Readings struct {
	// Onyomi readings, stored in hiragana.
	Onyomi []string
	// Kunyomi readings, keeping the dot marker before the inflectable
	// suffix (e.g. "ひ.く") when the source carries one.
	Kunyomi []string
}

// Dict maps a kanji to its reading data. It is built once and read-only
// thereafter; absence of a key means the kanji has no recorded readings and
// degrades to a jukujikun position downstream.
type Dict map[rune]Readings

// Lookup returns the readings for r. The second value reports presence.
func (d Dict) Lookup(r rune) (Readings, bool) {
	rd, ok := d[r]
	return rd, ok
}

// KunyomiStem returns the portion of a kunyomi reading before the dot
// marker, or the whole reading when there is none.
func KunyomiStem(reading string) string {
	if i := strings.IndexByte(reading, '.'); i >= 0 {
		return reading[:i]
	}
	return reading
}

// KunyomiOkuri returns the inflectable suffix after the dot marker, or ""
// when the reading has none.
func KunyomiOkuri(reading string) string {
	if i := strings.IndexByte(reading, '.'); i >= 0 {
		return reading[i+1:]
	}
	return ""
}

// CleanKunyomi strips annotations from a kunyomi reading but keeps the dot
// marker so stem and okurigana stay separable.
func CleanKunyomi(reading string) string {
	if i := strings.IndexByte(reading, '('); i >= 0 {
		reading = reading[:i]
	}
	reading = strings.TrimPrefix(reading, "-")
	reading = strings.TrimSuffix(reading, "-")
	return kana.ToHiragana(strings.TrimSpace(reading))
}

// NormalizeReading strips marker characters (dot, leading dash, bracketed
// annotations) and converts katakana so dictionary readings compare against
// hiragana furigana.
func NormalizeReading(reading string) string {
	if i := strings.IndexByte(reading, '('); i >= 0 {
		reading = reading[:i]
	}
	reading = strings.TrimPrefix(reading, "-")
	reading = strings.TrimSuffix(reading, "-")
	reading = strings.ReplaceAll(reading, ".", "")
	return kana.ToHiragana(strings.TrimSpace(reading))
}

type kanjidicCharacter struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// LoadKanjidic2 streams a kanjidic2 XML file into a Dict, keeping ja_on and
// ja_kun readings. Onyomi are normalized to hiragana; kunyomi keep their dot
// markers so the matcher can separate stem from okurigana.
func LoadKanjidic2(path string) (Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kanji: open kanjidic2: %w", err)
	}
	defer f.Close()
	return ParseKanjidic2(f)
}

// ParseKanjidic2 decodes kanjidic2 XML from r. Entries whose literal is not
// a single rune are skipped.
func ParseKanjidic2(r io.Reader) (Dict, error) {
	dict := make(Dict)
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kanji: parse kanjidic2: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var c kanjidicCharacter
		if err := d.DecodeElement(&c, &se); err != nil {
			log.Debug().Err(err).Msg("skipping undecodable kanjidic2 character")
			continue
		}
		if utf8.RuneCountInString(c.Literal) != 1 {
			continue
		}
		var rd Readings
		for _, g := range c.ReadingMeaning.RMGroup {
			for _, reading := range g.Reading {
				switch reading.Type {
				case "ja_on":
					rd.Onyomi = append(rd.Onyomi, kana.ToHiragana(reading.Value))
				case "ja_kun":
					rd.Kunyomi = append(rd.Kunyomi, reading.Value)
				}
			}
		}
		literal, _ := utf8.DecodeRuneInString(c.Literal)
		dict[literal] = rd
	}
	log.Debug().Int("entries", len(dict)).Msg("kanjidic2 loaded")
	return dict, nil
}
