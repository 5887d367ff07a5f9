// Command kanahl annotates word[reading] tokens in text with reading-class
// tags and optionally highlights one kanji.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"kanahighlight"
	"kanahighlight/furi"
	"kanahighlight/kanji"
)

func main() {
	dictPath := flag.String("kanjidic", "dict/kanjidic2.xml", "path to the kanjidic2 XML file")
	modeName := flag.String("mode", "furigana", "output layout: furigana, furikanji or kana")
	highlight := flag.String("highlight", "", "kanji to highlight")
	uniDict := flag.Bool("unidic", false, "use the UniDic analyzer dictionary instead of IPA")
	noMerge := flag.Bool("no-merge", false, "keep consecutive same-class spans separate")
	noTags := flag.Bool("no-tags", false, "omit reading-class tags")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var mode furi.Mode
	switch *modeName {
	case "furigana":
		mode = furi.Furigana
	case "furikanji":
		mode = furi.Furikanji
	case "kana":
		mode = furi.KanaOnly
	default:
		log.Fatal().Str("mode", *modeName).Msg("unknown output mode")
	}

	dict, err := kanji.LoadKanjidic2(*dictPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dictPath).Msg("failed to load kanjidic2")
	}
	log.Info().Int("kanji", len(dict)).Msg("reading dictionary loaded")

	render := kanahighlight.DefaultRenderOptions()
	render.MergeConsecutive = !*noMerge
	render.WithTags = !*noTags

	opts := []kanahighlight.Option{kanahighlight.WithRenderOptions(render)}
	if *uniDict {
		opts = append(opts, kanahighlight.WithUniDict())
	}
	engine, err := kanahighlight.NewEngine(dict, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build engine")
	}

	var target rune
	for _, r := range *highlight {
		target = r
		break
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			fmt.Println(engine.Process(arg, target, mode))
		}
		return
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fmt.Println(engine.Process(scanner.Text(), target, mode))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("reading stdin")
	}
}
