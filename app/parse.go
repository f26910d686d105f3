package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/daandouwe/rnng/nlp/format/bracket"
	"github.com/daandouwe/rnng/nlp/format/raw"
	"github.com/daandouwe/rnng/nlp/parser/rnng"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

func ParseConfigOut() {
	log.Println("Configuration")
	log.Printf("Input file:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	log.Printf("Output file:\t%s", output)
	log.Printf("Word vocabulary:\t%s", wordsFile)
	if !VerifyExists(wordsFile) {
		os.Exit(1)
	}
	log.Printf("Nonterminals:\t%s", ntFile)
	if !VerifyExists(ntFile) {
		os.Exit(1)
	}
	log.Printf("Beam:\t\t\t%d", BeamSize)
	log.Println()
}

func Parse(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"i", "o", "words", "nt"}

	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		ParseConfigOut()
	}
	system := SetupSystem(false)
	sents, err := raw.ReadFile(input, limit)
	if err != nil {
		return fmt.Errorf("failed reading sentences from %s: %v", input, err)
	}
	if allOut {
		log.Println("Read", len(sents), "sentences from", input)
		log.Println("Parsing with", decoderFor(system, 0).Name())
	}
	startTime := time.Now()
	results, err := rnng.DecodeParallel(func(worker int) rnng.Decoder {
		return decoderFor(system, worker)
	}, sents, Workers)
	if err != nil {
		return fmt.Errorf("parsing failed: %v", err)
	}
	trees := make([]nlp.TreeNode, len(results))
	for i, decoded := range results {
		trees[i] = decoded[0].Tree
	}
	if allOut {
		log.Println("PARSE Total Time:", time.Since(startTime))
	}
	if err := bracket.WriteFile(output, trees, withTags); err != nil {
		return fmt.Errorf("failed writing parses to %s: %v", output, err)
	}
	if allOut {
		log.Println("Wrote", len(trees), "parses to", output)
	}
	return nil
}

func decoderFor(system *rnng.RNNG, worker int) rnng.Decoder {
	if BeamSize > 1 {
		return rnng.NewBeamSearchDecoder(system, BeamSize)
	}
	return rnng.NewGreedyDecoder(system)
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Parse,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parses raw sentences into bracketed trees",
		Long: `
parses raw sentences into bracketed trees

	$ ./rnng parse -i <raw> -o <bracketed> -words <vocab> -nt <vocab> [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "i", "", "Raw Input File (one sentence per line)")
	cmd.Flag.StringVar(&output, "o", "", "Bracketed Output File")
	cmd.Flag.StringVar(&wordsFile, "words", "", "Word Vocabulary File")
	cmd.Flag.StringVar(&ntFile, "nt", "", "Nonterminal Vocabulary File")
	cmd.Flag.IntVar(&BeamSize, "b", 1, "Beam Size; 1 = greedy")
	cmd.Flag.IntVar(&Workers, "w", 0, "Parallel workers; 0 = all CPUs")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of sentences read; 0 = all")
	cmd.Flag.BoolVar(&withTags, "tags", false, "Wrap leaves in dummy preterminals")
	return cmd
}
