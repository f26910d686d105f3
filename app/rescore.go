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
	"github.com/daandouwe/rnng/nlp/format/sample"
	"github.com/daandouwe/rnng/nlp/parser/rnng"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

func RescoreConfigOut() {
	log.Println("Configuration")
	log.Printf("Input file:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	log.Printf("Sample file:\t%s", samples)
	if !VerifyExists(samples) {
		os.Exit(1)
	}
	log.Printf("Output file:\t%s", output)
	log.Println()
}

func Rescore(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"i", "s", "o", "words", "nt"}

	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		RescoreConfigOut()
	}
	system := SetupSystem(true)
	decoder := rnng.NewGenerativeImportanceDecoder(system, NumSamples)
	sents, err := raw.ReadFile(input, limit)
	if err != nil {
		return fmt.Errorf("failed reading sentences from %s: %v", input, err)
	}
	groups, err := sample.ReadFile(samples)
	if err != nil {
		return fmt.Errorf("failed reading samples from %s: %v", samples, err)
	}
	if len(groups) != len(sents) {
		return fmt.Errorf("samples cover %d sentences but input has %d", len(groups), len(sents))
	}
	if allOut {
		log.Println("Read", len(sents), "sentences and their samples")
	}
	startTime := time.Now()
	trees := make([]nlp.TreeNode, len(sents))
	totalLogProb, totalWords := 0.0, 0
	for i, sent := range sents {
		best, logProb, err := decoder.Rescore(sent, groups[i])
		if err != nil {
			return fmt.Errorf("rescoring failed for sentence %d: %v", i, err)
		}
		trees[i] = best.Tree
		totalLogProb += logProb
		totalWords += len(sent)
	}
	if allOut {
		log.Println("RESCORE Total Time:", time.Since(startTime))
		log.Println("Perplexity:", rnng.Perplexity(totalLogProb, totalWords))
	}
	if err := bracket.WriteFile(output, trees, withTags); err != nil {
		return fmt.Errorf("failed writing parses to %s: %v", output, err)
	}
	if allOut {
		log.Println("Wrote", len(trees), "rescored parses to", output)
	}
	return nil
}

func RescoreCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Rescore,
		UsageLine: "rescore <file options> [arguments]",
		Short:     "rescores proposal samples under the joint model",
		Long: `
rescores proposal samples under the joint model

	$ ./rnng rescore -i <raw> -s <samples> -o <bracketed> -words <vocab> -nt <vocab> [options]

`,
		Flag: *flag.NewFlagSet("rescore", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "i", "", "Raw Input File (one sentence per line)")
	cmd.Flag.StringVar(&samples, "s", "", "Proposal Sample File")
	cmd.Flag.StringVar(&output, "o", "", "Bracketed Output File")
	cmd.Flag.StringVar(&wordsFile, "words", "", "Word Vocabulary File")
	cmd.Flag.StringVar(&ntFile, "nt", "", "Nonterminal Vocabulary File")
	cmd.Flag.IntVar(&NumSamples, "n", 0, "Expected samples per sentence; 0 = any")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of sentences read; 0 = all")
	cmd.Flag.BoolVar(&withTags, "tags", false, "Wrap leaves in dummy preterminals")
	return cmd
}
