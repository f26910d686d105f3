package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/daandouwe/rnng/nlp/format/raw"
	"github.com/daandouwe/rnng/nlp/format/sample"
	"github.com/daandouwe/rnng/nlp/parser/rnng"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

func SampleConfigOut() {
	log.Println("Configuration")
	log.Printf("Input file:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	log.Printf("Sample file:\t%s", output)
	log.Printf("Samples:\t\t%d", NumSamples)
	log.Printf("Alpha:\t\t%v", Alpha)
	log.Println()
}

func SampleProposals(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"i", "o", "words", "nt"}

	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		SampleConfigOut()
	}
	system := SetupSystem(false)
	sents, err := raw.ReadFile(input, limit)
	if err != nil {
		return fmt.Errorf("failed reading sentences from %s: %v", input, err)
	}
	if allOut {
		log.Println("Read", len(sents), "sentences from", input)
	}
	startTime := time.Now()
	results, err := rnng.DecodeParallel(func(worker int) rnng.Decoder {
		return rnng.NewSamplingDecoder(system, NumSamples, Alpha, Seed+int64(worker))
	}, sents, Workers)
	if err != nil {
		return fmt.Errorf("sampling failed: %v", err)
	}
	groups := make([][]sample.Sample, len(results))
	for i, decoded := range results {
		group := make([]sample.Sample, len(decoded))
		for j, s := range decoded {
			group[j] = sample.Sample{
				Index:   i,
				LogProb: s.LogProb,
				Tree:    nlp.Linearized(s.Tree, withTags),
			}
		}
		groups[i] = group
	}
	if allOut {
		log.Println("SAMPLE Total Time:", time.Since(startTime))
	}
	if err := sample.WriteFile(output, groups); err != nil {
		return fmt.Errorf("failed writing samples to %s: %v", output, err)
	}
	if allOut {
		log.Println("Wrote", NumSamples, "samples per sentence to", output)
	}
	return nil
}

func SampleCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       SampleProposals,
		UsageLine: "sample <file options> [arguments]",
		Short:     "samples proposal derivations for importance rescoring",
		Long: `
samples proposal derivations for importance rescoring

	$ ./rnng sample -i <raw> -o <samples> -words <vocab> -nt <vocab> [options]

`,
		Flag: *flag.NewFlagSet("sample", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "i", "", "Raw Input File (one sentence per line)")
	cmd.Flag.StringVar(&output, "o", "", "Sample Output File")
	cmd.Flag.StringVar(&wordsFile, "words", "", "Word Vocabulary File")
	cmd.Flag.StringVar(&ntFile, "nt", "", "Nonterminal Vocabulary File")
	cmd.Flag.IntVar(&NumSamples, "n", 100, "Samples per sentence")
	cmd.Flag.Float64Var(&Alpha, "alpha", 0.8, "Flattening exponent for the proposal distribution")
	cmd.Flag.Int64Var(&Seed, "seed", 42, "Random seed")
	cmd.Flag.IntVar(&Workers, "w", 0, "Parallel workers; 0 = all CPUs")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of sentences read; 0 = all")
	cmd.Flag.BoolVar(&withTags, "tags", false, "Wrap leaves in dummy preterminals")
	return cmd
}
