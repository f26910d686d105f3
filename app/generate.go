package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/daandouwe/rnng/nlp/parser/rnng"
)

func GenerateConfigOut() {
	log.Println("Configuration")
	log.Printf("Output file:\t%s", output)
	log.Printf("Samples:\t\t%d", NumSamples)
	log.Printf("Alpha:\t\t%v", Alpha)
	log.Println()
}

func Generate(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"o", "words", "nt"}

	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		GenerateConfigOut()
	}
	system := SetupSystem(true)
	decoder := rnng.NewGenerativeSamplingDecoder(system, Alpha, Seed)
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed creating output file %s: %v", output, err)
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	startTime := time.Now()
	samples, err := decoder.SampleN(NumSamples)
	if err != nil {
		return fmt.Errorf("generation failed: %v", err)
	}
	for _, s := range samples {
		if _, err := fmt.Fprintln(writer, s); err != nil {
			return fmt.Errorf("failed writing output file: %v", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed writing output file: %v", err)
	}
	if allOut {
		log.Println("GENERATE Total Time:", time.Since(startTime))
		log.Println("Wrote", len(samples), "sampled derivations to", output)
	}
	return nil
}

func GenerateCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Generate,
		UsageLine: "generate <file options> [arguments]",
		Short:     "samples (sentence, tree) pairs from the joint model",
		Long: `
samples (sentence, tree) pairs from the joint model

	$ ./rnng generate -o <output> -words <vocab> -nt <vocab> [options]

`,
		Flag: *flag.NewFlagSet("generate", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&output, "o", "", "Output File (logprob and tree per line)")
	cmd.Flag.StringVar(&wordsFile, "words", "", "Word Vocabulary File")
	cmd.Flag.StringVar(&ntFile, "nt", "", "Nonterminal Vocabulary File")
	cmd.Flag.IntVar(&NumSamples, "n", 100, "Number of samples")
	cmd.Flag.Float64Var(&Alpha, "alpha", 1, "Flattening exponent for the joint distribution")
	cmd.Flag.Int64Var(&Seed, "seed", 42, "Random seed")
	return cmd
}
