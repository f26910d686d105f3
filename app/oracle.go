package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/daandouwe/rnng/nlp/parser/rnng"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

var (
	oracleGenerative bool
	traceOracle      bool
)

func OracleConfigOut() {
	log.Println("Configuration")
	log.Printf("Treebank:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	log.Printf("Oracle output:\t%s", output)
	log.Printf("Generative:\t\t%v", oracleGenerative)
	log.Println()
}

func ExtractOracles(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"t", "o"}

	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		OracleConfigOut()
	}
	trees := ReadTreebank(input)
	words, nonTerminals := VocabFromTrees(trees)
	if wordsFile != "" {
		if err := WriteVocabFile(wordsFile, words); err != nil {
			return fmt.Errorf("failed writing word vocabulary to %s: %v", wordsFile, err)
		}
	}
	if ntFile != "" {
		if err := WriteVocabFile(ntFile, nonTerminals); err != nil {
			return fmt.Errorf("failed writing nonterminal vocabulary to %s: %v", ntFile, err)
		}
	}
	vocab := rnng.NewVocab(words, nonTerminals, oracleGenerative)
	system := rnng.NewRNNG(vocab, rnng.NewUniformModel(vocab))

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed creating oracle file %s: %v", output, err)
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	startTime := time.Now()
	for i, tree := range trees {
		actions, err := rnng.ExtractActions(tree, vocab)
		if err != nil {
			return fmt.Errorf("failed extracting oracle for tree %d: %v", i, err)
		}
		// replaying the extracted sequence must reproduce the tree
		var words []int
		if !oracleGenerative {
			words, err = vocab.WordIDs(leavesOf(tree))
			if err != nil {
				return fmt.Errorf("failed mapping tree %d: %v", i, err)
			}
		}
		final, err := system.Replay(words, actions)
		if err != nil {
			return fmt.Errorf("oracle replay failed for tree %d: %v", i, err)
		}
		parsed, err := final.Stack.Tree()
		if err != nil {
			return fmt.Errorf("oracle replay failed for tree %d: %v", i, err)
		}
		if !parsed.Equal(tree) {
			return fmt.Errorf("oracle replay produced a different tree for tree %d", i)
		}
		if traceOracle {
			log.Printf("Derivation for tree %d:\n%s", i, final.GetSequence().String())
		}
		names := make([]string, len(actions))
		for j, action := range actions {
			names[j] = vocab.Transitions.ValueOf(action.Value())
		}
		if _, err := writer.WriteString(strings.Join(names, " ") + "\n"); err != nil {
			return fmt.Errorf("failed writing oracle file: %v", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed writing oracle file: %v", err)
	}
	if allOut {
		log.Println("Wrote", len(trees), "oracles to", output)
		log.Println("ORACLE Total Time:", time.Since(startTime))
	}
	return nil
}

func leavesOf(tree nlp.TreeNode) nlp.BasicSentence {
	leaves := tree.Leaves()
	sent := make(nlp.BasicSentence, len(leaves))
	for i, leaf := range leaves {
		sent[i] = nlp.Token(leaf)
	}
	return sent
}

func OracleCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ExtractOracles,
		UsageLine: "oracle <file options> [arguments]",
		Short:     "extracts gold transition sequences from a treebank",
		Long: `
extracts gold transition sequences from a treebank

	$ ./rnng oracle -t <treebank> -o <oracle file> [options]

`,
		Flag: *flag.NewFlagSet("oracle", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "t", "", "Bracketed Treebank File")
	cmd.Flag.StringVar(&output, "o", "", "Oracle Output File")
	cmd.Flag.StringVar(&wordsFile, "words", "", "Word Vocabulary Output File")
	cmd.Flag.StringVar(&ntFile, "nt", "", "Nonterminal Vocabulary Output File")
	cmd.Flag.BoolVar(&oracleGenerative, "gen", false, "Extract generative (GEN) oracles")
	cmd.Flag.BoolVar(&stripTags, "striptags", true, "Strip part-of-speech preterminals from input trees")
	cmd.Flag.BoolVar(&traceOracle, "trace", false, "Log the configuration sequence of every replayed derivation")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of trees read; 0 = all")
	return cmd
}
