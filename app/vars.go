package app

import (
	"bufio"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/gonuts/commander"

	"github.com/daandouwe/rnng/nlp/format/bracket"
	"github.com/daandouwe/rnng/nlp/parser/rnng"
	nlp "github.com/daandouwe/rnng/nlp/types"
)

var (
	allOut bool = true

	// processing options
	BeamSize   int
	NumSamples int
	Alpha      float64
	Seed       int64
	Workers    int

	// file names
	input     string
	output    string
	wordsFile string
	ntFile    string
	samples   string
	limit     int
	withTags  bool
	stripTags bool
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f.Value.String() == "" {
			log.Printf("Required flag %s not set", f.Name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}

// ReadVocabFile reads a vocabulary listing, one symbol per line.
func ReadVocabFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var values []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > 0 {
			values = append(values, line)
		}
	}
	return values, scanner.Err()
}

// WriteVocabFile writes a vocabulary listing, one symbol per line.
func WriteVocabFile(filename string, values []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	for _, value := range values {
		if _, err := writer.WriteString(value + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// VocabFromTrees collects the sorted word and nonterminal vocabularies of
// a treebank.
func VocabFromTrees(trees []nlp.TreeNode) (words, nonTerminals []string) {
	wordSet := make(map[string]bool)
	labelSet := make(map[string]bool)
	var walk func(node nlp.TreeNode)
	walk = func(node nlp.TreeNode) {
		switch n := node.(type) {
		case *nlp.LeafNode:
			wordSet[n.Word] = true
		case *nlp.InternalNode:
			labelSet[n.Label] = true
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	for _, tree := range trees {
		walk(tree)
	}
	for word := range wordSet {
		words = append(words, word)
	}
	for label := range labelSet {
		nonTerminals = append(nonTerminals, label)
	}
	sort.Strings(words)
	sort.Strings(nonTerminals)
	return words, nonTerminals
}

// SetupSystem loads the vocabularies and builds a transition system over
// the reference model.
func SetupSystem(generative bool) *rnng.RNNG {
	words, err := ReadVocabFile(wordsFile)
	if err != nil {
		log.Fatalln("Failed reading word vocabulary from", wordsFile, err)
	}
	nonTerminals, err := ReadVocabFile(ntFile)
	if err != nil {
		log.Fatalln("Failed reading nonterminal vocabulary from", ntFile, err)
	}
	if allOut {
		log.Println("Read", len(words), "words and", len(nonTerminals), "nonterminals")
	}
	vocab := rnng.NewVocab(words, nonTerminals, generative)
	system := rnng.NewRNNG(vocab, rnng.NewUniformModel(vocab))
	system.AddDefaultOracle()
	return system
}

// ReadTreebank reads bracketed trees, stripping part-of-speech
// preterminals when the input carries them.
func ReadTreebank(filename string) []nlp.TreeNode {
	trees, err := bracket.ReadFile(filename, limit)
	if err != nil {
		log.Fatalln("Failed reading treebank from", filename, err)
	}
	if stripTags {
		for i, tree := range trees {
			trees[i] = bracket.StripPreterminals(tree)
		}
	}
	if allOut {
		log.Println("Read", len(trees), "trees from", filename)
	}
	return trees
}
