package bracket

// Package bracket reads and writes constituency trees in bracketed
// parenthesis notation, e.g. (S (NP the cat) (VP sleeps)).

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/daandouwe/rnng/nlp/types"
)

type token struct {
	kind byte // '(' , ')' or 'w'
	text string
}

func tokenize(s string) []token {
	tokens := make([]token, 0, len(s)/2)
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, token{'w', word.String()})
			word.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '(', ')':
			flush()
			tokens = append(tokens, token{byte(r), ""})
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// Parse reads a single bracketed tree. Bare words become leaves; every
// parenthesized group must open with a nonterminal label.
func Parse(s string) (types.TreeNode, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("bracket: empty input")
	}
	node, rest, err := parseNode(tokens)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("bracket: trailing input after tree in %q", s)
	}
	return node, nil
}

func parseNode(tokens []token) (types.TreeNode, []token, error) {
	switch tokens[0].kind {
	case 'w':
		return &types.LeafNode{Word: tokens[0].text}, tokens[1:], nil
	case '(':
		tokens = tokens[1:]
		if len(tokens) == 0 || tokens[0].kind != 'w' {
			return nil, nil, fmt.Errorf("bracket: expected label after '('")
		}
		node := &types.InternalNode{Label: tokens[0].text}
		tokens = tokens[1:]
		for {
			if len(tokens) == 0 {
				return nil, nil, fmt.Errorf("bracket: unbalanced parentheses")
			}
			if tokens[0].kind == ')' {
				if len(node.Children) == 0 {
					return nil, nil, fmt.Errorf("bracket: empty constituent %s", node.Label)
				}
				node.Close()
				return node, tokens[1:], nil
			}
			child, rest, err := parseNode(tokens)
			if err != nil {
				return nil, nil, err
			}
			node.AddChild(child)
			tokens = rest
		}
	default:
		return nil, nil, fmt.Errorf("bracket: unexpected ')'")
	}
}

// StripPreterminals removes part-of-speech preterminals: an internal node
// whose only child is a leaf is replaced by the leaf itself. Trees without
// preterminals are returned unchanged.
func StripPreterminals(node types.TreeNode) types.TreeNode {
	internal, ok := node.(*types.InternalNode)
	if !ok {
		return node
	}
	if len(internal.Children) == 1 {
		if leaf, ok := internal.Children[0].(*types.LeafNode); ok {
			return leaf
		}
	}
	stripped := &types.InternalNode{Label: internal.Label}
	for _, child := range internal.Children {
		stripped.AddChild(StripPreterminals(child))
	}
	stripped.Close()
	return stripped
}

// Read reads one bracketed tree per line, up to limit trees (0 = no limit).
func Read(reader io.Reader, limit int) ([]types.TreeNode, error) {
	var trees []types.TreeNode
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		tree, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %v", len(trees), err)
		}
		trees = append(trees, tree)
		if limit > 0 && len(trees) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trees, nil
}

func ReadFile(filename string, limit int) ([]types.TreeNode, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, limit)
}

// Write writes one linearized tree per line.
func Write(writer io.Writer, trees []types.TreeNode, withTags bool) error {
	for _, tree := range trees {
		if _, err := fmt.Fprintln(writer, types.Linearized(tree, withTags)); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(filename string, trees []types.TreeNode, withTags bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, trees, withTags)
}
