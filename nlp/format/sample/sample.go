package sample

// Package sample reads and writes proposal-sample files used by importance
// sampling. Each line holds one sample:
//
//	<sentence-index> ||| <log-probability> ||| <bracketed-tree>
//
// Samples for one sentence are contiguous and sentence indices start at 0.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const separator = "|||"

// Sample is one proposal derivation with its proposal log-probability.
type Sample struct {
	Index   int
	LogProb float64
	Tree    string
}

// Read returns the samples grouped per sentence, in sentence order.
func Read(reader io.Reader) ([][]Sample, error) {
	var groups [][]Sample
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		parts := strings.SplitN(line, separator, 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("sample: line %d: expected 3 fields separated by %q", lineNum, separator)
		}
		index, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("sample: line %d: bad sentence index: %v", lineNum, err)
		}
		logProb, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("sample: line %d: bad log-probability: %v", lineNum, err)
		}
		tree := strings.TrimSpace(parts[2])
		switch {
		case index == len(groups):
			groups = append(groups, nil)
		case index != len(groups)-1:
			return nil, fmt.Errorf("sample: line %d: sentence index %d out of order", lineNum, index)
		}
		groups[index] = append(groups[index], Sample{Index: index, LogProb: logProb, Tree: tree})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func ReadFile(filename string) ([][]Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func Write(writer io.Writer, groups [][]Sample) error {
	for index, group := range groups {
		for _, s := range group {
			if _, err := fmt.Fprintf(writer, "%d %s %v %s %s\n", index, separator, s.LogProb, separator, s.Tree); err != nil {
				return err
			}
		}
	}
	return nil
}

func WriteFile(filename string, groups [][]Sample) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if err := Write(writer, groups); err != nil {
		return err
	}
	return writer.Flush()
}
