// Package words supplies the board word pool. The embedded default is the
// classic card set; WORD_POOL_FILE overrides it with one word per line.
package words

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embedded string

var (
	defaultOnce sync.Once
	defaultPool []string
)

// Default returns the embedded word pool, parsed once.
func Default() []string {
	defaultOnce.Do(func() {
		defaultPool = parse(strings.NewReader(embedded))
	})
	return defaultPool
}

// FromFile loads a newline-separated pool from disk.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f), nil
}

// Load resolves the pool from WORD_POOL_FILE if set, otherwise the default.
func Load() ([]string, error) {
	if path := os.Getenv("WORD_POOL_FILE"); path != "" {
		return FromFile(path)
	}
	return Default(), nil
}

func parse(r io.Reader) []string {
	seen := make(map[string]struct{})
	var pool []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		pool = append(pool, word)
	}
	return pool
}
