// Package wordlist is the corpus loader: it reads a newline-delimited
// UTF-8 wordlist and yields one code-point string per non-empty line.
// It is plumbing around the induction core, not part of it.
package wordlist

import (
	"bufio"
	"os"

	"github.com/bastiangx/lexhnd/internal/cps"
)

// Load reads path, strips each line's trailing newline, and returns
// one cps.String per non-empty line, ignoring empty lines.
func Load(path string) ([]cps.String, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var corpus []cps.String
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		corpus = append(corpus, cps.FromString(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return corpus, nil
}
