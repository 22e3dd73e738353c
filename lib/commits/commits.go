package commits

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pair is two revision ids whose compiled-code performance is being
// compared.
type Pair struct {
	From string
	To   string
}

// ReadPairs reads a newline-delimited commits file, one whitespace
// separated `from to` pair per line. Blank lines and lines starting
// with '#' are skipped.
func ReadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []Pair
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf(
				"%s:%d: expected two commit ids, got %d fields",
				path, lineno, len(fields),
			)
		}
		pairs = append(pairs, Pair{From: fields[0], To: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}
