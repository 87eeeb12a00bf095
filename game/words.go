package game

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

var ErrEmptyWordList = errors.New("word list is empty")

// DefaultWords is used when no word file is configured.
var DefaultWords = []string{
	"apple", "grape", "berry", "mango", "peach",
	"lemon", "melon", "guava", "olive", "chard",
}

// WordProvider supplies secret words.
type WordProvider interface {
	Pick() string
}

// ListProvider picks uniformly from a fixed list.
type ListProvider struct {
	words []string
	rng   *rand.Rand
	mu    sync.Mutex
}

func NewListProvider(words []string, rng *rand.Rand) (*ListProvider, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	return &ListProvider{
		words: append([]string(nil), words...),
		rng:   rng,
	}, nil
}

func (p *ListProvider) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.words[p.rng.Intn(len(p.words))]
}

// LoadWords reads one word per line. Blank lines and words that do not fill
// exactly one grid row are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open word file %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if utf8.RuneCountInString(word) != Cols {
			continue
		}
		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading word file %s: %w", path, err)
	}

	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	return words, nil
}
