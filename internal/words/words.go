// internal/words/words.go
//
// Word bank: categorised lists of candidate secret words.
//
// Responsibilities:
//   - Load category lists from embedded defaults or environment-provided files.
//   - Validate at load time that every word is exactly WordLength letters a–z.
//   - Pick one secret word per game, uniformly, from an injected Source.
//
// Environment variables (optional, one per category):
//   WORDS_GENERAL_FILE=/path/to/general.txt
//   WORDS_MOVIE_FILE=/path/to/movie.txt
//   WORDS_MUSIC_FILE=/path/to/music.txt
//
// A configured file replaces the embedded list for that category.

package words

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordgrid/assets"
)

// WordLength is the number of letters in every secret word.
const WordLength = 5

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidWord     = errors.New("invalid word")
	ErrEmptyCategory   = errors.New("empty category")
)

// Category keys a word list.
type Category string

const (
	General Category = "general"
	Movie   Category = "movie"
	Music   Category = "music"
)

// Categories lists the built-in categories in display order.
var Categories = []Category{General, Movie, Music}

// ParseCategory maps user input to a known category.
// The empty string selects General.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return General, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Bank holds validated word lists.
type Bank struct {
	length int
	lists  map[Category][]string
	order  []Category
}

// NewBank validates lists and builds a bank. Every word must be exactly
// length lowercase letters and no category may be empty. Duplicates are
// dropped so every distinct word is equally likely.
func NewBank(length int, lists map[Category][]string) (*Bank, error) {
	b := &Bank{length: length, lists: make(map[Category][]string, len(lists))}
	for _, c := range Categories {
		if _, ok := lists[c]; ok {
			b.order = append(b.order, c)
		}
	}
	var extra []Category
	for c := range lists {
		if !b.known(c) {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	b.order = append(b.order, extra...)
	for _, c := range b.order {
		list := lists[c]
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyCategory, c)
		}
		for _, w := range list {
			if len(w) != length || !isAlpha(w) {
				return nil, fmt.Errorf("%w: %q in %s (want %d letters a-z)", ErrInvalidWord, w, c, length)
			}
		}
		b.lists[c] = lo.Uniq(list)
	}
	return b, nil
}

// Load builds the default bank: embedded lists, overridden per category by
// WORDS_<CATEGORY>_FILE when set.
func Load() (*Bank, error) {
	lists := make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		var (
			list []string
			err  error
		)
		if path := os.Getenv("WORDS_" + strings.ToUpper(string(c)) + "_FILE"); path != "" {
			list, err = readWordFile(path)
		} else {
			list, err = assets.WordList(string(c))
		}
		if err != nil {
			return nil, fmt.Errorf("load %s words: %w", c, err)
		}
		lists[c] = list
	}
	return NewBank(WordLength, lists)
}

// Pick returns a uniformly chosen word from category c.
// A nil src uses Crypto.
func (b *Bank) Pick(c Category, src Source) (string, error) {
	list, ok := b.lists[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	if src == nil {
		src = Crypto
	}
	return list[src.IntN(len(list))], nil
}

// List returns a copy of the words in category c.
func (b *Bank) List(c Category) ([]string, error) {
	list, ok := b.lists[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return append([]string(nil), list...), nil
}

// Categories returns the categories present in the bank.
func (b *Bank) Categories() []Category {
	return append([]Category(nil), b.order...)
}

// WordLength is the validated length of every word in the bank.
func (b *Bank) WordLength() int { return b.length }

// Stats returns the number of words per category.
func (b *Bank) Stats() map[Category]int {
	return lo.MapValues(b.lists, func(l []string, _ Category) int { return len(l) })
}

func (b *Bank) known(c Category) bool {
	return lo.Contains(b.order, c)
}

// readWordFile loads one word per line from a file on disk.
func readWordFile(path string) ([]string, error) {
	return assets.ReadLines(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
