// assets/embed.go
//
// Embedded data shipped with the binary:
//   - words/<category>.txt: secret word lists, one word per line.
//   - sql/*.sql:            schema migrations for the stats database.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words/*.txt sql/*.sql
var FS embed.FS

// ReadLines parses a word list: trims, lowercases, skips blanks and # comments.
func ReadLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded list for a category name.
func WordList(category string) ([]string, error) {
	return ReadLines(FS, "words/"+category+".txt")
}

// Migrations returns the embedded migration file names in lexical order.
func Migrations() ([]string, error) {
	return fs.Glob(FS, "sql/*.sql")
}
