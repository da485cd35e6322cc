// internal/game/score.go
//
// Row scoring.
//
// Two algorithms are available:
//   - Score:       Correct on an exact position match, otherwise Present if the
//                  letter occurs anywhere in the secret, otherwise Absent.
//                  Repeated guess letters are never down-weighted, so "eerie"
//                  against "later" marks every 'e' Present or Correct.
//   - ScoreStrict: the standard two-pass Wordle algorithm that only marks as
//                  many Present tiles as there are unmatched secret letters.
//
// Both return all Unknown for a row with an empty cell or a length mismatch.

package game

// Scorer evaluates one full row against the secret word.
type Scorer func(row []rune, secret string) []Verdict

// Score implements membership scoring.
func Score(row []rune, secret string) []Verdict {
	res := make([]Verdict, len(row))
	sec := []rune(secret)
	if !scorable(row, sec) {
		return res
	}
	for i, ch := range row {
		switch {
		case ch == sec[i]:
			res[i] = Correct
		case containsRune(sec, ch):
			res[i] = Present
		default:
			res[i] = Absent
		}
	}
	return res
}

// ScoreStrict implements the two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count the secret letters left unmatched.
//
// Pass 2:
//   - For each other guess letter: Present while unmatched copies remain
//     (decrementing the count), Absent otherwise.
func ScoreStrict(row []rune, secret string) []Verdict {
	res := make([]Verdict, len(row))
	sec := []rune(secret)
	if !scorable(row, sec) {
		return res
	}

	remaining := make(map[rune]int, len(sec))
	for i, ch := range row {
		if ch == sec[i] {
			res[i] = Correct
		} else {
			remaining[sec[i]]++
		}
	}

	for i, ch := range row {
		if res[i] == Correct {
			continue
		}
		if remaining[ch] > 0 {
			res[i] = Present
			remaining[ch]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// AllCorrect reports whether every verdict is Correct. Empty input is false.
func AllCorrect(v []Verdict) bool {
	if len(v) == 0 {
		return false
	}
	for _, x := range v {
		if x != Correct {
			return false
		}
	}
	return true
}

func scorable(row, secret []rune) bool {
	if len(row) != len(secret) {
		return false
	}
	for _, ch := range row {
		if ch == 0 {
			return false
		}
	}
	return true
}

func containsRune(s []rune, r rune) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}
