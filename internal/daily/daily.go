// internal/daily/daily.go
//
// The daily word: one secret per UTC calendar day, shared by every player.
//
// Source plugs into words.Bank.Pick like any other random source, but its
// "random" index is a keyed hash of the day, so it is stable from midnight
// to midnight UTC and cannot be guessed ahead without DAILY_SALT.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const keyLayout = "2006-01-02"

// DateKey names the UTC day containing t, e.g. "2026-10-17".
func DateKey(t time.Time) string { return t.In(time.UTC).Format(keyLayout) }

// Source picks the daily index for Date. It satisfies words.Source.
type Source struct {
	Date time.Time
	Salt string
}

// Key is the day this source picks for.
func (s Source) Key() string { return DateKey(s.Date) }

// IntN maps HMAC-SHA256(Salt, Key) onto [0, n). Lists of length 0 or less
// get 0.
func (s Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(s.Salt))
	mac.Write([]byte(s.Key()))
	digest := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(digest) % uint64(n))
}
