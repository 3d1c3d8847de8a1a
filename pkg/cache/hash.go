package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key builds a cache key of the form prefix:hash(parts...).
// Parts are length-prefixed so ("ab", "c") and ("a", "bc") differ.
func Key(prefix string, parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(strconv.Itoa(len(p)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(p)
	}
	return prefix + ":" + strconv.FormatUint(d.Sum64(), 16)
}

// Hash computes the xxhash of data as a 16-character hex string.
func Hash(data []byte) string {
	s := strconv.FormatUint(xxhash.Sum64(data), 16)
	return strings.Repeat("0", 16-len(s)) + s
}
