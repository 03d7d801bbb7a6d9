package pkg

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var lastShortCode atomic.Int64

// NewID returns a random UUID string used as an entity identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether s is a well-formed UUID.
func ValidID(s string) bool {
	return uuid.Validate(s) == nil
}

// ShortCode returns a time-derived code "<PREFIX>-<base36 micros>".
// Codes issued by this process are strictly increasing even when t repeats.
func ShortCode(prefix string, t time.Time) string {
	v := t.UnixMicro()
	for {
		last := lastShortCode.Load()
		if v <= last {
			v = last + 1
		}
		if lastShortCode.CompareAndSwap(last, v) {
			break
		}
	}
	return prefix + "-" + strings.ToUpper(strconv.FormatInt(v, 36))
}
