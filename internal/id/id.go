// Package id issues ledger entry identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// ForPeriod returns a ULID whose timestamp is the period date, so entry
// IDs sort in period order.
func ForPeriod(period time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	ms := ulid.Timestamp(period.UTC())
	if period.Before(time.UnixMilli(0)) {
		ms = 0
	}
	return ulid.MustNew(ms, mono).String()
}
