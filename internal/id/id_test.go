package id

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPeriodRoundTrip(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s := ForPeriod(d)
	assert.Len(t, s, 26)

	u, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.True(t, ulid.Time(u.Time()).Equal(d))
}

func TestForPeriodSortsByPeriod(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 5; i >= 0; i-- {
		ids = append(ids, ForPeriod(base.AddDate(0, 0, 7*i)))
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for i := range ids {
		assert.Equal(t, ids[len(ids)-1-i], sorted[i])
	}
}

// Not parallel: monotonic ordering only holds while no other period is
// drawn in between.
func TestForPeriodSameDateUnique(t *testing.T) {
	d := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	a, b := ForPeriod(d), ForPeriod(d)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestForPeriodBeforeEpoch(t *testing.T) {
	t.Parallel()

	u, err := ulid.ParseStrict(ForPeriod(time.Date(1969, 7, 20, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), u.Time())
}
