package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLoadsAsCatalog(t *testing.T) {
	end := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(end))
	defer domain.SetClock(nil)

	var buf bytes.Buffer
	require.NoError(t, generate(&buf, 200, rand.New(rand.NewSource(7))))

	tbl, err := catalog.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, tbl.Len())
	assert.Equal(t, header, tbl.Header())

	for _, ev := range tbl.Events() {
		assert.True(t, ev.Time.Before(end), ev.ID)
		assert.True(t, ev.HasMag(), ev.ID)
		assert.NotEmpty(t, domain.Region(ev.Place), ev.ID)
	}
	assert.Subset(t, []string{"ak", "ci", "hv", "nc", "nn", "pr", "us"}, tbl.Networks())
}

func TestGenerateIsDeterministic(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	var a, b bytes.Buffer
	require.NoError(t, generate(&a, 50, rand.New(rand.NewSource(42))))
	require.NoError(t, generate(&b, 50, rand.New(rand.NewSource(42))))
	assert.Equal(t, a.String(), b.String())
}
