package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlukin/weather-lookup-service/internal/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "weather_test.db"))
	require.NoError(t, err)
	return s
}

func sampleRecord(city string) *models.WeatherRecord {
	return &models.WeatherRecord{
		City:          city,
		Temperature:   21.5,
		Humidity:      60,
		Description:   "partly cloudy",
		WindSpeed:     10.1,
		WindDirection: 180,
		WeatherCode:   2,
	}
}

func TestInsert_AssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC()
	rec := sampleRecord("london")
	require.NoError(t, s.Insert(ctx, rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.Timestamp.Before(before), "timestamp %v must not be earlier than insert start %v", rec.Timestamp, before)

	second := sampleRecord("paris")
	require.NoError(t, s.Insert(ctx, second))
	assert.Greater(t, second.ID, rec.ID, "ids must be monotonically increasing")
}

func TestInsert_ThenListRecentReturnsItFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleRecord("london")))
	latest := sampleRecord("tokyo")
	require.NoError(t, s.Insert(ctx, latest))

	records, err := s.ListRecent(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, latest.ID, records[0].ID)
	assert.Equal(t, "tokyo", records[0].City)
}

func TestListRecent_NewestFirstOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, sampleRecord(fmt.Sprintf("city-%d", i))))
	}

	records, err := s.ListRecent(ctx, 0, 5)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].ID > records[i].ID,
			"records out of order: id %d before id %d", records[i-1].ID, records[i].ID)
	}
	assert.Equal(t, "city-4", records[0].City)
}

func TestListRecent_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, s.Insert(ctx, sampleRecord(fmt.Sprintf("city-%d", i))))
	}

	// Pages at increasing skip must never overlap for the same limit.
	seen := map[uint]bool{}
	for skip := 0; skip < 7; skip += 3 {
		page, err := s.ListRecent(ctx, skip, 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page), 3)
		for _, rec := range page {
			assert.False(t, seen[rec.ID], "record %d returned twice across pages", rec.ID)
			seen[rec.ID] = true
		}
	}
	assert.Len(t, seen, 7)
}

func TestListRecent_OutOfRangeArguments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleRecord("london")))

	tests := []struct {
		name    string
		skip    int
		limit   int
		wantLen int
	}{
		{"skip beyond rows", 10, 10, 0},
		{"limit zero", 0, 0, 0},
		{"limit beyond rows", 0, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.ListRecent(ctx, tt.skip, tt.limit)
			require.NoError(t, err)
			assert.Len(t, records, tt.wantLen)
		})
	}
}

func TestListRecent_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	records, err := s.ListRecent(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInsert_RoundTripPreservesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &models.WeatherRecord{
		City:          "  London ", // stored raw, exactly as submitted
		Temperature:   -3.4,
		Humidity:      50,
		Description:   "Unknown",
		WindSpeed:     0,
		WindDirection: 359.9,
		WeatherCode:   123,
	}
	require.NoError(t, s.Insert(ctx, rec))

	records, err := s.ListRecent(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "  London ", got.City)
	assert.Equal(t, -3.4, got.Temperature)
	assert.Equal(t, 50.0, got.Humidity)
	assert.Equal(t, "Unknown", got.Description)
	assert.Equal(t, 0.0, got.WindSpeed)
	assert.Equal(t, 359.9, got.WindDirection)
	assert.Equal(t, 123, got.WeatherCode)
}
