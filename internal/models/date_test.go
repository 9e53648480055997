package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDate_TruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 local on Mar 15 is 21:30 UTC on Mar 14
	d := NewDate(time.Date(2025, 3, 15, 2, 30, 0, 0, loc))
	require.Equal(t, "2025-03-14", d.String())
	require.Equal(t, 0, d.Time.Hour())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", d.String())

	_, err = ParseDate("06/01/2025")
	require.Error(t, err)

	_, err = ParseDate("2025-13-01")
	require.Error(t, err)
}

func TestDateAddDays(t *testing.T) {
	d, _ := ParseDate("2025-01-31")
	require.Equal(t, "2025-02-01", d.AddDays(1).String())
	require.Equal(t, "2025-01-01", d.AddDays(-30).String())
}

func TestDateDaysUntil(t *testing.T) {
	a, _ := ParseDate("2025-06-01")
	b, _ := ParseDate("2025-06-08")
	require.Equal(t, 7, a.DaysUntil(b))
	require.Equal(t, -7, b.DaysUntil(a))
	require.Equal(t, 0, a.DaysUntil(a))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2025-06-01")
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-06-01"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01"`), &parsed))
	require.Equal(t, d, parsed)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	require.True(t, empty.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)))
	require.Equal(t, "2025-06-01", d.String())

	// sqlite hands back strings with a time component
	require.NoError(t, d.Scan("2025-06-02 00:00:00+00:00"))
	require.Equal(t, "2025-06-02", d.String())

	require.NoError(t, d.Scan(nil))
	require.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}
