package scheduling

import (
	"testing"
	"time"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 17, hour, minute, 0, 0, time.UTC)
}

func session(id, date, start, end string) models.SessionRecord {
	return models.SessionRecord{ID: id, SessionDate: date, StartTime: start, EndTime: end}
}

func TestClassify_BucketUsesCalendarDate(t *testing.T) {
	now := at(12, 0)

	cases := []struct {
		name string
		rec  models.SessionRecord
		want models.BookingBucket
	}{
		{"earlier today", session("1", "2026-10-17", "07:00:00", "08:00:00"), models.BucketToday},
		{"later today", session("2", "2026-10-17", "22:00", "23:00"), models.BucketToday},
		{"tomorrow", session("3", "2026-10-18", "00:00", "01:00"), models.BucketUpcoming},
		{"yesterday", session("4", "2026-10-16", "23:00", "23:59"), models.BucketPast},
		{"timestamp date", session("5", "2026-10-17T00:00:00Z", "13:00", "14:00"), models.BucketToday},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Classify(now, tc.rec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.BookingBucket)
		})
	}
}

func TestClassify_LiveStatusBoundaries(t *testing.T) {
	rec := session("s", "2026-10-17", "09:15", "10:15")

	cases := []struct {
		now  time.Time
		want models.LiveStatus
	}{
		{at(9, 0), models.LiveNext},
		{at(9, 15), models.LiveOngoing},
		{at(10, 0), models.LiveOngoing},
		{at(10, 15), models.LiveOngoing},
		{at(10, 16), models.LiveEnded},
	}
	for _, tc := range cases {
		c, err := Classify(tc.now, rec)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.LiveStatus, "now=%s", tc.now.Format("15:04"))
		assert.Equal(t, models.BucketToday, c.BookingBucket)
	}
}

func TestClassify_OtherDays(t *testing.T) {
	now := at(12, 0)

	c, err := Classify(now, session("f", "2026-10-20", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, models.Classification{BookingBucket: models.BucketUpcoming, LiveStatus: models.LiveNext}, c)

	c, err = Classify(now, session("p", "2026-10-01", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, models.Classification{BookingBucket: models.BucketPast, LiveStatus: models.LiveEnded}, c)
}

func TestClassify_ZeroLengthWindow(t *testing.T) {
	rec := session("z", "2026-10-17", "10:00", "10:00")

	c, err := Classify(at(10, 0), rec)
	require.NoError(t, err)
	assert.Equal(t, models.LiveOngoing, c.LiveStatus)

	c, err = Classify(at(10, 1), rec)
	require.NoError(t, err)
	assert.Equal(t, models.LiveEnded, c.LiveStatus)
}

func TestClassify_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2026, 10, 17, 1, 0, 0, 0, loc) // still 16 Oct in UTC

	c, err := Classify(now, session("l", "2026-10-17", "00:30", "02:00"))
	require.NoError(t, err)
	assert.Equal(t, models.BucketToday, c.BookingBucket)
	assert.Equal(t, models.LiveOngoing, c.LiveStatus)
}

func TestClassify_Malformed(t *testing.T) {
	now := at(12, 0)
	_, err := Classify(now, session("m1", "17/10/2026", "09:00", "10:00"))
	assert.Error(t, err)
	_, err = Classify(now, session("m2", "2026-10-17", "", "10:00"))
	assert.Error(t, err)
	_, err = Classify(now, session("m3", "2026-10-17", "09:00", "25:00"))
	assert.Error(t, err)
}

func TestClassify_RecomputedAsTimePasses(t *testing.T) {
	rec := session("r", "2026-10-17", "11:00", "11:30")
	var seen []models.LiveStatus
	for _, now := range []time.Time{at(10, 59), at(11, 10), at(11, 31)} {
		c, err := Classify(now, rec)
		require.NoError(t, err)
		seen = append(seen, c.LiveStatus)
	}
	assert.Equal(t, []models.LiveStatus{models.LiveNext, models.LiveOngoing, models.LiveEnded}, seen)
}

func TestGroupByBucket(t *testing.T) {
	now := at(12, 0)
	records := []models.SessionRecord{
		session("a", "2026-10-17", "13:00", "14:00"),
		session("b", "2026-10-16", "13:00", "14:00"),
		session("c", "2026-10-19", "13:00", "14:00"),
		session("d", "bogus", "13:00", "14:00"),
		session("e", "2026-10-17", "08:00", "09:00"),
	}

	board := GroupByBucket(now, records)
	assert.Equal(t, now.Format(time.RFC3339), board.EvaluatedAt)

	require.Len(t, board.Today, 2)
	assert.Equal(t, "a", board.Today[0].ID)
	assert.Equal(t, models.LiveNext, board.Today[0].LiveStatus)
	assert.Equal(t, "e", board.Today[1].ID)
	assert.Equal(t, models.LiveEnded, board.Today[1].LiveStatus)

	require.Len(t, board.Upcoming, 1)
	assert.Equal(t, "c", board.Upcoming[0].ID)
	require.Len(t, board.Past, 1)
	assert.Equal(t, "b", board.Past[0].ID)
	require.Len(t, board.Invalid, 1)
	assert.Equal(t, "d", board.Invalid[0].ID)
}

func TestSessionStart(t *testing.T) {
	start, err := SessionStart(session("x", "2026-10-17", "09:30:15", "10:00"), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC), start)
}
