package evidence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendNewestFirst(t *testing.T) {
	l := NewLog()
	now := time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC)

	first := l.Append(now, "first")
	second := l.Append(now.Add(time.Second), "second")

	events := l.Events()
	require.Len(t, events, 2)
	assert.Equal(t, second, events[0])
	assert.Equal(t, first, events[1])
	assert.Equal(t, "14:03:09", first.Time)
	assert.Equal(t, "14:03:10", second.Time)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLogCappedAtSix(t *testing.T) {
	l := NewLog()
	now := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		l.Append(now.Add(time.Duration(i)*time.Second), fmt.Sprintf("event %d", i))
		assert.LessOrEqual(t, l.Len(), MaxEvents)
		assert.Equal(t, fmt.Sprintf("event %d", i), l.Events()[0].Message)
	}

	events := l.Events()
	require.Len(t, events, MaxEvents)
	assert.Equal(t, "event 14", events[MaxEvents-1].Message)
}

func TestNewLogSeed(t *testing.T) {
	l := NewLog(Event{ID: "b", Message: "newer"}, Event{ID: "a", Message: "older"})
	events := l.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "a", events[1].ID)
}

func TestTwentyFourHourFormat(t *testing.T) {
	l := NewLog()
	e := l.Append(time.Date(2024, 5, 1, 21, 5, 7, 0, time.UTC), "late")
	assert.Equal(t, "21:05:07", e.Time)
}

func TestPackString(t *testing.T) {
	p := Pack{
		CaseID:    "DG-ABC-123",
		RiskLabel: "แดง",
		Status:    "กำลังประเมิน",
		Events: []Event{
			{Time: "10:00:02", Message: "วางสาย"},
			{Time: "10:00:01", Message: "เริ่มสายคอล"},
		},
	}

	want := "Evidence Pack\n" +
		"Case: DG-ABC-123\n" +
		"Risk: แดง\n" +
		"Status: กำลังประเมิน\n" +
		"---\n" +
		"10:00:02 • วางสาย\n" +
		"10:00:01 • เริ่มสายคอล"
	assert.Equal(t, want, p.String())
}
