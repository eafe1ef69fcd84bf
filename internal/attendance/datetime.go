package attendance

import (
	"time"

	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
)

const monthLayout = "2006-01"

// normalizeDate strictly validates user-supplied calendar text, so
// 2024-02-30 is rejected rather than silently rolled over.
func normalizeDate(s string) (string, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", apperror.InvalidField("date")
	}
	return d.Format(dateLayout), nil
}

// normalizeTime accepts HH:MM or HH:MM:SS and always returns HH:MM:SS.
func normalizeTime(s string) (string, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format(timeLayout), nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", apperror.InvalidField("time")
	}
	return t.Format(timeLayout), nil
}

func normalizeMonth(s string) (string, error) {
	m, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", apperror.InvalidField("year_month")
	}
	return m.Format(monthLayout), nil
}

func parseClock(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// computeOutDate applies the overnight rule: the close lands on the next
// calendar day only when out_time is strictly earlier than in_time as a
// time-of-day comparison. A shift longer than 24 hours, or one closed at
// the exact opening second, is not detected as overnight.
func computeOutDate(workDate, inTime, outTime string) string {
	in, inOK := parseClock(inTime)
	out, outOK := parseClock(outTime)
	if inOK && outOK && out.Before(in) {
		if d, err := time.Parse(dateLayout, workDate); err == nil {
			return d.AddDate(0, 0, 1).Format(dateLayout)
		}
	}
	return workDate
}
