package service

import (
	"fmt"
	"time"

	"pos-system/internal/domain"
	"pos-system/internal/microservices/inventory/domain/dao"
)

// PeriodWindow returns the calendar period containing now, in loc. Weeks
// start on Monday.
func PeriodWindow(period string, now time.Time, loc *time.Location) (dao.Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch period {
	case domain.PeriodDay, "":
		return dao.Window{From: day, To: day.AddDate(0, 0, 1)}, nil
	case domain.PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7
		from := day.AddDate(0, 0, -offset)
		return dao.Window{From: from, To: from.AddDate(0, 0, 7)}, nil
	case domain.PeriodMonth:
		from := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return dao.Window{From: from, To: from.AddDate(0, 1, 0)}, nil
	case domain.PeriodYear:
		from := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return dao.Window{From: from, To: from.AddDate(1, 0, 0)}, nil
	}
	return dao.Window{}, fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, period)
}
