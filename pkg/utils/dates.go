package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}

// WeekBounds returns the Monday and Sunday of the week containing t
func WeekBounds(t time.Time) (monday, sunday time.Time) {
	day := BeginningOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	monday = day.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}
