package services

import (
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// clampPagination normalizes page to >= 1 and limit into [1, maxPageSize].
func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// beforeToday reports whether t falls on a calendar day before today in
// local time. Dates are compared at day granularity, so "today" is never in
// the past.
func beforeToday(t time.Time) bool {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.Before(startOfToday)
}
