package utils

import "time"

// All branches operate in Pakistan; date filters ("today", "week", "month")
// are evaluated against local Karachi days, not UTC.
const restaurantTimezone = "Asia/Karachi"

func RestaurantLocation() *time.Location {
	loc, err := time.LoadLocation(restaurantTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StartOfDay returns local midnight for the given instant.
func StartOfDay(t time.Time) time.Time {
	local := t.In(RestaurantLocation())
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, local.Location())
}

// DateFilterRange maps a named filter to a [from, to) window. customDate
// only applies to the "custom" filter and is an ISO date. ok is false when
// the filter does not constrain the range.
func DateFilterRange(filter, customDate string, now time.Time) (from, to time.Time, ok bool) {
	today := StartOfDay(now)
	switch filter {
	case "today":
		return today, today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), today, true
	case "week":
		return today.AddDate(0, 0, -7), today.AddDate(0, 0, 1), true
	case "month":
		return today.AddDate(0, -1, 0), today.AddDate(0, 0, 1), true
	case "custom":
		day, err := time.ParseInLocation("2006-01-02", customDate, RestaurantLocation())
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		return day, day.AddDate(0, 0, 1), true
	default:
		return time.Time{}, time.Time{}, false
	}
}
