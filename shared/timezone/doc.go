// Package timezone pins every wall-clock computation to the zone in APP_TIMEZONE.
//
// Calendar days matter to the booking rules: a slot grid for "2024-06-01" spans
// 08:00 to 22:00 in the app zone, not in UTC. Use ParseDate for the date query
// parameter and StartOfDay to find the day a booking starts on:
//
//	day, err := timezone.ParseDate("2024-06-01")
//	from := timezone.StartOfDay(timezone.ToAppTime(booking.StartTime))
//
// The location is loaded once at package init. Unknown names fall back to UTC.
package timezone
