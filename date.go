package fat12

import (
	"time"
)

// ParseDate decodes a directory entry date stamp:
//
//	bits 0-4   day of month, 1-31
//	bits 5-8   month, 1-12
//	bits 9-15  years since 1980
//
// The result is midnight UTC of that day. A day or month of 0 is invalid and yields the zero
// time.Time, so IsZero can be used to detect it.
func ParseDate(input uint16) time.Time {
	day := int(input & 0x1F)
	month := int(input >> 5 & 0x0F)
	year := 1980 + int(input>>9)

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a directory entry time stamp with two second granularity:
//
//	bits 0-4   seconds / 2, 0-29
//	bits 5-10  minutes, 0-59
//	bits 11-15 hours, 0-23
//
// The result is on January 1 of year 1 UTC, so 00:00:00 is the zero time.Time.
// Out of range values overflow into the next field but never past 23:59:59.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := int(input >> 5 & 0x3F)
	hours := int(input >> 11)

	result := time.Date(1, 1, 1, hours, minutes, seconds, 0, time.UTC)
	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}
	return result
}

// modTime combines a date and a time stamp. An invalid date gives the zero time.Time.
func modTime(date, clock uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}
	t := ParseTime(clock)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
