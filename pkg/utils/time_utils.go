package utils

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// India Standard Time (+05:30)
var inLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}()

// MonthNameIN returns the English month name of t as seen in India.
func MonthNameIN(t time.Time) string {
	return t.In(inLoc).Month().String()
}

// DaysBetween returns ceil(|checkOut - checkIn|) in days for two YYYY-MM-DD dates.
func DaysBetween(checkIn, checkOut string) (int, error) {
	in, err := time.ParseInLocation(dateLayout, checkIn, inLoc)
	if err != nil {
		return 0, fmt.Errorf("check-in date: %w", err)
	}
	out, err := time.ParseInLocation(dateLayout, checkOut, inLoc)
	if err != nil {
		return 0, fmt.Errorf("check-out date: %w", err)
	}
	diff := math.Abs(out.Sub(in).Hours() / 24)
	return int(math.Ceil(diff)), nil
}
