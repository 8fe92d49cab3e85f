package game

import (
	"math"
	"strconv"
	"strings"
)

// Flights is the number of one-way flights a plane can complete on a route
// within the daily activity window. It is never less than 1.
func Flights(distance, speed, activity float64) int {
	if distance <= 0 || speed <= 0 {
		return 1
	}
	n := int(math.Floor(activity / (distance / speed)))
	return max(n, 1)
}

type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// FlightTime is the time to fly distance at speed, truncated to whole seconds.
func FlightTime(distance, speed float64) Duration {
	if speed <= 0 || distance <= 0 {
		return Duration{}
	}
	total := int(distance / speed * 3600)
	return Duration{
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// Format renders d using pattern. Runs of h, m and s are replaced by the
// hours, minutes and seconds, zero padded to the run length; a backslash
// copies the next rune literally. Everything else is copied.
//
//	d.Format("hh:mm:ss") // "07:05:09"
//	d.Format("h\\h m\\m") // "7h 5m"
func (d Duration) Format(pattern string) string {
	var sb strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		var v int
		switch r {
		case '\\':
			if i+1 < len(runes) {
				i++
				sb.WriteRune(runes[i])
			}
			continue
		case 'h':
			v = d.Hours
		case 'm':
			v = d.Minutes
		case 's':
			v = d.Seconds
		default:
			sb.WriteRune(r)
			continue
		}
		width := 1
		for i+1 < len(runes) && runes[i+1] == r {
			width++
			i++
		}
		s := strconv.Itoa(v)
		if pad := width - len(s); pad > 0 {
			sb.WriteString(strings.Repeat("0", pad))
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (d Duration) String() string {
	return d.Format("hh:mm:ss")
}
