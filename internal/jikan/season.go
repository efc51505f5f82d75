package jikan

import (
	"fmt"
	"strings"
	"time"
)

// Season is an anime broadcast season as used in Jikan URLs.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// SeasonOf returns the broadcast year and season containing t.
func SeasonOf(t time.Time) (int, Season) {
	switch t.Month() {
	case time.April, time.May, time.June:
		return t.Year(), Spring
	case time.July, time.August, time.September:
		return t.Year(), Summer
	case time.October, time.November, time.December:
		return t.Year(), Fall
	default:
		return t.Year(), Winter
	}
}

// SeasonLabel formats a heading such as "Fall 2026 Anime".
func SeasonLabel(year int, season Season) string {
	name := string(season)
	if name == "" {
		return "Seasonal Anime"
	}
	return fmt.Sprintf("%s%s %d Anime", strings.ToUpper(name[:1]), name[1:], year)
}
