package dateparse

import "time"

// token is one component kind of a date expression.
type token int

const (
	tokDay token = iota
	tokMonth
	tokYear
	tokTime
	tokWeekday
	tokRelativeYear
	tokCentury
	tokRelativeCentury
)

var tokenNames = map[token]string{
	tokDay:             "day",
	tokMonth:           "month",
	tokYear:            "year",
	tokTime:            "time",
	tokWeekday:         "weekday",
	tokRelativeYear:    "relativeYear",
	tokCentury:         "century",
	tokRelativeCentury: "relativeCentury",
}

func (t token) String() string { return tokenNames[t] }

// combinations are tried in order. Longer and more specific combinations
// come first so that a bare year never swallows a complete date.
var combinations = [][]token{
	{tokDay, tokMonth, tokYear, tokTime},
	{tokYear, tokMonth, tokDay, tokTime},
	{tokTime, tokDay, tokMonth, tokYear},
	{tokTime, tokYear, tokMonth, tokDay},
	{tokDay, tokMonth, tokYear},
	{tokYear, tokMonth, tokDay},
	{tokDay, tokMonth},
	{tokMonth, tokDay},
	{tokWeekday, tokTime},
	{tokTime, tokWeekday},
	{tokWeekday},
	{tokMonth, tokYear},
	{tokYear, tokMonth},
	{tokRelativeCentury, tokCentury},
	{tokCentury, tokRelativeCentury},
	{tokRelativeYear, tokYear},
	{tokYear, tokRelativeYear},
	{tokCentury},
	{tokYear},
}

// phrase is one row of a lookup table: a regular expression fragment and
// the integer it stands for.
type phrase struct {
	pattern string
	value   int
}

// Norwegian first, English second; full names before abbreviations so the
// longest spelling is tried first.
var weekdays = []phrase{
	{"mandag", int(time.Monday)},
	{"tirsdag", int(time.Tuesday)},
	{"onsdag", int(time.Wednesday)},
	{"torsdag", int(time.Thursday)},
	{"fredag", int(time.Friday)},
	{"lørdag", int(time.Saturday)},
	{"søndag", int(time.Sunday)},
	{"man", int(time.Monday)},
	{"tir", int(time.Tuesday)},
	{"ons", int(time.Wednesday)},
	{"tor", int(time.Thursday)},
	{"fre", int(time.Friday)},
	{"lør", int(time.Saturday)},
	{"søn", int(time.Sunday)},
	{"monday", int(time.Monday)},
	{"tuesday", int(time.Tuesday)},
	{"wednesday", int(time.Wednesday)},
	{"thursday", int(time.Thursday)},
	{"friday", int(time.Friday)},
	{"saturday", int(time.Saturday)},
	{"sunday", int(time.Sunday)},
	{"mon", int(time.Monday)},
	{"tue", int(time.Tuesday)},
	{"wed", int(time.Wednesday)},
	{"thu", int(time.Thursday)},
	{"fri", int(time.Friday)},
	{"sat", int(time.Saturday)},
	{"sun", int(time.Sunday)},
}

var months = []phrase{
	{"januar", 1},
	{"februar", 2},
	{"mars", 3},
	{"april", 4},
	{"mai", 5},
	{"juni", 6},
	{"juli", 7},
	{"august", 8},
	{"september", 9},
	{"oktober", 10},
	{"november", 11},
	{"desember", 12},
	{"january", 1},
	{"february", 2},
	{"march", 3},
	{"may", 5},
	{"june", 6},
	{"july", 7},
	{"october", 10},
	{"december", 12},
	{"jan", 1},
	{"feb", 2},
	{"mar", 3},
	{"apr", 4},
	{"jun", 6},
	{"jul", 7},
	{"aug", 8},
	{"sep", 9},
	{"okt", 10},
	{"nov", 11},
	{"des", 12},
	{"oct", 10},
	{"dec", 12},
}

// monthDays is the number of valid days per month. February allows 29.
var monthDays = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// relativeYears maps a position within a year to the month it starts in.
var relativeYears = []phrase{
	{`sommer(?:en)?`, 6},
	{`høst(?:en)?`, 9},
	{`vinter(?:en)?`, 12},
	{`vår(?:en)?`, 3},
	{`første kvartal`, 1},
	{`1\. kvartal`, 1},
	{`Q1`, 1},
	{`andre kvartal`, 4},
	{`2\. kvartal`, 4},
	{`Q2`, 4},
	{`tredje kvartal`, 7},
	{`3\. kvartal`, 7},
	{`Q3`, 7},
	{`fjerde kvartal`, 10},
	{`4\. kvartal`, 10},
	{`Q4`, 10},
	{`første halvdel`, 1},
	{`tidlig`, 1},
	{`starten av`, 1},
	{`andre halvdel`, 6},
	{`midten av`, 6},
	{`sent`, 10},
	{`summer`, 6},
	{`autumn|fall`, 9},
	{`winter`, 12},
	{`spring`, 3},
	{`first quarter(?: of)?`, 1},
	{`second quarter(?: of)?`, 4},
	{`third quarter(?: of)?`, 7},
	{`fourth quarter(?: of)?`, 10},
	{`first half(?: of)?`, 1},
	{`second half(?: of)?`, 6},
	{`early`, 1},
	{`mid(?:dle of)?`, 6},
	{`late`, 10},
}

// centuries recognise a century phrase. Ordinal forms ("14. århundre",
// "14th century") name the century that starts one hundred years earlier.
var centuries = []string{
	`\d{2}00[-\s]tallet`,
	`\d{2}\.?\s*århundre`,
	`\d{2}00-?s`,
	`\d{1,2}(?:st|nd|rd|th)\s+century`,
}

// relativeCenturies map a position within a century to a year offset.
var relativeCenturies = []phrase{
	{`første halvdel av(?: det)?`, 0},
	{`første kvartal`, 0},
	{`andre kvartal`, 25},
	{`tredje kvartal`, 50},
	{`fjerde kvartal`, 75},
	{`tidlig (?:i|på)(?: det)?`, 0},
	{`starten av(?: det)?`, 0},
	{`andre halvdel av(?: det)?`, 50},
	{`midten av(?: det)?`, 50},
	{`sent på(?: det)?`, 90},
	{`slutten av(?: det)?`, 90},
	{`begynnelsen av(?: det)?`, 0},
	{`first half of(?: the)?`, 0},
	{`second half of(?: the)?`, 50},
	{`early(?: in)?(?: the)?`, 0},
	{`beginning of(?: the)?`, 0},
	{`mid(?:dle of)?(?: the)?`, 50},
	{`late(?: in)?(?: the)?`, 90},
	{`end of(?: the)?`, 90},
}
