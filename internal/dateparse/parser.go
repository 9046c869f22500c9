// Package dateparse extracts a concrete date and time from free text such as
// "14.05.2012 kl 1306", "den 14. mai 1927", "fjerde kvartal 2002",
// "midten av det 14. århundre" or "late 1900s".
//
// Two-digit years at or below the current two-digit year belong to the
// current century, higher values to the previous one. A bare weekday
// resolves to the first matching day on or after the reference date.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	leadIn  = `(?:^|(?<=\D))`
	joiner  = `(?=[^:\d])[^:\d]{1,4}?(?<=[^:\d])`
	leadOut = `(?:(?=\D)|$)`
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	ordinalRe = regexp.MustCompile(`(?i)århundre|century`)
)

// Options control a single Parse call.
type Options struct {
	// Reference anchors relative expressions (weekdays, day+month without
	// year). Zero means today.
	Reference time.Time
	// FullText requires the whole input to be one date expression.
	FullText bool
}

// Match describes a successful parse.
type Match struct {
	Time        time.Time
	Combination string // token kinds that matched, e.g. "day month year time"
	Text        string // the matched part of the input
}

// Parser holds compiled patterns. The zero value is ready to use; Now and
// Location default to time.Now and time.Local.
type Parser struct {
	Now      func() time.Time
	Location *time.Location

	mu       sync.Mutex
	compiled map[string]*regexp2.Regexp
}

func New() *Parser {
	return &Parser{Now: time.Now, Location: time.Local}
}

// Parse returns the first date found in text. ok is false when text holds
// no recognisable date; that is an ordinary outcome, not an error.
func (p *Parser) Parse(text string, opts Options) (t time.Time, ok bool) {
	m, ok := p.Find(text, opts)
	return m.Time, ok
}

// Find is Parse with details about which combination matched.
func (p *Parser) Find(text string, opts Options) (Match, bool) {
	if strings.TrimSpace(text) == "" {
		return Match{}, false
	}
	ref := opts.Reference
	if ref.IsZero() {
		ref = p.now()
	}

	for _, combo := range combinations {
		for _, entry := range tableFor(combo) {
			re, err := p.compile(buildPattern(combo, entry, opts.FullText))
			if err != nil {
				continue
			}
			m, err := re.FindStringMatch(text)
			if err != nil || m == nil {
				continue
			}
			fields, ok := captures(combo, m)
			if !ok {
				continue
			}
			t, ok := p.resolve(combo, entry, fields, ref)
			if !ok {
				continue
			}
			return Match{Time: t, Combination: comboName(combo), Text: m.String()}, true
		}
	}
	return Match{}, false
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Parser) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

func (p *Parser) compile(pattern string) (*regexp2.Regexp, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.compiled == nil {
		p.compiled = make(map[string]*regexp2.Regexp)
	}
	if re, ok := p.compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	p.compiled[pattern] = re
	return re, nil
}

// tableFor picks the lookup table a combination iterates over. Combinations
// without a table-driven token get a single attempt.
func tableFor(combo []token) []phrase {
	for _, t := range combo {
		switch t {
		case tokRelativeYear:
			return relativeYears
		case tokRelativeCentury:
			return relativeCenturies
		case tokWeekday:
			return weekdays
		case tokMonth:
			return months
		}
	}
	return []phrase{{}}
}

func buildPattern(combo []token, entry phrase, fullText bool) string {
	parts := make([]string, len(combo))
	for i, t := range combo {
		parts[i] = subpattern(t, entry)
	}
	pattern := leadIn + strings.Join(parts, joiner) + leadOut
	if fullText {
		pattern = `^\s*` + pattern + `\s*$`
	}
	return pattern
}

func subpattern(t token, entry phrase) string {
	switch t {
	case tokDay:
		return `(?<day>\d{1,2})`
	case tokMonth:
		// Named month, or its number standing alone between separators.
		return `(?<month>\b(?:` + entry.pattern + `)\b|(?:^|(?<=[^:\w]))0?` +
			strconv.Itoa(entry.value) + `(?=[^:\w]|$))`
	case tokYear:
		return `(?<year>\d{4}|\d{2})`
	case tokTime:
		return `(?:(?:klokken|klokka|kl)\D{1,2})?(?<hour>\d{1,4})(?:\D(?<minute>\d{2}))?(?:\D(?<second>\d{2}))?`
	case tokWeekday:
		return `(?<weekday>\b(?:` + entry.pattern + `)\b)`
	case tokRelativeYear:
		return `(?<month>\b(?:` + entry.pattern + `)\b)`
	case tokCentury:
		return `(?<century>` + strings.Join(centuries, "|") + `)`
	case tokRelativeCentury:
		return `(?<relativeCentury>\b(?:` + entry.pattern + `)\b)`
	}
	return ""
}

// requiredGroup is the capture group that must be non-empty for a token.
var requiredGroup = map[token]string{
	tokDay:             "day",
	tokMonth:           "month",
	tokYear:            "year",
	tokTime:            "hour",
	tokWeekday:         "weekday",
	tokRelativeYear:    "month",
	tokCentury:         "century",
	tokRelativeCentury: "relativeCentury",
}

var optionalGroups = []string{"minute", "second"}

// captures collects the named groups of a match. A token whose group did not
// capture anything invalidates the whole attempt.
func captures(combo []token, m *regexp2.Match) (map[string]string, bool) {
	fields := make(map[string]string, len(combo)+len(optionalGroups))
	for _, t := range combo {
		name := requiredGroup[t]
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 || g.String() == "" {
			return nil, false
		}
		fields[name] = g.String()
	}
	for _, name := range optionalGroups {
		if g := m.GroupByName(name); g != nil && len(g.Captures) > 0 {
			fields[name] = g.String()
		}
	}
	return fields, true
}

func has(combo []token, want token) bool {
	for _, t := range combo {
		if t == want {
			return true
		}
	}
	return false
}

func (p *Parser) resolve(combo []token, entry phrase, f map[string]string, ref time.Time) (time.Time, bool) {
	var year, month, day int
	var yearText string

	if has(combo, tokWeekday) {
		candidate := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, p.loc())
		for candidate.Weekday() != time.Weekday(entry.value) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		year, month, day = candidate.Year(), int(candidate.Month()), candidate.Day()
		yearText = strconv.Itoa(year)
	}

	if s, ok := f["day"]; ok {
		day, _ = strconv.Atoi(s)
	} else if day == 0 {
		day = 1
	}

	if s, ok := f["month"]; ok {
		if isDigits(s) {
			month, _ = strconv.Atoi(s)
		} else {
			month = entry.value
		}
	} else if month == 0 {
		month = 1
	}

	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > monthDays[month] {
		return time.Time{}, false
	}

	relCentury := 0
	if has(combo, tokRelativeCentury) {
		relCentury = entry.value
	}
	centuryCheck := has(combo, tokCentury) || has(combo, tokRelativeCentury)
	ordinal := false

	if s, ok := f["year"]; ok {
		yearText = s
	}
	if s, ok := f["century"]; ok {
		yearText = digitsRe.FindString(s)
		ordinal = ordinalRe.MatchString(s)
	}

	n, _ := strconv.Atoi(yearText)
	switch {
	case yearText == "":
		year = ref.Year()
		if int(ref.Month()) > month || (int(ref.Month()) == month && ref.Day() > day) {
			year++
		}
	case centuryCheck && ordinal:
		year = n*100 + relCentury - 100
	case centuryCheck && len(yearText) <= 2:
		year = n*100 + relCentury
	case centuryCheck:
		year = n + relCentury
	case len(yearText) == 4:
		year = n
	case len(yearText) == 2:
		year = p.expandTwoDigitYear(n)
	default:
		return time.Time{}, false
	}

	hour, minute, second := 0, 0, 0
	if h, ok := f["hour"]; ok {
		mText, sText := f["minute"], f["second"]
		if len(h) > 2 {
			if mText != "" && sText != "" {
				return time.Time{}, false
			}
			// Compact HHMM; an explicit trailing group is then seconds.
			sText = mText
			mText = h[len(h)-2:]
			h = h[:len(h)-2]
		}
		hour, _ = strconv.Atoi(h)
		if mText != "" {
			minute, _ = strconv.Atoi(mText)
		}
		if sText != "" {
			second, _ = strconv.Atoi(sText)
		}
		if hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, false
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, p.loc())
	if t.Day() != day {
		// 29 February outside a leap year.
		return time.Time{}, false
	}
	return t, true
}

// expandTwoDigitYear places yy in the current century unless that would
// put it in the future, in which case the previous century is used.
func (p *Parser) expandTwoDigitYear(yy int) int {
	now := p.now().Year()
	base := now - now%100
	if yy > now%100 {
		return base - 100 + yy
	}
	return base + yy
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func comboName(combo []token) string {
	names := make([]string, len(combo))
	for i, t := range combo {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}
