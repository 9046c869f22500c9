package search

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/period"
)

type Result struct {
	EntryID    int
	LineNumber int
	Title      string
	Timestamp  time.Time
	Period     period.Period
	Snippet    string
	Rank       float64
}

type Options struct {
	Query string
	Since time.Time // zero = no filter; matches entries whose period ends after Since
	Until time.Time // zero = no filter; matches entries whose period starts before Until
	Limit int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match, or case folding moved byte offsets: return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search finds diary entries matching opts.Query, best match first. CJK
// queries fall back to substring matching since unicode61 does not segment
// Han text.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

func filters(opts Options, conditions []string, args []any) ([]string, []any) {
	if !opts.Since.IsZero() {
		conditions = append(conditions, "e.period_end > ?")
		args = append(args, opts.Since.Unix())
	}
	if !opts.Until.IsZero() {
		conditions = append(conditions, "e.period_start < ?")
		args = append(args, opts.Until.Unix())
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions, args := filters(opts,
		[]string{"entries_fts MATCH ?"},
		[]any{ftsQuery(opts.Query)},
	)
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			e.entry_id,
			e.line_number,
			e.title,
			e.ts,
			e.period_start,
			e.period_end,
			snippet(entries_fts, -1, '>>>','<<<', '...', 16) as snip,
			bm25(entries_fts, 2.0, 1.0) as rank
		FROM entries_fts
		JOIN entries e ON entries_fts.rowid = e.entry_id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// ftsQuery quotes each word so punctuation in diary text (dates, hyphens)
// is not read as FTS5 syntax.
func ftsQuery(q string) string {
	words := strings.Fields(q)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	like := "%" + opts.Query + "%"
	conditions, args := filters(opts,
		[]string{"(e.body LIKE ? OR e.title LIKE ?)"},
		[]any{like, like},
	)
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			e.entry_id,
			e.line_number,
			e.title,
			e.ts,
			e.period_start,
			e.period_end,
			e.body
		FROM entries e
		WHERE %s
		ORDER BY e.period_start
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var ts, start, end int64
		var body string
		if err := rows.Scan(&r.EntryID, &r.LineNumber, &r.Title, &ts, &start, &end, &body); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(ts, 0)
		r.Period = period.New(time.Unix(start, 0), time.Unix(end, 0))
		r.Snippet = makeSnippet(body, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var ts, start, end int64
		if err := rows.Scan(&r.EntryID, &r.LineNumber, &r.Title, &ts, &start, &end, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(ts, 0)
		r.Period = period.New(time.Unix(start, 0), time.Unix(end, 0))
		results = append(results, r)
	}
	return results, rows.Err()
}
