package availability

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dtorcivia/slotwatch/internal/util"
)

// startDateLayout accepts zero-padded and unpadded month and day.
const startDateLayout = "2006-1-2"

// Query parameters rewritten by NormalizeURL.
const (
	ParamStartDate = "start_date"
	ParamLimit     = "limit"
)

// ParamChange records one query parameter rewritten by NormalizeURL.
type ParamChange struct {
	Key  string
	From string // empty when the parameter was absent
	To   string
}

// Normalized is the outcome of NormalizeURL.
type Normalized struct {
	URL      string
	Original map[string]string
	Params   map[string]string
	Changes  []ParamChange

	// StartDateErr is set when start_date was present but not a YYYY-MM-DD date.
	StartDateErr error
}

// NormalizeURL rewrites start_date so the window never starts before today and
// fills in limit when the caller did not set one. Other parameters pass
// through; duplicated keys keep their last value and blank values count as absent.
func NormalizeURL(rawURL string, today time.Time, limit int) (*Normalized, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse availability URL: %w", err)
	}

	original := lastValues(u.RawQuery)
	params := make(map[string]string, len(original)+2)
	for k, v := range original {
		params[k] = v
	}

	out := &Normalized{Original: original, Params: params}

	todayStr := util.Today(today)
	if start, ok := params[ParamStartDate]; ok {
		parsed, perr := time.Parse(startDateLayout, start)
		switch {
		case perr != nil:
			out.StartDateErr = perr
			params[ParamStartDate] = todayStr
		case parsed.Format(time.DateOnly) < todayStr:
			params[ParamStartDate] = todayStr
		}
	} else {
		params[ParamStartDate] = todayStr
	}

	if _, ok := params[ParamLimit]; !ok {
		params[ParamLimit] = strconv.Itoa(limit)
	}

	for _, key := range []string{ParamStartDate, ParamLimit} {
		if original[key] != params[key] {
			out.Changes = append(out.Changes, ParamChange{Key: key, From: original[key], To: params[key]})
		}
	}

	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	u.RawQuery = values.Encode()
	out.URL = u.String()

	return out, nil
}

// lastValues parses a query string keeping the last non-blank value per key.
// Pairs are split on '&' only, and a key or value with an invalid escape is
// kept as written, so no parameter is dropped.
func lastValues(rawQuery string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		key = unescapeQuery(key)
		if value = unescapeQuery(value); value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func unescapeQuery(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}
	return strings.ReplaceAll(s, "+", " ")
}
