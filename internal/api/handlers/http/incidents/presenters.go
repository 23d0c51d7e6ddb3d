package incidents

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/pagination"
)

const dateOnly = "2006-01-02"

// parseSearch reads the search criteria from the query string. Paging values
// are clamped rather than rejected; a malformed date is a field error.
func parseSearch(q url.Values) (domain.SearchIncidentsRequest, map[string][]string) {
	errs := map[string][]string{}

	from, err := parseTime(q.Get("from"))
	if err != nil {
		errs["from"] = append(errs["from"], "from must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	to, err := parseTime(q.Get("to"))
	if err != nil {
		errs["to"] = append(errs["to"], "to must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}

	page := pagination.Request{
		Page:     parseInt(q.Get("page"), pagination.DefaultPage),
		PageSize: parseInt(q.Get("page_size"), pagination.DefaultPageSize),
	}.Normalize()

	return domain.SearchIncidentsRequest{
		Department: q.Get("department"),
		City:       q.Get("city"),
		From:       from,
		To:         to,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, errs
}

// parseTime accepts RFC 3339 or a bare date, which is read as UTC midnight.
// An empty value means no bound.
func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
