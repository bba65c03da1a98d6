package handlers

import (
	"net/http"

	"github.com/username/tradereport/src/processors"
	"github.com/username/tradereport/src/utils"
)

// filterFromQuery builds a TransactionFilter from query parameters. An
// unparsable date bound silently disables that bound; absent parameters
// leave their predicate inactive.
func filterFromQuery(r *http.Request) processors.TransactionFilter {
	q := r.URL.Query()
	filter := processors.TransactionFilter{
		Category: q.Get("category"),
		Action:   q.Get("action"),
		Currency: q.Get("currency"),
		Symbol:   q.Get("symbol"),
	}
	if from, ok := utils.ParseDate(q.Get("from")); ok {
		filter.From = from
		filter.HasFrom = true
	}
	if to, ok := utils.ParseDate(q.Get("to")); ok {
		filter.To = to
		filter.HasTo = true
	}
	return filter
}
