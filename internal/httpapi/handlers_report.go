package httpapi

import (
	"net/http"
	"time"

	"github.com/mlenz/tapspace/internal/domain/attendance"
)

type reportResponse struct {
	Totals map[attendance.TaskCategory]int64 `json:"totals_seconds"`
}

func toSeconds(totals map[attendance.TaskCategory]time.Duration) map[attendance.TaskCategory]int64 {
	out := make(map[attendance.TaskCategory]int64, len(totals))
	for category, d := range totals {
		out[category] = int64(d.Seconds())
	}
	return out
}

func (a *API) handleDayReport(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	totals, err := a.reports.DurationsForDay(r.Context(), ident.Username, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Totals: toSeconds(totals)})
}

func (a *API) handleTotalReport(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	totals, err := a.reports.TotalDurations(r.Context(), ident.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Totals: toSeconds(totals)})
}

func (a *API) handleDaysWithRecords(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	month, err := time.ParseInLocation("2006-01", r.URL.Query().Get("month"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	days, err := a.reports.DaysWithRecords(r.Context(), ident.Username, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format("2006-01-02"))
	}
	writeJSON(w, http.StatusOK, map[string][]string{"days": out})
}
