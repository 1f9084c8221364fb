// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sitelog/config"
	"sitelog/fraction"
	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store *storage.SQLiteStore
	cfg   config.Config
	mux   *http.ServeMux
}

type monthPageView struct {
	Title         string
	CurrentMonth  string
	PreviousMonth string
	NextMonth     string
	Summary       MonthSummary
}

type dayPageView struct {
	Title        string
	CurrentMonth string
	Day          DayView
}

type entryMutationRequest struct {
	Date     string `json:"date"`
	Employee string `json:"employee"`
	Site     string `json:"site"`
	Kst      string `json:"kst"`
	Activity string `json:"activity"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Fraction string `json:"fraction"`
	Result   string `json:"result"`
	Notes    string `json:"notes"`
}

type duplicateRequest struct {
	Date string `json:"date"`
}

type suggestionsResponse struct {
	Employees  []string `json:"employees"`
	Sites      []string `json:"sites"`
	Kst        []string `json:"kst"`
	Activities []string `json:"activities"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config) http.Handler {
	server := &Server{store: store, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /month", server.handleMonthPicker)
	mux.HandleFunc("GET /month/{month}", server.handleMonth)
	mux.HandleFunc("GET /day/{date}", server.handleDay)
	mux.HandleFunc("GET /api/day/{date}", server.handleAPIDay)
	mux.HandleFunc("GET /api/suggestions", server.handleAPISuggestions)
	mux.HandleFunc("POST /api/entry", server.handleAPIEntryCreate)
	mux.HandleFunc("PATCH /api/entry/{id}", server.handleAPIEntryPatch)
	mux.HandleFunc("DELETE /api/entry/{id}", server.handleAPIEntryDelete)
	mux.HandleFunc("POST /api/entry/{id}/duplicate", server.handleAPIEntryDuplicate)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleMonthPicker(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		http.Redirect(w, r, "/month/"+time.Now().Format("2006-01"), http.StatusFound)
		return
	}
	if _, err := parseMonth(month); err != nil {
		http.Error(w, "invalid month format (expected YYYY-MM)", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/month/"+month, http.StatusFound)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	monthRaw := strings.TrimSpace(r.PathValue("month"))
	monthStart, err := parseMonth(monthRaw)
	if err != nil {
		http.Error(w, "invalid month format (expected YYYY-MM)", http.StatusBadRequest)
		return
	}

	entries, err := s.store.EntriesInMonth(monthStart.Year(), monthStart.Month())
	if err != nil {
		http.Error(w, fmt.Sprintf("load month entries: %v", err), http.StatusInternalServerError)
		return
	}

	view := monthPageView{
		Title:         "sitelog - month " + monthRaw,
		CurrentMonth:  monthRaw,
		PreviousMonth: monthStart.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth:     monthStart.AddDate(0, 1, 0).Format("2006-01"),
		Summary:       BuildMonthView(monthStart, entries),
	}
	if err := renderTemplate(w, "month.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	dayRaw := strings.TrimSpace(r.PathValue("date"))
	day, err := timeutil.ParseDate(dayRaw)
	if err != nil {
		http.Error(w, "invalid date format (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	entries, err := s.store.ListByDate(day)
	if err != nil {
		http.Error(w, fmt.Sprintf("load day entries: %v", err), http.StatusInternalServerError)
		return
	}

	view := dayPageView{
		Title:        "sitelog - day " + dayRaw,
		CurrentMonth: day.Format("2006-01"),
		Day:          BuildDayView(day, entries),
	}
	if err := renderTemplate(w, "day.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIDay(w http.ResponseWriter, r *http.Request) {
	dayRaw := strings.TrimSpace(r.PathValue("date"))
	day, err := timeutil.ParseDate(dayRaw)
	if err != nil {
		http.Error(w, "invalid date format (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	entries, err := s.store.ListByDate(day)
	if err != nil {
		http.Error(w, fmt.Sprintf("load day entries: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildDayView(day, entries))
}

func (s *Server) handleAPISuggestions(w http.ResponseWriter, r *http.Request) {
	resp := suggestionsResponse{
		Employees:  append([]string(nil), s.cfg.Employees...),
		Activities: append([]string(nil), s.cfg.Activities...),
	}

	sites, err := s.store.DistinctValues("site_name")
	if err != nil {
		http.Error(w, fmt.Sprintf("load site suggestions: %v", err), http.StatusInternalServerError)
		return
	}
	resp.Sites = sites

	kst, err := s.store.DistinctValues("kst")
	if err != nil {
		http.Error(w, fmt.Sprintf("load kst suggestions: %v", err), http.StatusInternalServerError)
		return
	}
	resp.Kst = kst

	employees, err := s.store.DistinctValues("employee")
	if err != nil {
		http.Error(w, fmt.Sprintf("load employee suggestions: %v", err), http.StatusInternalServerError)
		return
	}
	resp.Employees = mergeSuggestions(resp.Employees, employees)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIEntryCreate(w http.ResponseWriter, r *http.Request) {
	var body entryMutationRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.buildEntryFromMutation(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.store.CreateEntry(entry)
	if err != nil {
		var validationErr *logentry.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("create entry: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleAPIEntryPatch(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	existing, found, err := s.store.GetEntry(id)
	if err != nil {
		http.Error(w, fmt.Sprintf("get entry: %v", err), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}

	var body entryMutationRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.buildEntryFromMutation(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry.ID = existing.ID

	if err := s.store.UpdateEntry(entry); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		var validationErr *logentry.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("update entry: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIEntryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteEntry(id); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("delete entry: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIEntryDuplicate(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var body duplicateRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date := time.Time{}
	if strings.TrimSpace(body.Date) != "" {
		date, err = timeutil.ParseDate(body.Date)
		if err != nil {
			http.Error(w, "invalid date format (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
	}

	newID, err := s.store.DuplicateEntry(id, date)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("duplicate entry: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": newID})
}

func (s *Server) buildEntryFromMutation(body entryMutationRequest) (logentry.Entry, error) {
	day, err := timeutil.ParseDate(body.Date)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD)")
	}

	entry := logentry.Entry{
		Date:     day,
		Employee: strings.TrimSpace(body.Employee),
		SiteName: strings.TrimSpace(body.Site),
		Kst:      strings.TrimSpace(body.Kst),
		Activity: strings.TrimSpace(body.Activity),
		Result:   strings.TrimSpace(body.Result),
		Notes:    strings.TrimSpace(body.Notes),
	}

	startRaw := strings.TrimSpace(body.Start)
	endRaw := strings.TrimSpace(body.End)
	switch {
	case startRaw != "" && endRaw != "":
		start, err := timeutil.ParseClock(startRaw)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid start time (expected HH:MM)")
		}
		end, err := timeutil.ParseClock(endRaw)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid end time (expected HH:MM)")
		}
		computed, err := fraction.Compute(start, end, s.cfg.Workday.Hours, s.cfg.Workday.RoundingStep)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.StartTime = &start
		entry.EndTime = &end
		entry.DayFraction = computed.Fraction
		entry.DurationHours = &computed.DurationHours
	case startRaw == "" && endRaw == "":
		raw, err := strconv.ParseFloat(strings.TrimSpace(body.Fraction), 64)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid day fraction %q", body.Fraction)
		}
		validated, err := fraction.ValidateDirect(raw, s.cfg.Workday.Hours)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.DayFraction = validated.Fraction
	default:
		return logentry.Entry{}, fmt.Errorf("start and end time must be given together")
	}

	return entry, nil
}

func mergeSuggestions(configured, stored []string) []string {
	seen := make(map[string]bool, len(configured)+len(stored))
	out := make([]string, 0, len(configured)+len(stored))
	for _, list := range [][]string{configured, stored} {
		for _, value := range list {
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"fmtFraction": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
		"fmtDate": func(value time.Time) string {
			return timeutil.FormatDate(value)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func parseMonth(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.StartOfDay(parsed), nil
}

func parsePositiveInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return parsed, nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
