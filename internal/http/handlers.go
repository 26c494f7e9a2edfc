package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"smartspend/internal/core"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
)

type (
	expenseRow struct {
		Date     string
		Desc     string
		Amount   string
		Category string
		Color    string
	}

	categoryRow struct {
		Name   string
		Amount string
		Color  string
		Width  int
	}

	alertRow struct {
		Category string
		Spent    string
		Limit    string
		OverBy   string
		Over     bool
	}

	monthView struct {
		Year     int
		Month    int
		Title    string
		Total    string
		Gradient template.CSS
		Rows     []categoryRow
		Items    []expenseRow
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	d, err := s.svc.BuildDashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard build error", applog.FieldError, err)
		http.Error(w, "could not load stored data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Date       string
		Categories []string

		TotalSpent    string
		MonthSpent    string
		ActiveBudgets string
		Remaining     string

		Month  monthView
		Recent []expenseRow
		Alerts []alertRow
	}{
		Date:          d.Now.Format("2006-01-02"),
		Categories:    s.svc.Categories(),
		TotalSpent:    d.TotalSpent.String(),
		MonthSpent:    d.MonthSpent.String(),
		ActiveBudgets: d.ActiveBudgets.String(),
		Remaining:     d.Remaining.String(),
		Month:         buildMonthView(d.Overview, nil),
		Alerts:        buildAlertRows(d.Statuses),
	}
	for _, e := range d.Recent {
		data.Recent = append(data.Recent, toExpenseRow(e))
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	desc := sanitizeInput(r.Form.Get("description"))
	amountStr := sanitizeInput(r.Form.Get("amount"))
	cat := sanitizeInput(r.Form.Get("category"))
	if cat == "auto" {
		cat = ""
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	in := services.ExpenseInput{
		Amount:      core.Money{Cents: cents},
		Description: desc,
		Category:    cat,
	}
	if v := sanitizeInput(r.Form.Get("date")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid date (use YYYY-MM-DD)</div>`))
			return
		}
		in.Date = d
	}

	e, ref, err := s.svc.RecordExpense(r.Context(), in)
	if err != nil {
		status, msg := writeProblem(err)
		slog.ErrorContext(r.Context(), "Expense record error",
			applog.FieldError, err,
			applog.FieldExpenseDesc, desc,
			applog.FieldAmountCents, cents)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	s.triggerRefresh(w, e.Date.Year(), int(e.Date.Month()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Saved ` + template.HTMLEscapeString(e.Amount.String()) +
		` as ` + template.HTMLEscapeString(e.Category) +
		` (#` + template.HTMLEscapeString(ref) + `)</div>`))
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	amountStr := sanitizeInput(r.Form.Get("amount"))
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	p := core.Payment{
		Recipient: sanitizeInput(r.Form.Get("recipient")),
		Amount:    core.Money{Cents: cents},
		Note:      sanitizeInput(r.Form.Get("note")),
	}

	e, _, err := s.svc.RecordPayment(r.Context(), p)
	if err != nil {
		status, msg := writeProblem(err)
		slog.WarnContext(r.Context(), "Payment rejected",
			applog.FieldError, err,
			applog.FieldRecipient, p.Recipient)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	s.triggerRefresh(w, e.Date.Year(), int(e.Date.Month()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Sent ` + template.HTMLEscapeString(e.Amount.String()) +
		` to ` + template.HTMLEscapeString(p.Recipient) +
		` (simulated). Recorded as ` + template.HTMLEscapeString(e.Category) + `.</div>`))
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	cat := sanitizeInput(r.Form.Get("category"))
	limitStr := sanitizeInput(r.Form.Get("limit"))
	cents, err := core.ParseDecimalToCents(limitStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid limit</div>`))
		return
	}

	if err := s.svc.SetBudget(r.Context(), cat, core.Money{Cents: cents}); err != nil {
		status, msg := writeProblem(err)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	now := time.Now()
	s.triggerRefresh(w, now.Year(), int(now.Month()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Budget for ` + template.HTMLEscapeString(cat) +
		` set to ` + core.FormatRupees(cents) + `</div>`))
}

// handleMonthOverview renders the monthly overview partial.
func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		now := time.Now()
		slog.WarnContext(r.Context(), "Invalid month parameter",
			applog.FieldYear, year, applog.FieldMonth, month)
		month = int(now.Month())
	}

	ov, items, err := s.svc.MonthOverview(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Month overview error",
			applog.FieldError, err, applog.FieldYear, year, applog.FieldMonth, month)
		_, _ = w.Write([]byte(`<section id="month-overview" class="month-overview"><div class="placeholder">Could not load the month overview</div></section>`))
		return
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="month-overview" class="month-overview"><div class="placeholder">Total: ` + ov.Total.String() + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "month_overview.html", buildMonthView(ov, items)); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error",
			applog.FieldError, err, applog.FieldYear, year, applog.FieldMonth, month)
		_, _ = w.Write([]byte(`<section id="month-overview" class="month-overview"><div class="placeholder">Could not render the month overview</div></section>`))
	}
}

// triggerRefresh asks the page to re-fetch the month overview partial.
func (s *Server) triggerRefresh(w http.ResponseWriter, year, month int) {
	w.Header().Set("HX-Trigger", `{"expense:recorded": {"year": `+strconv.Itoa(year)+`, "month": `+strconv.Itoa(month)+`}}`)
}

func buildMonthView(ov core.MonthOverview, items []core.Expense) monthView {
	mv := monthView{
		Year:     ov.Year,
		Month:    ov.Month,
		Title:    time.Month(ov.Month).String() + " " + strconv.Itoa(ov.Year),
		Total:    ov.Total.String(),
		Gradient: template.CSS(donutGradient(ov)),
	}
	var maxCents int64
	for _, ca := range ov.ByCategory {
		if ca.Amount.Cents > maxCents {
			maxCents = ca.Amount.Cents
		}
	}
	for _, ca := range ov.ByCategory {
		mv.Rows = append(mv.Rows, categoryRow{
			Name:   ca.Name,
			Amount: ca.Amount.String(),
			Color:  colorFor(ca.Name),
			Width:  barWidth(ca.Amount.Cents, maxCents),
		})
	}
	for _, e := range items {
		mv.Items = append(mv.Items, toExpenseRow(e))
	}
	return mv
}

func buildAlertRows(statuses map[string]core.BudgetStatus) []alertRow {
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]alertRow, 0, len(names))
	for _, name := range names {
		st := statuses[name]
		row := alertRow{
			Category: name,
			Spent:    st.Spent.String(),
			Limit:    st.Limit.String(),
			Over:     st.Over,
		}
		if st.Over {
			row.OverBy = core.FormatRupees(st.Spent.Cents - st.Limit.Cents)
		}
		out = append(out, row)
	}
	return out
}

func toExpenseRow(e core.Expense) expenseRow {
	return expenseRow{
		Date:     e.Date.Format("Jan 02, 2006 15:04"),
		Desc:     e.Description,
		Amount:   e.Amount.String(),
		Category: e.Category,
		Color:    colorFor(e.Category),
	}
}

// writeProblem maps a domain error to an HTTP status and a safe message.
func writeProblem(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNegativeAmount), errors.Is(err, core.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "Invalid amount"
	case errors.Is(err, core.ErrEmptyDescription):
		return http.StatusUnprocessableEntity, "Description is required"
	case errors.Is(err, core.ErrDescriptionTooLong):
		return http.StatusUnprocessableEntity, "Description too long (max 200 characters)"
	case errors.Is(err, core.ErrEmptyCategory), errors.Is(err, core.ErrEmptyBudgetCategory):
		return http.StatusUnprocessableEntity, "Category is required"
	case errors.Is(err, core.ErrNegativeLimit):
		return http.StatusUnprocessableEntity, "Budget limit cannot be negative"
	case errors.Is(err, core.ErrInvalidRecipient):
		return http.StatusUnprocessableEntity, "Recipient must be a 10-digit phone number or UPI ID"
	case errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity, "Invalid date"
	default:
		return http.StatusInternalServerError, "Could not save, stored data unchanged"
	}
}
