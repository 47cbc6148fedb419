package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gomponents "maragu.dev/gomponents"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/csvwriter"
)

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// redirect sends the browser back to the grid with the outcome in the query
// string, so refreshing the page never replays a write.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, table config.Table, message string, errMessage string) {
	values := url.Values{}
	values.Set("table", table.Name)
	if page := r.Form.Get("page"); page != "" {
		values.Set("page", page)
	}

	if message != "" {
		values.Set("msg", message)
	}

	if errMessage != "" {
		values.Set("err", errMessage)
	}

	http.Redirect(w, r, "/?"+values.Encode(), http.StatusSeeOther)
}

// tableFromRequest resolves a grid handle, defaulting to the first configured
// table so GET / renders something useful out of the box.
func (s *Server) tableFromRequest(name string) (config.Table, error) {
	if name == "" {
		if len(s.cfg.Tables) == 0 {
			return config.Table{}, fmt.Errorf("no tables are configured")
		}

		return s.cfg.Tables[0], nil
	}

	return s.cfg.Table(name)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	table, err := s.tableFromRequest(r.URL.Query().Get("table"))
	if err != nil {
		renderHTML(w, http.StatusNotFound, errorPage("Unknown table", err.Error()))
		return
	}

	state := gridState{
		Tables:  s.cfg.Tables,
		Table:   table,
		Page:    formPage(r.URL.Query().Get("page")),
		Message: r.URL.Query().Get("msg"),
		Error:   r.URL.Query().Get("err"),
	}

	rows, err := s.destination.Fetch(r.Context(), table, s.cfg.Web.FetchLimit)
	if err != nil {
		// The grid degrades to an empty page with a banner, a broken table
		// should not take the picker down with it.
		slog.Error("Failed to fetch rows", slog.Any("err", err), slog.String("table", table.Name))
		state.Error = err.Error()
	} else {
		state.Rows = rows
	}

	renderHTML(w, http.StatusOK, gridPage(state, s.cfg.Web.PageSize))
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	table, ok := s.writableTable(w, r)
	if !ok {
		return
	}

	rows, err := decodeGridSelection(r.Form)
	if err != nil {
		s.redirect(w, r, table, "", err.Error())
		return
	}

	tags := map[string]string{
		"what":  "success",
		"table": table.Name,
	}

	start := time.Now()
	result, err := s.destination.Merge(r.Context(), table, rows)
	if err != nil {
		slog.Error("Failed to merge rows", slog.Any("err", err), slog.String("table", table.Name))
		tags["what"] = "merge_fail"
		s.metricsClient.Timing("upsert", time.Since(start), tags)
		s.redirect(w, r, table, "", err.Error())
		return
	}

	s.metricsClient.Timing("upsert", time.Since(start), tags)
	if result.Skipped {
		s.redirect(w, r, table, "No rows were selected.", "")
		return
	}

	s.redirect(w, r, table, fmt.Sprintf("Merged %d row(s) into %s.", result.RowsStaged, table.Name), "")
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	table, ok := s.writableTable(w, r)
	if !ok {
		return
	}

	row := decodeInsertRow(r.Form)
	if len(row) == 0 {
		s.redirect(w, r, table, "", "The form did not submit any values.")
		return
	}

	tags := map[string]string{
		"what":  "success",
		"table": table.Name,
	}

	start := time.Now()
	if err := s.destination.Insert(r.Context(), table, row); err != nil {
		slog.Error("Failed to insert row", slog.Any("err", err), slog.String("table", table.Name))
		tags["what"] = "insert_fail"
		s.metricsClient.Timing("insert", time.Since(start), tags)
		s.redirect(w, r, table, "", err.Error())
		return
	}

	s.metricsClient.Timing("insert", time.Since(start), tags)
	s.redirect(w, r, table, fmt.Sprintf("Inserted 1 row into %s.", table.Name), "")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Bad request", "The submitted form could not be parsed."))
		return
	}

	table, err := s.cfg.Table(r.Form.Get("table"))
	if err != nil {
		renderHTML(w, http.StatusNotFound, errorPage("Unknown table", err.Error()))
		return
	}

	rows, err := decodeGridSelection(r.Form)
	if err != nil {
		s.redirect(w, r, table, "", err.Error())
		return
	}

	if rows.NumRows() == 0 {
		s.redirect(w, r, table, "", "No rows were selected.")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Name+".csv"))

	writer := csvwriter.New(w)
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		writer = csvwriter.NewGzip(w)
	}

	if err = writer.Write(rows.Columns()); err != nil {
		slog.Error("Failed to write the CSV header", slog.Any("err", err), slog.String("table", table.Name))
		return
	}

	for _, row := range rows.StringRows() {
		if err = writer.Write(row); err != nil {
			slog.Error("Failed to write a CSV row", slog.Any("err", err), slog.String("table", table.Name))
			return
		}
	}

	if err = writer.Close(); err != nil {
		slog.Error("Failed to finish the CSV export", slog.Any("err", err), slog.String("table", table.Name))
		return
	}

	s.metricsClient.Count("export.rows", int64(rows.NumRows()), map[string]string{"table": table.Name})
}

// writableTable parses the form, resolves the table and charges the write
// limiter. It has written the response when ok is false.
func (s *Server) writableTable(w http.ResponseWriter, r *http.Request) (config.Table, bool) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Bad request", "The submitted form could not be parsed."))
		return config.Table{}, false
	}

	table, err := s.cfg.Table(r.Form.Get("table"))
	if err != nil {
		renderHTML(w, http.StatusNotFound, errorPage("Unknown table", err.Error()))
		return config.Table{}, false
	}

	if !s.writeLimiter.Allow() {
		s.metricsClient.Incr("write.throttled", map[string]string{"table": table.Name})
		s.redirect(w, r, table, "", "Too many writes, try again in a moment.")
		return config.Table{}, false
	}

	return table, true
}
