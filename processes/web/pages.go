package web

import (
	"fmt"
	"net/url"
	"strconv"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/rowset"
)

// stylesheet is inlined into every page so the process serves the whole UI
// without a static asset route.
const stylesheet = `
body { margin: 2rem auto; max-width: 72rem; padding: 0 1rem; font-family: ui-sans-serif, system-ui, sans-serif; color: #1f2933; background: #f8f9fa; }
.topbar { display: flex; align-items: baseline; gap: 1rem; }
.muted { color: #6b7280; }
.card { background: #fff; border: 1px solid #e1e4e8; border-radius: 6px; padding: 1rem; margin: 1rem 0; }
.table-wrap { overflow-x: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #e1e4e8; padding: 0.3rem 0.5rem; text-align: left; }
td input[type=text] { width: 100%; border: 1px solid transparent; background: transparent; font: inherit; padding: 0.1rem; }
td input[type=text]:focus { border-color: #2563eb; background: #fff; outline: none; }
label { display: block; margin-top: 0.5rem; font-size: 0.85rem; color: #4b5563; }
input[type=text], select { padding: 0.3rem; border: 1px solid #d1d5db; border-radius: 4px; }
.button-row { display: flex; gap: 0.5rem; margin-top: 1rem; }
button { padding: 0.4rem 0.9rem; border-radius: 4px; border: 1px solid #d1d5db; background: #fff; cursor: pointer; }
button.primary { background: #2563eb; border-color: #2563eb; color: #fff; }
.banner { padding: 0.6rem 0.9rem; border-radius: 4px; }
.banner.ok { background: #ecfdf5; border: 1px solid #059669; color: #065f46; }
.banner.err { background: #fef2f2; border: 1px solid #dc2626; color: #991b1b; }
`

// gridState is everything one grid render needs.
type gridState struct {
	Tables []config.Table
	Table  config.Table
	// Rows is nil when the fetch failed, the page then degrades to an empty grid.
	Rows    *rowset.RowSet
	Page    int
	Message string
	Error   string
}

type pageWindow struct {
	// Start and End bound the rows the page shows, half open.
	Start int
	End   int
	// Page is the requested page clamped into [1, PageCount].
	Page      int
	PageCount int
}

// paginate slices the fetched rows into pageSize windows. Out of range pages
// clamp instead of erroring so stale links still render something.
func paginate(numRows, pageSize, page int) pageWindow {
	pageCount := max((numRows+pageSize-1)/pageSize, 1)
	page = min(max(page, 1), pageCount)
	start := (page - 1) * pageSize

	return pageWindow{
		Start:     start,
		End:       min(start+pageSize, numRows),
		Page:      page,
		PageCount: pageCount,
	}
}

// insertColumns picks the columns the insert form offers. Configured insert
// columns win, otherwise every fetched column is editable.
func insertColumns(table config.Table, rows *rowset.RowSet) []string {
	if len(table.InsertColumns) > 0 {
		return table.InsertColumns
	}

	if rows != nil {
		return rows.Columns()
	}

	return nil
}

func appPage(title string, body ...gomponents.Node) gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | gridline")),
			html.StyleEl(gomponents.Raw(stylesheet)),
		),
		html.Body(
			html.Main(
				html.Div(
					html.Class("topbar"),
					html.Strong(gomponents.Text("gridline")),
					html.P(html.Class("muted"), gomponents.Text("Edit warehouse tables without writing SQL")),
				),
				html.H1(gomponents.Text(title)),
				gomponents.Group(body),
			),
		),
	)
}

func errorPage(title, message string) gomponents.Node {
	return appPage(title,
		html.P(html.Class("banner err"), gomponents.Text(message)),
		html.P(html.A(html.Href("/"), gomponents.Text("Back to the grid"))),
	)
}

func gridPage(state gridState, pageSize int) gomponents.Node {
	nodes := []gomponents.Node{tablePicker(state.Tables, state.Table)}
	if state.Message != "" {
		nodes = append(nodes, html.P(html.Class("banner ok"), gomponents.Text(state.Message)))
	}

	if state.Error != "" {
		nodes = append(nodes, html.P(html.Class("banner err"), gomponents.Text(state.Error)))
	}

	nodes = append(nodes,
		gridCard(state, pageSize),
		insertCard(state.Table, insertColumns(state.Table, state.Rows)),
	)

	return appPage(state.Table.Name, nodes...)
}

func tablePicker(tables []config.Table, selected config.Table) gomponents.Node {
	options := make([]gomponents.Node, 0, len(tables))
	for _, table := range tables {
		if table.Name == selected.Name {
			options = append(options, html.Option(html.Value(table.Name), html.Selected(), gomponents.Text(table.Name)))
		} else {
			options = append(options, html.Option(html.Value(table.Name), gomponents.Text(table.Name)))
		}
	}

	return html.Div(
		html.Class("card"),
		html.Form(
			html.Method("get"),
			html.Action("/"),
			html.Label(gomponents.Text("Table")),
			html.Select(html.Name("table"), gomponents.Group(options)),
			html.Div(html.Class("button-row"), html.Button(html.Type("submit"), gomponents.Text("Open"))),
		),
	)
}

// gridCard renders the editable grid. Every cell is a text input named after
// its absolute row index and column, and the checkbox column feeds `selected`,
// which is the shape [decodeGridSelection] expects back.
func gridCard(state gridState, pageSize int) gomponents.Node {
	if state.Rows == nil || state.Rows.NumRows() == 0 {
		return html.Div(
			html.Class("card"),
			html.P(html.Class("muted"), gomponents.Text("No rows to show.")),
		)
	}

	columns := state.Rows.Columns()
	window := paginate(state.Rows.NumRows(), pageSize, state.Page)

	headerCells := make([]gomponents.Node, 0, len(columns)+1)
	headerCells = append(headerCells, html.Th())
	for _, column := range columns {
		headerCells = append(headerCells, html.Th(gomponents.Text(column)))
	}

	stringRows := state.Rows.StringRows()
	bodyRows := make([]gomponents.Node, 0, window.End-window.Start)
	for index := window.Start; index < window.End; index++ {
		cells := make([]gomponents.Node, 0, len(columns)+1)
		cells = append(cells, html.Td(html.Input(
			html.Type("checkbox"),
			html.Name("selected"),
			html.Value(strconv.Itoa(index)),
		)))

		for j, column := range columns {
			cells = append(cells, html.Td(html.Input(
				html.Type("text"),
				html.Name(fmt.Sprintf("row.%d.%s", index, column)),
				html.Value(stringRows[index][j]),
			)))
		}

		bodyRows = append(bodyRows, html.Tr(gomponents.Group(cells)))
	}

	hiddenColumns := make([]gomponents.Node, 0, len(columns))
	for _, column := range columns {
		hiddenColumns = append(hiddenColumns, html.Input(html.Type("hidden"), html.Name("column"), html.Value(column)))
	}

	return html.Div(
		html.Class("card table-wrap"),
		html.Form(
			html.Method("post"),
			html.Action("/upload"),
			html.Input(html.Type("hidden"), html.Name("table"), html.Value(state.Table.Name)),
			html.Input(html.Type("hidden"), html.Name("page"), html.Value(strconv.Itoa(window.Page))),
			gomponents.Group(hiddenColumns),
			html.Table(
				html.THead(html.Tr(gomponents.Group(headerCells))),
				html.TBody(gomponents.Group(bodyRows)),
			),
			html.Div(
				html.Class("button-row"),
				html.Button(html.Type("submit"), html.Class("primary"), gomponents.Text("Save selected")),
				html.Button(html.Type("submit"), html.FormAction("/export.csv"), gomponents.Text("Export selected")),
			),
		),
		pager(state.Table, window, state.Rows.NumRows()),
	)
}

func pager(table config.Table, window pageWindow, numRows int) gomponents.Node {
	nodes := []gomponents.Node{
		html.P(html.Class("muted"), gomponents.Text(fmt.Sprintf("Page %d of %d, %d rows fetched.", window.Page, window.PageCount, numRows))),
	}

	if window.Page > 1 {
		nodes = append(nodes, pageLink(table, window.Page-1, "Previous"))
	}

	if window.Page < window.PageCount {
		nodes = append(nodes, pageLink(table, window.Page+1, "Next"))
	}

	return html.Div(html.Class("button-row"), gomponents.Group(nodes))
}

func pageLink(table config.Table, page int, label string) gomponents.Node {
	values := url.Values{}
	values.Set("table", table.Name)
	values.Set("page", strconv.Itoa(page))
	return html.A(html.Href("/?"+values.Encode()), gomponents.Text(label))
}

// insertCard renders the single row insert form, one `field.<column>` input
// per insertable column.
func insertCard(table config.Table, columns []string) gomponents.Node {
	if len(columns) == 0 {
		return html.Div(
			html.Class("card"),
			html.P(html.Class("muted"), gomponents.Text("Insert needs the table's columns, which could not be loaded.")),
		)
	}

	fields := make([]gomponents.Node, 0, len(columns)*2)
	for _, column := range columns {
		fields = append(fields,
			html.Label(gomponents.Text(column)),
			html.Input(html.Type("text"), html.Name("field."+column)),
		)
	}

	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Insert a row")),
		html.P(html.Class("muted"), gomponents.Text("Empty fields are stored as NULL.")),
		html.Form(
			html.Method("post"),
			html.Action("/rows"),
			html.Input(html.Type("hidden"), html.Name("table"), html.Value(table.Name)),
			gomponents.Group(fields),
			html.Div(html.Class("button-row"), html.Button(html.Type("submit"), html.Class("primary"), gomponents.Text("Insert row"))),
		),
	)
}
