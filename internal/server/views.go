package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" // Using . import for convenience with html tags

	"github.com/obsdesk/jwstatus/pkg/status"
)

func writePage(w http.ResponseWriter, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = node.Render(w)
}

func writeFragment(w http.ResponseWriter, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = node.Render(w)
}

// PageLayout is the shared document shell.
func PageLayout(title string, content g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				Script(Src("https://cdn.tailwindcss.com")),
				Script(Src("https://unpkg.com/htmx.org@2.0.4")),
			),
			Body(Class("bg-slate-950 font-sans antialiased text-slate-300"),
				content,
			),
		),
	})
}

// HomePage renders the program id form, with an optional message under it
// (e.g. after a failed lookup).
func HomePage(message string) g.Node {
	return PageLayout("JWST Program Status",
		Div(Class("max-w-md mx-auto mt-24 px-4"),
			H1(Class("text-2xl font-bold text-slate-100 mb-6"), g.Text("JWST Program Status")),
			Form(Action("/program"), Method("get"), Class("flex gap-2"),
				Input(Type("text"), Name("id"), Placeholder("Enter Program ID"),
					Class("flex-grow rounded bg-slate-800 border border-slate-700 px-3 py-2 text-slate-100")),
				Button(Type("submit"), Class("rounded bg-cyan-600 hover:bg-cyan-500 px-4 py-2 text-white"),
					g.Text("Submit")),
			),
			g.If(message != "",
				P(Class("mt-4 text-red-400"), g.Text(message)),
			),
		),
	)
}

// ProgramPage renders the sidebar metadata next to the filterable visit table.
func ProgramPage(pid string, info *status.ProgramInfo, records []status.VisitRecord) g.Node {
	return PageLayout(info.Title,
		Div(Class("flex min-h-screen"),
			sidebar(pid, info),
			Div(Class("flex-grow p-6"),
				H1(Class("text-2xl font-bold text-slate-100 mb-4"), g.Text(info.Title)),
				statusSelector(pid, records),
				Input(Type("search"), ID("visit-search"), Placeholder("Search visits..."),
					Class("mb-4 w-72 rounded bg-slate-800 border border-slate-700 px-3 py-2 text-slate-100"),
					g.Attr("oninput", visitSearchScript)),
				Div(ID("visit-table-container"),
					VisitTable(status.AllStatuses, records),
				),
			),
		),
	)
}

// visitSearchScript filters table rows client-side; it queries the rows at
// event time so it keeps working after htmx swaps the table fragment.
const visitSearchScript = `
	const q = this.value.toLowerCase();
	document.querySelectorAll('#visit-table tbody tr').forEach(function(row) {
		row.style.display = row.textContent.toLowerCase().includes(q) ? '' : 'none';
	});
`

func sidebar(pid string, info *status.ProgramInfo) g.Node {
	field := func(label, value string) g.Node {
		return P(Class("mb-1"),
			Span(Class("font-semibold text-slate-100"), g.Text(label+": ")),
			g.Text(value),
		)
	}
	docLink := func(l status.DocLink) g.Node {
		return P(Class("mb-1"),
			A(Href(l.AbsoluteURL()), Target("_blank"), Class("text-cyan-400 hover:underline"),
				g.Text(l.Label)),
		)
	}

	return Div(Class("w-80 shrink-0 bg-slate-900 p-6 border-r border-slate-800"),
		H2(Class("text-lg font-bold text-slate-100 mb-4"), g.Text(info.Type+" "+pid)),
		field("PI", info.PI),
		field("PI Institution", info.PIInstitution),
		field("Program Title", info.Title),
		field("Cycle", strconv.Itoa(info.Cycle)),
		field("Allocation", fmt.Sprintf("%v hours", info.Allocation)),
		field("Exclusive Period", fmt.Sprintf("%d months", info.ExclusivePeriod)),
		H3(Class("text-base font-semibold text-slate-100 mt-4 mb-2"), g.Text("Program Contents")),
		docLink(info.APT),
		docLink(info.PDF),
	)
}

func statusSelector(pid string, records []status.VisitRecord) g.Node {
	options := []g.Node{
		Option(Value(status.AllStatuses), g.Text(status.AllStatuses), Selected()),
	}
	for _, v := range status.StatusValues(records) {
		options = append(options, Option(Value(v), g.Text(v)))
	}

	return Div(Class("mb-4 flex items-center gap-2"),
		Label(For("status-select"), Class("text-slate-400"), g.Text("Select a program visit status:")),
		Select(append([]g.Node{
			ID("status-select"),
			Name("status"),
			Class("rounded bg-slate-800 border border-slate-700 px-3 py-2 text-slate-100"),
			g.Attr("hx-get", "/program/"+url.PathEscape(pid)+"/table"),
			g.Attr("hx-target", "#visit-table-container"),
		}, options...)...),
	)
}

// VisitTable renders the filtered table fragment. The container height comes
// from the row count so the widget hugs its content.
func VisitTable(selector string, records []status.VisitRecord) g.Node {
	filtered, height := status.FilterByStatus(selector, records)

	headers := make([]g.Node, 0, len(status.Columns))
	for _, col := range status.Columns {
		headers = append(headers, Th(Class("px-3 py-2 text-left text-xs font-semibold text-slate-400 uppercase"),
			g.Text(col.Label)))
	}

	rows := make([]g.Node, 0, len(filtered))
	for _, rec := range filtered {
		cells := make([]g.Node, 0, len(status.Columns))
		for _, col := range status.Columns {
			cells = append(cells, Td(Class("px-3 py-2 text-sm text-slate-200 whitespace-nowrap"),
				g.Text(rec.Field(col.Name))))
		}
		rows = append(rows, Tr(Class("border-t border-slate-800"), g.Group(cells)))
	}

	return Div(
		H2(Class("text-lg font-semibold text-slate-100 mb-2"), g.Text(selector+" Visits")),
		Div(Class("overflow-auto rounded border border-slate-800"),
			Style("height: "+strconv.Itoa(height)+"px"),
			Table(ID("visit-table"), Class("min-w-full divide-y divide-slate-800"),
				THead(Tr(g.Group(headers))),
				TBody(g.Group(rows)),
			),
		),
	)
}
