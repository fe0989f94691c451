package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/library-sim/library-sim/sim"
)

// column is one fixed-width cell of the state vector table.
type column struct {
	title string
	width int
	value func(rec *sim.EventRecord) string
}

// TableWriter renders records as a human-readable state vector, one line per
// event. Clerk state cells are colored when the terminal supports it.
type TableWriter struct {
	w          io.Writer
	columns    []column
	headerDone bool

	headerStyle lipgloss.Style
	busyStyle   lipgloss.Style
	idleStyle   lipgloss.Style
	plainStyle  lipgloss.Style
}

// NewTableWriter creates a TableWriter writing to w.
func NewTableWriter(w io.Writer) *TableWriter {
	t := &TableWriter{
		w:           w,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		busyStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		idleStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		plainStyle:  lipgloss.NewStyle(),
	}
	t.columns = []column{
		{"iter", 6, func(r *sim.EventRecord) string { return strconv.Itoa(r.Iteration) }},
		{"event", 12, func(r *sim.EventRecord) string { return string(r.Kind) }},
		{"client", 7, func(r *sim.EventRecord) string { return optInt(r.ClientID) }},
		{"clock", 9, func(r *sim.EventRecord) string { return fmtFloat(r.Clock) }},
		{"rnd_arr", 8, func(r *sim.EventRecord) string { return optFloat(r.ArrivalDraw) }},
		{"gap", 8, func(r *sim.EventRecord) string { return optFloat(r.ArrivalInterval) }},
		{"next_arr", 9, func(r *sim.EventRecord) string { return fmtFloat(r.NextArrival) }},
		{"rnd_trx", 8, func(r *sim.EventRecord) string { return optFloat(r.TransactionDraw) }},
		{"trx", 13, func(r *sim.EventRecord) string {
			if r.TransactionKind == sim.KindNone {
				return "-"
			}
			return string(r.TransactionKind)
		}},
		{"rnd_read", 9, func(r *sim.EventRecord) string {
			if r.ReadDecision == nil {
				return "-"
			}
			return fmtFloat(r.ReadDecision.Draw)
		}},
		{"read_at", 8, func(r *sim.EventRecord) string {
			if r.ReadDecision == nil {
				return "-"
			}
			return string(r.ReadDecision.Place)
		}},
	}
	for i := 0; i < sim.NumServers; i++ {
		prefix := fmt.Sprintf("c%d_", i+1)
		t.columns = append(t.columns,
			column{prefix + "state", 8, func(r *sim.EventRecord) string { return string(r.Servers[i].State) }},
			column{prefix + "rnd", 7, func(r *sim.EventRecord) string { return optFloat(r.Servers[i].ServiceDraw) }},
			column{prefix + "svc", 7, func(r *sim.EventRecord) string { return optFloat(r.Servers[i].ServiceDuration) }},
			column{prefix + "end", 9, func(r *sim.EventRecord) string {
				if r.Servers[i].State == sim.ServerIdle {
					return "-"
				}
				return fmtFloat(r.Servers[i].CompletionTime)
			}},
			column{prefix + "idle", 8, func(r *sim.EventRecord) string { return fmtFloat(r.Servers[i].IdleTotal) }},
		)
	}
	t.columns = append(t.columns,
		column{"queue", 6, func(r *sim.EventRecord) string { return strconv.Itoa(r.QueueLength) }},
		column{"occ", 4, func(r *sim.EventRecord) string { return strconv.Itoa(r.Occupancy) }},
		column{"open", 5, func(r *sim.EventRecord) string { return strconv.FormatBool(r.LibraryOpen) }},
		column{"idle_tot", 9, func(r *sim.EventRecord) string { return fmtFloat(r.IdleTotal) }},
		column{"perm_tot", 9, func(r *sim.EventRecord) string { return fmtFloat(r.PermanenceTotal) }},
		column{"departed", 9, func(r *sim.EventRecord) string { return strconv.Itoa(r.Departed) }},
	)
	return t
}

// Write prints the header on first use, then one line for rec.
func (t *TableWriter) Write(rec *sim.EventRecord) error {
	if !t.headerDone {
		t.headerDone = true
		cells := make([]string, 0, len(t.columns)+1)
		for _, c := range t.columns {
			cells = append(cells, t.headerStyle.Render(pad(c.title, c.width)))
		}
		cells = append(cells, t.headerStyle.Render("clients"))
		if _, err := fmt.Fprintln(t.w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}

	cells := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		text := c.value(rec)
		style := t.plainStyle
		if strings.HasSuffix(c.title, "_state") {
			style = t.idleStyle
			if text == string(sim.ServerBusy) {
				style = t.busyStyle
			}
		}
		cells = append(cells, style.Render(pad(text, c.width)))
	}
	cells = append(cells, clientsCell(rec.Clients))
	_, err := fmt.Fprintln(t.w, strings.Join(cells, " "))
	return err
}

// Close is a no-op; the caller owns the underlying writer.
func (t *TableWriter) Close() error {
	return nil
}

// clientsCell lists live clients as id:state[@server], ordered by id.
func clientsCell(clients []sim.ClientSnapshot) string {
	if len(clients) == 0 {
		return "-"
	}
	sorted := append([]sim.ClientSnapshot(nil), clients...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	parts := make([]string, 0, len(sorted))
	for _, c := range sorted {
		p := fmt.Sprintf("%d:%s", c.ID, c.State)
		switch {
		case c.State == sim.StateInService:
			p += "@" + strconv.Itoa(c.Server)
		case c.State == sim.StateReading:
			p += "@" + fmtFloat(c.ReadingEnd)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// pad left-aligns text in a cell of the given width. Longer text is kept whole.
func pad(text string, width int) string {
	return fmt.Sprintf("%-*s", width, text)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

func optInt(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}
