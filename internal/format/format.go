package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/teemow/gtcli/internal/store"
	"github.com/teemow/gtcli/internal/tasks"
)

// Format selects the output rendering.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
)

// Parse validates a user-supplied format name.
func Parse(s string) (Format, error) {
	switch Format(s) {
	case Table, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table or json)", s)
	}
}

// Writer renders gtcli resources either as tab-separated tables or JSON.
type Writer struct {
	out    io.Writer
	format Format
}

// NewWriter creates a Writer rendering to out in the given format.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format}
}

func (w *Writer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// TaskLists renders a set of task lists.
func (w *Writer) TaskLists(lists []tasks.TaskList) error {
	if w.format == JSON {
		return w.writeJSON(lists)
	}

	tw := tabwriter.NewWriter(w.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
	for _, l := range lists {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.Title, formatDate(l.Updated))
	}
	return tw.Flush()
}

// Tasks renders a set of tasks.
func (w *Writer) Tasks(items []tasks.Task) error {
	if w.format == JSON {
		return w.writeJSON(items)
	}

	tw := tabwriter.NewWriter(w.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDUE\tNOTES")
	for _, t := range items {
		notes := t.Notes
		if len(notes) > 40 {
			notes = notes[:37] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, formatDate(t.Due), notes)
	}
	return tw.Flush()
}

// Task renders a single task.
func (w *Writer) Task(t tasks.Task) error {
	if w.format == JSON {
		return w.writeJSON(t)
	}
	return w.Tasks([]tasks.Task{t})
}

// TaskList renders a single task list.
func (w *Writer) TaskList(l tasks.TaskList) error {
	if w.format == JSON {
		return w.writeJSON(l)
	}
	return w.TaskLists([]tasks.TaskList{l})
}

// accountView is the renderable shape of an account: emails only, no
// token material.
type accountView struct {
	Email string `json:"email"`
}

// Accounts renders stored accounts. Tokens are never included.
func (w *Writer) Accounts(accounts []store.Account) error {
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{Email: a.Email})
	}

	if w.format == JSON {
		return w.writeJSON(views)
	}

	tw := tabwriter.NewWriter(w.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL")
	for _, v := range views {
		fmt.Fprintln(tw, v.Email)
	}
	return tw.Flush()
}
