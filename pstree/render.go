package pstree

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"pipechat/domain"
	"pipechat/errors"
)

// Tree indexes a process snapshot by parent for rendering.
type Tree struct {
	byPID    map[domain.PID]domain.Process
	children map[domain.PID][]domain.PID
}

func NewTree(procs []domain.Process) *Tree {
	t := &Tree{
		byPID:    make(map[domain.PID]domain.Process, len(procs)),
		children: make(map[domain.PID][]domain.PID),
	}
	for _, p := range procs {
		t.byPID[p.PID] = p
	}
	for _, p := range procs {
		// A self-parented entry (pid 0 on some systems) would recurse forever.
		if p.PPID == p.PID {
			continue
		}
		t.children[p.PPID] = append(t.children[p.PPID], p.PID)
	}
	// Process-table iteration order is not deterministic; sort for stable output.
	for _, kids := range t.children {
		sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
	}
	return t
}

// Render draws the subtree rooted at root with box-drawing connectors,
// the process name in cyan and the pid in yellow.
func (t *Tree) Render(w io.Writer, root domain.PID) error {
	if _, ok := t.byPID[root]; !ok {
		return fmt.Errorf("%w: %d", errors.ErrUnknownPID, root)
	}
	fmt.Fprintf(w, "\n%s\n\n", color.New(color.FgMagenta, color.OpBold).Render("─── Process Tree ───"))
	t.render(w, root, "", false, true)
	fmt.Fprintln(w)
	return nil
}

func (t *Tree) render(w io.Writer, pid domain.PID, indent string, last, isRoot bool) {
	p := t.byPID[pid]

	connector := ""
	if !isRoot {
		if last {
			connector = "└── "
		} else {
			connector = "├── "
		}
	}
	fmt.Fprintf(w, "%s%s%s (%s)\n", indent, connector,
		color.New(color.FgCyan, color.OpBold).Render(p.Name),
		color.FgYellow.Render(strconv.Itoa(int(p.PID))))

	kids := t.children[pid]
	for i, kid := range kids {
		childIndent := indent
		if !isRoot {
			if last {
				childIndent += "    "
			} else {
				childIndent += "│   "
			}
		}
		t.render(w, kid, childIndent, i == len(kids)-1, false)
	}
}

// RenderTable prints the subtree flat, one row per process, depth-first.
func (t *Tree) RenderTable(w io.Writer, root domain.PID) error {
	if _, ok := t.byPID[root]; !ok {
		return fmt.Errorf("%w: %d", errors.ErrUnknownPID, root)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "PPID", "Name", "Status"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	t.walk(root, func(p domain.Process) {
		table.Append([]string{
			strconv.Itoa(int(p.PID)),
			strconv.Itoa(int(p.PPID)),
			p.Name,
			string(p.Status),
		})
	})
	table.Render()
	return nil
}

// walk visits the subtree depth-first in rendered order.
func (t *Tree) walk(pid domain.PID, visit func(domain.Process)) {
	visit(t.byPID[pid])
	for _, kid := range t.children[pid] {
		t.walk(kid, visit)
	}
}
