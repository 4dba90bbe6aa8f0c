package terminal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
)

// cellChange is one position whose content differs between the
// previously presented frame and the next one; the unit the Renderer's
// diff pass produces.
type cellChange struct {
	x, y int
	cell cellbuf.Cell
}

// Renderer diff-renders successive CellBuffer frames against a cached
// copy of the last presented frame, emitting only the runs of cells that
// actually changed.
type Renderer struct {
	backend  Backend
	previous *cellbuf.CellBuffer
	first    bool
}

// NewRenderer wraps backend. The first Present always performs a full
// repaint since there is no previous frame to diff against.
func NewRenderer(backend Backend) *Renderer {
	return &Renderer{backend: backend, first: true}
}

// Present diffs frame against the last presented frame and writes only
// the changed runs to the backend, then caches frame as the new
// baseline.
func (r *Renderer) Present(frame *cellbuf.CellBuffer) {
	if r.first || r.previous == nil ||
		r.previous.Width() != frame.Width() || r.previous.Height() != frame.Height() {
		r.fullRepaint(frame)
		r.first = false
		r.cachePrevious(frame)
		return
	}

	changes := diffBuffers(r.previous, frame)
	if len(changes) == 0 {
		r.cachePrevious(frame)
		return
	}

	var sb strings.Builder
	writeRuns(&sb, changes)
	r.backend.WriteString(sb.String())
	r.cachePrevious(frame)
}

func (r *Renderer) cachePrevious(frame *cellbuf.CellBuffer) {
	if r.previous == nil {
		r.previous = cellbuf.New(frame.Width(), frame.Height())
	}
	r.previous.CopyFrom(frame)
}

func (r *Renderer) fullRepaint(frame *cellbuf.CellBuffer) {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	for y := 0; y < frame.Height(); y++ {
		var run []cellbuf.Cell
		runX := 0
		for x := 0; x < frame.Width(); x++ {
			c := frame.GetCell(x, y)
			if len(run) == 0 {
				runX = x
			}
			run = append(run, c)
			if x == frame.Width()-1 {
				writeRun(&sb, runX, y, run)
				run = nil
			}
		}
	}
	r.backend.WriteString(sb.String())
}

// diffBuffers compares from and to cell-by-cell over their overlapping
// region, returning every position whose content changed.
func diffBuffers(from, to *cellbuf.CellBuffer) []cellChange {
	width := min(from.Width(), to.Width())
	height := min(from.Height(), to.Height())

	changes := make([]cellChange, 0, 64)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := from.GetCell(x, y)
			b := to.GetCell(x, y)
			if !a.Equal(b) {
				changes = append(changes, cellChange{x: x, y: y, cell: b})
			}
		}
	}
	return changes
}

// writeRuns groups changes by row, then emits each row's changes as
// consecutive-x runs so the cursor only needs to move once per run
// rather than once per cell.
func writeRuns(sb *strings.Builder, changes []cellChange) {
	byRow := make(map[int][]cellChange)
	for _, c := range changes {
		byRow[c.y] = append(byRow[c.y], c)
	}
	rows := make([]int, 0, len(byRow))
	for y := range byRow {
		rows = append(rows, y)
	}
	sort.Ints(rows)

	for _, y := range rows {
		row := byRow[y]
		sort.Slice(row, func(i, j int) bool { return row[i].x < row[j].x })

		runStart := 0
		for i := 1; i <= len(row); i++ {
			if i == len(row) || row[i].x != row[i-1].x+1 {
				cells := make([]cellbuf.Cell, i-runStart)
				for k := range cells {
					cells[k] = row[runStart+k].cell
				}
				writeRun(sb, row[runStart].x, y, cells)
				runStart = i
			}
		}
	}
}

// writeRun positions the cursor once, then streams cells left to right,
// emitting an SGR change only when a cell's style differs from the
// previous one written in the run.
func writeRun(sb *strings.Builder, x, y int, cells []cellbuf.Cell) {
	sb.WriteString(moveCursor(x, y))
	var last cellbuf.Style
	haveLast := false
	for _, c := range cells {
		if !haveLast || !c.Style.Equal(last) {
			sb.WriteString(sgrReset)
			sb.WriteString(sgrFor(c.Style))
			last = c.Style
			haveLast = true
		}
		g := c.Grapheme
		if g == "" {
			g = " "
		}
		sb.WriteString(g)
	}
	sb.WriteString(sgrReset)
}

const (
	clearScreen = "\x1b[2J\x1b[H"
	sgrReset    = "\x1b[0m"
)

func moveCursor(x, y int) string {
	return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
}

// sgrFor encodes a cellbuf.Style as truecolor SGR attributes. Built by
// hand rather than through charmbracelet/x/ansi's higher-level style
// helpers, since the hot render path writes one escape sequence per run
// and a direct fmt.Sprintf avoids an extra layer of abstraction there.
func sgrFor(s cellbuf.Style) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", s.FgR, s.FgG, s.FgB))
	sb.WriteString(fmt.Sprintf("\x1b[48;2;%d;%d;%dm", s.BgR, s.BgG, s.BgB))
	if s.Bold {
		sb.WriteString("\x1b[1m")
	}
	if s.Dim {
		sb.WriteString("\x1b[2m")
	}
	if s.Italic {
		sb.WriteString("\x1b[3m")
	}
	if s.Underline {
		sb.WriteString("\x1b[4m")
	}
	return sb.String()
}
