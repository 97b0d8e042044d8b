package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"webmall/evaluation/webmall/checklist"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// disableColorUnlessTerminal turns colors off when out is piped or buffered.
func disableColorUnlessTerminal(out io.Writer) {
	if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return
	}
	color.NoColor = true
}

func errorText(msg string) string {
	return red("error: " + msg)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// printTable aligns plain cells first and colours them afterwards, so escape
// codes never count towards column widths. paint may be nil.
func printTable(w io.Writer, header []string, rows [][]string, paint func(col int, cell string) string) error {
	var buf bytes.Buffer
	tw := newTable(&buf)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			line = bold(line)
		case paint != nil && i-1 < len(rows):
			line = paintCells(line, rows[i-1], paint)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// paintCells colours each cell in place within an aligned line.
func paintCells(line string, cells []string, paint func(col int, cell string) string) string {
	var b strings.Builder
	for col, cell := range cells {
		i := strings.Index(line, cell)
		if cell == "" || i < 0 {
			continue
		}
		b.WriteString(line[:i])
		b.WriteString(paint(col, cell))
		line = line[i+len(cell):]
	}
	b.WriteString(line)
	return b.String()
}

func flagMark(flag bool) string {
	if flag {
		return "[x]"
	}
	return "[ ]"
}

func printChecklist(w io.Writer, records []checklist.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{flagMark(rec.Flag), rec.ID, string(rec.Type), fmt.Sprintf("%.4f", rec.Weight), rec.Value})
	}
	return printTable(w, []string{"DONE", "ID", "TYPE", "WEIGHT", "VALUE"}, rows, func(col int, cell string) string {
		switch {
		case col != 0:
			return cell
		case cell == "[x]":
			return green(cell)
		default:
			return gray(cell)
		}
	})
}

func scoreText(score, max float64) string {
	text := fmt.Sprintf("%.4f / %.4f", score, max)
	switch {
	case max > 0 && score >= max-1e-9:
		return green(text)
	case score > 0:
		return yellow(text)
	default:
		return gray(text)
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
