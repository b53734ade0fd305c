package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/mattn/go-runewidth"

	"tmplfmt/internal/driver"
	"tmplfmt/internal/observ"
	"tmplfmt/internal/rewrite"
)

// printTable writes rows as left-aligned columns. Widths are display widths so
// non-ASCII pattern names line up.
func printTable(out io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		line := ""
		for i, cell := range row {
			if i == len(row)-1 {
				line += cell
				break
			}
			line += runewidth.FillRight(cell, widths[i]) + "  "
		}
		fmt.Fprintln(out, line)
	}
}

// printStats writes the rewrite hit counts summed over all inputs.
func printStats(out io.Writer, results []driver.Result) {
	total := rewrite.Hits{}
	passes, cached := 0, 0
	for _, res := range results {
		total.Merge(res.Hits)
		passes += res.Passes
		if res.Cached {
			cached++
		}
	}

	fmt.Fprintf(out, "stats: %d inputs, %d passes, %d rewrites, %d cached\n", len(results), passes, total.Total(), cached)
	if len(total) == 0 {
		return
	}
	names := total.Names()
	slices.SortStableFunc(names, func(a, b string) int { return total[b] - total[a] })
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{"  " + name, strconv.Itoa(total[name])})
	}
	printTable(out, rows)
}

// printTimings writes the stage times of each input and, for several
// inputs, the run total.
func printTimings(out io.Writer, results []driver.Result) {
	var total observ.Stages
	for _, res := range results {
		fmt.Fprintf(out, "timings: %s\n", res.Path)
		samples := res.Stages.Samples()
		rows := make([][]string, 0, len(samples)+1)
		for _, smp := range samples {
			row := []string{"  " + smp.Stage, observ.Millis(smp.Dur)}
			if smp.Note != "" {
				row = append(row, smp.Note)
			}
			rows = append(rows, row)
		}
		rows = append(rows, []string{"  total", observ.Millis(res.Stages.Total())})
		printTable(out, rows)
		total.Add(res.Stages)
	}
	if len(results) > 1 {
		fmt.Fprintf(out, "timings: %d inputs, %s\n", len(results), observ.Millis(total.Total()))
	}
}
