package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/mazetrace/internal/storage"
)

func TestRunRows(t *testing.T) {
	runs := []storage.Run{
		{Layout: "scatter", Seed: 3, Width: 64, Height: 22, Outcome: storage.OutcomeFound, Expanded: 12345, PathLen: 40, CreatedAt: time.Now()},
		{Layout: "carved", Seed: 4, Width: 10, Height: 10, Outcome: storage.OutcomeNoPath, Expanded: 7},
	}

	rows := RunRows(runs)
	if len(rows) != 2 {
		t.Fatalf("RunRows() = %d rows, expected 2", len(rows))
	}

	tests := []struct {
		row, col int
		want     string
	}{
		{0, 1, "scatter"},
		{0, 3, "64x22"},
		{0, 5, "12,345"},
		{0, 6, "40"},
		{1, 4, storage.OutcomeNoPath},
		{1, 6, "-"},
	}
	for _, tt := range tests {
		if got := rows[tt.row][tt.col]; got != tt.want {
			t.Errorf("rows[%d][%d] = %q, expected %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	if got := StatsLine(nil); got != "no runs yet" {
		t.Errorf("StatsLine(nil) = %q", got)
	}

	st := &storage.Stats{Runs: 1200, Found: 1100, NoPath: 100, AvgExpanded: 2500.4, BestPath: 31}
	got := StatsLine(st)
	for _, part := range []string{"1,200 runs", "1100 found", "100 no path", "avg expanded 2,500", "shortest path 31"} {
		if !strings.Contains(got, part) {
			t.Errorf("StatsLine() = %q, missing %q", got, part)
		}
	}
	if strings.Contains(got, "last") {
		t.Errorf("StatsLine() = %q, should not mention the last run without a time", got)
	}
}

func TestLayoutStatsLines(t *testing.T) {
	lines := LayoutStatsLines(map[string]*storage.Stats{
		"scatter": {Layout: "scatter", Runs: 3, Found: 2, NoPath: 1},
		"carved":  {Layout: "carved", Runs: 1, Found: 1, BestPath: 12},
	})
	if len(lines) != 2 {
		t.Fatalf("LayoutStatsLines() = %d lines, expected 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "carved") || !strings.Contains(lines[0], "shortest path 12") {
		t.Errorf("lines[0] = %q, expected carved first", lines[0])
	}
	if !strings.HasPrefix(lines[1], "scatter") || !strings.Contains(lines[1], "1 no path") {
		t.Errorf("lines[1] = %q, expected scatter second", lines[1])
	}
}

func TestRunDetail(t *testing.T) {
	found := RunDetail(&storage.Run{ID: "abc", Layout: "open", Width: 5, Height: 5, Seed: 9,
		Outcome: storage.OutcomeFound, Expanded: 1234, PathLen: 8, Ticks: 40})
	for _, part := range []string{"Run abc", "open (5x5", "seed      9", "expanded  1,234", "path      8"} {
		if !strings.Contains(found, part) {
			t.Errorf("RunDetail() = %q, missing %q", found, part)
		}
	}

	failed := RunDetail(&storage.Run{ID: "def", Outcome: storage.OutcomeNoPath})
	if strings.Contains(failed, "path      ") || strings.Contains(failed, "recorded") {
		t.Errorf("RunDetail() = %q, expected no path or time lines", failed)
	}
}
