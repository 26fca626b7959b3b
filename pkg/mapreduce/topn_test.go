package mapreduce

import (
	"bytes"
	"testing"

	"github.com/dtnitsch/taxi-report/models"
)

func lines(pairs ...interface{}) []models.ReportLine {
	out := make([]models.ReportLine, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.ReportLine{Key: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return out
}

func keys(r models.RankedResult) []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Key
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRank(t *testing.T) {
	tests := []struct {
		name  string
		input []models.ReportLine
		n     int
		want  []string
	}{
		{
			name:  "top two of three",
			input: lines("Zone A", 50, "Zone B", 100, "Zone C", 75),
			n:     2,
			want:  []string{"Zone B", "Zone C"},
		},
		{
			name:  "ties keep input order",
			input: lines("a", 5, "b", 9, "c", 5, "d", 9, "e", 5),
			n:     5,
			want:  []string{"b", "d", "a", "c", "e"},
		},
		{
			name:  "n larger than input returns all",
			input: lines("X", 10, "Y", 20),
			n:     10,
			want:  []string{"Y", "X"},
		},
		{
			name:  "n equal to input",
			input: lines("X", 10, "Y", 20),
			n:     2,
			want:  []string{"Y", "X"},
		},
		{
			name:  "n zero is empty",
			input: lines("X", 10, "Y", 20),
			n:     0,
			want:  []string{},
		},
		{
			name:  "negative n clamps to zero",
			input: lines("X", 10),
			n:     -3,
			want:  []string{},
		},
		{
			name:  "duplicate keys are kept",
			input: lines("X", 1, "X", 3),
			n:     2,
			want:  []string{"X", "X"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.input, tt.n)
			if got.NoData {
				t.Fatal("Rank() NoData = true for non-empty input")
			}
			if !equal(keys(got), tt.want) {
				t.Errorf("Rank() keys = %v, want %v", keys(got), tt.want)
			}
			if got.Total != len(tt.input) {
				t.Errorf("Rank() Total = %d, want %d", got.Total, len(tt.input))
			}
			for i, e := range got.Entries {
				if e.Rank != i+1 {
					t.Errorf("Entries[%d].Rank = %d, want %d", i, e.Rank, i+1)
				}
				if i > 0 && got.Entries[i-1].Count < e.Count {
					t.Errorf("Entries not descending at %d: %d < %d", i, got.Entries[i-1].Count, e.Count)
				}
			}
		})
	}
}

func TestRank_NoData(t *testing.T) {
	for _, n := range []int{0, 10, 20} {
		got := Rank(nil, n)
		if !got.NoData {
			t.Errorf("Rank(nil, %d) NoData = false, want true", n)
		}
		if len(got.Entries) != 0 {
			t.Errorf("Rank(nil, %d) Entries = %v, want empty", n, got.Entries)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := lines("a", 1, "b", 2)
	_ = Rank(input, 2)
	if input[0].Key != "a" || input[1].Key != "b" {
		t.Errorf("Rank() reordered its input: %+v", input)
	}
}

func TestPrintRanked(t *testing.T) {
	var buf bytes.Buffer
	result := Rank(lines("Zone A", 50, "Zone B", 100, "Zone C", 75), 2)

	if err := PrintRanked(&buf, result, "Busiest Pickup Locations"); err != nil {
		t.Fatalf("PrintRanked() error = %v", err)
	}

	want := "Top 2 Busiest Pickup Locations:\n1. Zone B: 100\n2. Zone C: 75\n"
	if buf.String() != want {
		t.Errorf("PrintRanked() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrintRanked_NoData(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintRanked(&buf, Rank(nil, 20), "Busiest Pickup Locations"); err != nil {
		t.Fatalf("PrintRanked() error = %v", err)
	}
	if buf.String() != "No data processed.\n" {
		t.Errorf("PrintRanked() = %q", buf.String())
	}
}

func TestPrintRanked_ZeroN(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintRanked(&buf, Rank(lines("X", 1), 0), "Keys"); err != nil {
		t.Fatalf("PrintRanked() error = %v", err)
	}
	if buf.String() != "Top 0 Keys:\n" {
		t.Errorf("PrintRanked() = %q", buf.String())
	}
}
