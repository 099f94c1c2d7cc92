package scouting

import "testing"

func TestCoralPointsWeights(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   int64
	}{
		{"empty", Record{}, 0},
		{"level 1 only", Record{CoralL1: 2}, 6},
		{"level 2 only", Record{CoralL2: 3}, 12},
		{"level 3 only", Record{CoralL3: 1}, 6},
		{"level 4 only", Record{CoralL4: 5}, 35},
		{"mixed levels", Record{CoralL1: 2, CoralL4: 1}, 13},
		{"all levels", Record{CoralL1: 1, CoralL2: 1, CoralL3: 1, CoralL4: 1}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoralPoints(tt.record); got != tt.want {
				t.Fatalf("CoralPoints = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCoralPointsMonotonic(t *testing.T) {
	base := Record{CoralL1: 2, CoralL2: 1, CoralL3: 3, CoralL4: 1}
	baseline := CoralPoints(base)

	increments := []struct {
		name  string
		bump  func(Record) Record
	}{
		{"coral l1", func(r Record) Record { r.CoralL1++; return r }},
		{"coral l2", func(r Record) Record { r.CoralL2++; return r }},
		{"coral l3", func(r Record) Record { r.CoralL3++; return r }},
		{"coral l4", func(r Record) Record { r.CoralL4++; return r }},
	}

	for _, tt := range increments {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoralPoints(tt.bump(base)); got <= baseline {
				t.Fatalf("incrementing %s did not increase points: %d <= %d", tt.name, got, baseline)
			}
		})
	}
}

func TestAlgaePointsIgnoresTakenOff(t *testing.T) {
	a := Record{AlgaeInProcessor: 2, AlgaeInNet: 1}
	b := a
	b.AlgaeTakenOff = 7

	if AlgaePoints(a) != AlgaePoints(b) {
		t.Fatalf("AlgaePoints should ignore AlgaeTakenOff: %d != %d", AlgaePoints(a), AlgaePoints(b))
	}
	if got := AlgaePoints(a); got != 18 {
		t.Fatalf("AlgaePoints = %d, want 18", got)
	}
}

func TestTotalDrops(t *testing.T) {
	r := Record{DroppedCoral: 3, DroppedAlgae: 2}
	if got := TotalDrops(r); got != 5 {
		t.Fatalf("TotalDrops = %d, want 5", got)
	}
}

func TestSummarize(t *testing.T) {
	r := Record{
		CoralL1:          2,
		CoralL4:          1,
		AlgaeInProcessor: 1,
		AlgaeInNet:       2,
		AlgaeTakenOff:    4,
		DroppedCoral:     1,
	}

	got := Summarize(r)
	want := Summary{CoralPoints: 13, AlgaePoints: 18, TotalDrops: 1}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}
