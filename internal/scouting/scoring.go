// Package scouting computes derived point totals from raw match
// scouting records. Point values follow the 2025 REEFSCAPE game rules:
// coral scores 3/4/6/7 by reef level, algae scores 6 whether placed in
// the processor or the net. Removing algae from the reef scores nothing
// by itself; only subsequent placement counts.
package scouting

// Record holds the raw counters collected for one team in one match.
// All values are non-negative; validation happens at write time.
type Record struct {
	CoralL1          int64
	CoralL2          int64
	CoralL3          int64
	CoralL4          int64
	AlgaeInProcessor int64
	AlgaeTakenOff    int64
	AlgaeInNet       int64
	DroppedCoral     int64
	DroppedAlgae     int64
}

// Summary is the presentation-layer aggregate derived from a Record.
// It is recomputed on every read and never persisted.
type Summary struct {
	CoralPoints int64 `json:"coralPoints"`
	AlgaePoints int64 `json:"algaePoints"`
	TotalDrops  int64 `json:"totalDrops"`
}

// CoralPoints returns the points scored by coral placement across the
// four reef levels.
func CoralPoints(r Record) int64 {
	return 3*r.CoralL1 + 4*r.CoralL2 + 6*r.CoralL3 + 7*r.CoralL4
}

// AlgaePoints returns the points scored by algae placement. AlgaeTakenOff
// deliberately does not contribute.
func AlgaePoints(r Record) int64 {
	return 6*r.AlgaeInProcessor + 6*r.AlgaeInNet
}

// TotalDrops returns the combined count of dropped game pieces.
func TotalDrops(r Record) int64 {
	return r.DroppedCoral + r.DroppedAlgae
}

// Summarize derives the full summary for a record.
func Summarize(r Record) Summary {
	return Summary{
		CoralPoints: CoralPoints(r),
		AlgaePoints: AlgaePoints(r),
		TotalDrops:  TotalDrops(r),
	}
}
