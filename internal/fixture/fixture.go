// Package fixture generates the remaining matches of a double round-robin
// season around an externally fixed partial calendar. Generated placements
// respect one-match-per-team-per-week and never duplicate an ordered pair
// already present in the fixed set.
package fixture

import "fmt"

// ByeTeam pads an odd-sized roster so every round pairs all entries. It is
// never emitted in output.
const ByeTeam = "BYE"

// lookaheadWeeks bounds the free-week search per pair. Searching further
// fragments the calendar without helping compactness.
const lookaheadWeeks = 20

// Placement is an ordered home/away pairing committed to a week.
type Placement struct {
	Home string
	Away string
	Week int
}

// pair is the ordered identity of a match; the reverse pair is the return
// leg and a distinct identity.
type pair struct {
	home string
	away string
}

// Result tracks the outcome of a scheduling run.
type Result struct {
	Generated int      // placements produced by the round-robin fill
	Skipped   int      // canonical pairs already present in the fixed set
	Forced    int      // placements that exhausted the lookahead window
	Errors    []string // non-fatal conditions, e.g. roster too small
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("generated=%d skipped=%d forced=%d errors=%d",
		r.Generated, r.Skipped, r.Forced, len(r.Errors))
}
