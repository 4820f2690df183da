// Package score combines weighted scoring functions into the composite
// move-priority function driving best-first expansion.
//
// The engine consumes only the abstract Scorer capability; how a scorer
// is located and loaded is the host's concern (see internal/scorers for
// the built-in provider). Scorers are contractually pure and return
// values in [0, 1]; the contract is trusted at this boundary, not
// re-validated per call.
//
// The composite score of a move is the plain weighted sum of the scorer
// outputs. It is bounded by the sum of the weight magnitudes and is
// deliberately NOT normalized further: weights keep their sign and their
// relative scale, so a negative weight turns a scorer into a penalty.
package score
