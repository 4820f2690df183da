package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainRun      = "gambit/run/v1"
	DomainSolution = "gambit/solution/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
// The null separator removes domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RunFingerprint computes the content-addressed identity of a search
// instance: board width, preset cells and the scorer lineup.
//
// Scorers are passed as normalized directive strings so that weight
// formatting cannot drift between writers. Two runs with the same
// fingerprint searched the same instance the same way; the history
// store uses this for idempotent persistence.
func RunFingerprint(width int, presets []int, scorers []string) (string, error) {
	obj := map[string]any{
		"width":   width,
		"presets": presets,
		"scorers": scorers,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("run fingerprint: %w", err)
	}
	return hashWithDomain(DomainRun, canonical), nil
}

// SolutionHash computes the content-addressed identity of a solution's
// canonical column sequence, independent of the run that found it.
func SolutionHash(cols []int) (string, error) {
	canonical, err := MarshalCanonical(cols)
	if err != nil {
		return "", fmt.Errorf("solution hash: %w", err)
	}
	return hashWithDomain(DomainSolution, canonical), nil
}
