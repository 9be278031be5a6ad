package transcript

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfidenceThreshold is the minimum confidence a word needs to
// be retained by the Segmenter.
const DefaultConfidenceThreshold = 0.8

// Predicate classifies a piece of utterance text.
type Predicate func(text string) bool

// Policy bundles the swappable linguistic heuristics used by the
// Segmenter and the Refiner. The zero value is not useful; start from
// DefaultPolicy or LoadPolicy.
type Policy struct {
	ConfidenceThreshold  float64  `yaml:"confidence_threshold"`
	ContinuationPrefixes []string `yaml:"continuation_prefixes"`
}

// DefaultPolicy returns the stock heuristics: 0.8 confidence cutoff and
// the coordinating words "and", "but", "or", "so" as continuation
// markers.
func DefaultPolicy() Policy {
	return Policy{
		ConfidenceThreshold:  DefaultConfidenceThreshold,
		ContinuationPrefixes: []string{"and", "but", "or", "so"},
	}
}

// LoadPolicy reads a policy YAML file. Fields absent from the file keep
// their defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open policy: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(&p); err != nil {
		return DefaultPolicy(), fmt.Errorf("decode policy %s: %w", path, err)
	}
	if p.ConfidenceThreshold == 0 {
		p.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if len(p.ContinuationPrefixes) == 0 {
		p.ContinuationPrefixes = DefaultPolicy().ContinuationPrefixes
	}
	return p, nil
}

// IsQuestion reports whether the text ends in a question mark.
func (p Policy) IsQuestion(text string) bool {
	return strings.HasSuffix(text, "?")
}

// IsContinuation reports whether the text opens with a continuation
// marker. The match is a raw, case-sensitive string prefix, so "sorry"
// matches the "so" marker; callers that want word-boundary matching can
// supply their own Predicate to the Refiner.
func (p Policy) IsContinuation(text string) bool {
	for _, prefix := range p.ContinuationPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
