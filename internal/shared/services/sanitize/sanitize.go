// Package sanitize strips markup from vendor-supplied free text before it is
// stored or echoed back in API responses.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Sanitizer interface {
	// Plain strips all HTML from the input and trims surrounding whitespace.
	Plain(input string) string
}

type sanitizerImpl struct {
	policy *bluemonday.Policy
}

// New returns a sanitizer backed by bluemonday's strict policy.
func New() Sanitizer {
	return &sanitizerImpl{
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *sanitizerImpl) Plain(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}
