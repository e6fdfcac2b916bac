package text

import "strings"

// Pages is one or more chat messages that together form a single reply.
// Formatting helpers that may paginate always return Pages, so callers never
// need to tell a single message from a split one.
type Pages []string

// Single wraps one message.
func Single(msg string) Pages {
	return Pages{msg}
}

// Map applies fn to every page and returns the transformed copy.
func (p Pages) Map(fn func(string) string) Pages {
	out := make(Pages, len(p))
	for i, page := range p {
		out[i] = fn(page)
	}
	return out
}

// String joins the pages with newlines, mostly useful in logs and tests.
func (p Pages) String() string {
	return strings.Join(p, "\n")
}
