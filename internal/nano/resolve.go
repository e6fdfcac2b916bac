package nano

import (
	"regexp"
	"strconv"
	"strings"
)

// InputKind tells how the command argument identifies a disc.
type InputKind int

const (
	// ByName means the argument is free text to search for.
	ByName InputKind = iota
	// ByID means the argument contained an item reference.
	ByID
)

// ResolvedInput is the parsed command argument.
type ResolvedInput struct {
	Kind     InputKind
	ID       int    // low id from the item reference, ByID only
	LinkName string // text enclosed by the item reference, ByID only
	Raw      string // the argument as given
}

// ResolveInput parses the command argument. The first well-formed item
// reference anywhere in arg selects ByID; everything else is a name search.
func ResolveInput(arg string) ResolvedInput {
	if ref, ok := findItemRef(arg); ok {
		return ResolvedInput{Kind: ByID, ID: ref.lowID, LinkName: ref.name, Raw: arg}
	}
	return ResolvedInput{Kind: ByName, Raw: arg}
}

var discNamePattern = regexp.MustCompile(`(?i)instruction\s*dis[ck]`)

// LooksLikeDisc reports whether an item name reads like an instruction disc.
func LooksLikeDisc(name string) bool {
	return discNamePattern.MatchString(name)
}

type itemRef struct {
	lowID, highID, ql int
	name              string
}

// findItemRef scans s for <a href="itemref://low/high/ql">name</a>.
// Tag, attribute and scheme are matched case-insensitively and either quote
// style is accepted.
func findItemRef(s string) (itemRef, bool) {
	lower := asciiLower(s)
	for from := 0; from < len(lower); {
		i := strings.Index(lower[from:], "<a")
		if i < 0 {
			break
		}
		start := from + i
		if ref, ok := parseItemRefAt(s, lower, start+2); ok {
			return ref, true
		}
		from = start + 2
	}
	return itemRef{}, false
}

// parseItemRefAt parses the rest of an anchor tag starting right after "<a".
func parseItemRefAt(s, lower string, pos int) (itemRef, bool) {
	p := &refParser{s: s, lower: lower, pos: pos}

	if !p.spaces(1) || !p.literal("href") {
		return itemRef{}, false
	}
	p.spaces(0)
	if !p.literal("=") {
		return itemRef{}, false
	}
	p.spaces(0)
	if !p.quote() || !p.literal("itemref://") {
		return itemRef{}, false
	}

	var ref itemRef
	var ok bool
	if ref.lowID, ok = p.number(); !ok || !p.literal("/") {
		return itemRef{}, false
	}
	if ref.highID, ok = p.number(); !ok || !p.literal("/") {
		return itemRef{}, false
	}
	if ref.ql, ok = p.number(); !ok || !p.quote() {
		return itemRef{}, false
	}
	p.spaces(0)
	if !p.literal(">") {
		return itemRef{}, false
	}

	end := strings.Index(lower[p.pos:], "</a>")
	if end <= 0 {
		return itemRef{}, false
	}
	ref.name = s[p.pos : p.pos+end]
	return ref, true
}

type refParser struct {
	s, lower string
	pos      int
}

func (p *refParser) literal(want string) bool {
	if !strings.HasPrefix(p.lower[p.pos:], want) {
		return false
	}
	p.pos += len(want)
	return true
}

func (p *refParser) quote() bool {
	if p.pos < len(p.s) && (p.s[p.pos] == '"' || p.s[p.pos] == '\'') {
		p.pos++
		return true
	}
	return false
}

// spaces skips whitespace and reports whether at least atLeast bytes were skipped.
func (p *refParser) spaces(atLeast int) bool {
	start := p.pos
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' || p.s[p.pos] == '\r') {
		p.pos++
	}
	return p.pos-start >= atLeast
}

func (p *refParser) number() (int, bool) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

// asciiLower lowercases A-Z only so byte offsets match the original string.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
