package seed

import (
	"bufio"
	"strconv"
	"strings"
)

// SplitStatements splits an SQL script into individual statements on ';'.
// Semicolons inside quoted strings, quoted identifiers and comments do not
// terminate a statement. Comments are dropped and empty statements skipped.
func SplitStatements(script string) []string {
	var (
		stmts []string
		cur   strings.Builder
		quote rune // active quote character, 0 when outside quotes
	)

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			stmts = append(stmts, s)
		}
		cur.Reset()
	}

	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}

		switch {
		case r == '\'' || r == '"' || r == '`':
			quote = r
			cur.WriteRune(r)

		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			cur.WriteRune('\n')

		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			cur.WriteRune('\n')

		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			i += 2
			for i < len(runes) && !(runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
			cur.WriteRune(' ')

		case r == ';':
			flush()

		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return stmts
}

const versionPrefix = "-- version:"

// parseVersion reads the "-- version: N" header from the first line of a
// dataset file. ok is false when the header is missing or malformed.
func parseVersion(script string) (version int, ok bool) {
	sc := bufio.NewScanner(strings.NewReader(script))
	if !sc.Scan() {
		return 0, false
	}
	line := strings.TrimSpace(sc.Text())
	if !strings.HasPrefix(strings.ToLower(line), versionPrefix) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(line[len(versionPrefix):]))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
