// Package sqlutil provides SQL utility functions for discbot.
package sqlutil

import (
	"regexp"
	"strings"
)

// LikeEscape is the escape character used by every LIKE pattern built here.
// '!' behaves the same in MySQL and SQLite, unlike the backslash.
const LikeEscape = "!"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike escapes LIKE wildcards so s only ever matches literally.
// Example: "50%_off" -> "50!%!_off"
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a LIKE pattern that matches any value containing s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(strings.ToLower(s)) + "%"
}

// ContainsAll builds a WHERE fragment requiring column to contain every token,
// case-insensitively, together with its bind arguments. Empty tokens are skipped.
// An empty fragment is returned when no usable token remains.
//
// Example: ContainsAll("disc_name", []string{"heal", "disc"}) ->
//
//	LOWER(disc_name) LIKE ? ESCAPE '!' AND LOWER(disc_name) LIKE ? ESCAPE '!'
func ContainsAll(column string, tokens []string) (string, []interface{}) {
	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		clauses = append(clauses, "LOWER("+column+") LIKE ? ESCAPE '"+LikeEscape+"'")
		args = append(args, ContainsPattern(token))
	}
	return strings.Join(clauses, " AND "), args
}

// validIdentifierRegex matches names safe to embed in file paths and lock names.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks that a name only contains alphanumeric characters and underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// ValidateIdentifier returns an InvalidIdentifierError for names IsValidIdentifier rejects.
func ValidateIdentifier(name string) error {
	if !IsValidIdentifier(name) {
		return &InvalidIdentifierError{Name: name}
	}
	return nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
