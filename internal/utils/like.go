package utils

import "strings"

// LikeEscapeChar is the ESCAPE character paired with ContainsPattern.
// '!' behaves the same on MySQL, PostgreSQL and SQLite, unlike backslash.
const LikeEscapeChar = "!"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern builds a lower-cased LIKE pattern matching s as a literal substring.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
