package repository

import "strings"

// likeEscape is the ESCAPE character used in name searches.  It is not
// a backslash because MySQL and SQLite disagree on backslash literals.
const likeEscape = "!"

// containsPattern builds a LIKE pattern matching any value that
// contains term, case-folded to lower case.  Wildcards in term are
// matched literally.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
