// Package analysis scores a resume against a job description by extracting
// known skills from both texts and weighting the job description's
// requirements by how strongly each one is worded.
package analysis

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// boundary is any character that may sit next to a phrase: the text edge
// aside, anything but a letter, digit or '_'.
const boundary = `[^\p{L}\p{N}_]`

// letterBoundary closes single-letter phrases. A trailing '+' or '#' would
// make a different language, so "c" never matches inside "c++" or "c#".
const letterBoundary = `[^\p{L}\p{N}_+#]`

// Pattern matches a whole word or phrase, ignoring case.
type Pattern struct {
	re *regexp.Regexp
}

// Phrase compiles a boundary-anchored pattern for phrase. Whitespace inside
// the phrase matches any run of whitespace in the text.
func Phrase(phrase string) Pattern {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}

	trailing := boundary
	if len(words) == 1 && utf8.RuneCountInString(words[0]) == 1 {
		trailing = letterBoundary
	}
	expr := `(?i)(?:^|` + boundary + `)` + strings.Join(words, `\s+`) + `(?:$|` + trailing + `)`

	return Pattern{re: regexp.MustCompile(expr)}
}

// Match reports whether the phrase occurs in text as a whole word.
func (p Pattern) Match(text string) bool {
	return p.re.MatchString(text)
}

// SkillEntry ties a canonical skill name to the phrases that signal it.
type SkillEntry struct {
	Skill    string
	Patterns []Pattern
}

// Match reports whether any of the entry's patterns occurs in text.
func (e SkillEntry) Match(text string) bool {
	return matchAny(e.Patterns, text)
}

func skill(name string, alternatives ...string) SkillEntry {
	return SkillEntry{Skill: name, Patterns: phrases(alternatives...)}
}

func matchAny(patterns []Pattern, text string) bool {
	for _, p := range patterns {
		if p.Match(text) {
			return true
		}
	}
	return false
}

var dictionary = []SkillEntry{
	skill("JavaScript", "javascript", "js"),
	skill("TypeScript", "typescript", "ts"),
	skill("React", "react", "reactjs"),
	skill("Node.js", "node", "node.js", "nodejs"),
	skill("Express.js", "express", "express.js"),
	skill("Java", "java"),
	skill("Python", "python"),
	skill("C", "c"),
	skill("C++", "c++"),
	skill("SQL", "sql", "mysql", "postgresql", "postgres"),
	skill("MongoDB", "mongodb", "mongo"),
	skill("REST API", "rest", "api"),
	skill("HTML", "html"),
	skill("CSS", "css"),
	skill("Git", "git", "github"),
	skill("Docker", "docker"),
	skill("AWS", "aws", "amazon web services"),
	skill("DSA", "data structures", "algorithms", "dsa"),
	skill("Problem Solving", "problem solving"),
}

// Dictionary returns a copy of the skill table in declaration order.
func Dictionary() []SkillEntry {
	return slices.Clone(dictionary)
}
