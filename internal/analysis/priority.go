package analysis

import "fmt"

// Priority is how strongly a job description asks for a skill.
type Priority int

const (
	Optional Priority = iota + 1
	Standard
	MustHave
)

var priorityWeights = map[Priority]int{
	Optional: 1,
	Standard: 2,
	MustHave: 3,
}

var priorityNames = map[Priority]string{
	Optional: "optional",
	Standard: "standard",
	MustHave: "mustHave",
}

// Weight is the score weight of a requirement at this priority.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

// Outweighs reports whether p ranks strictly above other.
func (p Priority) Outweighs(other Priority) bool {
	return p.Weight() > other.Weight()
}

// String returns the priority name used in JSON output.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// MarshalText encodes p as its name, failing for unknown priorities.
func (p Priority) MarshalText() ([]byte, error) {
	name, ok := priorityNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown priority %d", int(p))
	}
	return []byte(name), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (p *Priority) UnmarshalText(text []byte) error {
	for prio, name := range priorityNames {
		if name == string(text) {
			*p = prio
			return nil
		}
	}
	return fmt.Errorf("unknown priority %q", text)
}

var (
	mustHaveCues = phrases("must", "required", "mandatory", "minimum", "need to", "should have")
	optionalCues = phrases("preferred", "nice to have", "good to have", "plus", "bonus")
)

func phrases(list ...string) []Pattern {
	patterns := make([]Pattern, len(list))
	for i, p := range list {
		patterns[i] = Phrase(p)
	}
	return patterns
}

// ClassifyPriority returns the tier signalled by a sentence. Must-have cues
// win over optional cues; a sentence without cues is Standard.
func ClassifyPriority(sentence string) Priority {
	if matchAny(mustHaveCues, sentence) {
		return MustHave
	}
	if matchAny(optionalCues, sentence) {
		return Optional
	}
	return Standard
}
