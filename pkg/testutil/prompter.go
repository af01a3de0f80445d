package testutil

import "github.com/arthur-debert/neostow/pkg/types"

// ScriptedPrompter answers confirmations from a fixed list of answers.
// Once the script runs out every further question is declined.
type ScriptedPrompter struct {
	Answers   []bool
	Questions []string
}

// NewScriptedPrompter creates a prompter that will give answers in order
func NewScriptedPrompter(answers ...bool) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

func (p *ScriptedPrompter) Confirm(question string) bool {
	p.Questions = append(p.Questions, question)
	if len(p.Answers) == 0 {
		return false
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer
}

var _ types.Prompter = (*ScriptedPrompter)(nil)

// StaticComparator returns the same comparison for every pair and records
// the calls it receives.
type StaticComparator struct {
	Result types.Comparison
	Err    error
	Calls  []ComparatorCall
}

// ComparatorCall records the arguments of one Compare call
type ComparatorCall struct {
	A, B      string
	Recursive bool
}

func (c *StaticComparator) Compare(a, b string, recursive bool) (types.Comparison, error) {
	c.Calls = append(c.Calls, ComparatorCall{A: a, B: b, Recursive: recursive})
	return c.Result, c.Err
}

var _ types.Comparator = (*StaticComparator)(nil)
