package paths

import (
	"os"
	"sort"
	"strings"
)

// EnvHome is the variable a leading ~ expands to
const EnvHome = "HOME"

// Expander substitutes environment variables into destination templates
type Expander struct {
	// Environ returns the environment as KEY=VALUE pairs
	Environ func() []string
}

// NewExpander creates an Expander reading the process environment
func NewExpander() *Expander {
	return &Expander{Environ: os.Environ}
}

// Expand expands raw against the process environment
func Expand(raw string) string {
	return NewExpander().Expand(raw)
}

// Expand replaces every $NAME of a defined variable with its value and a
// leading ~ with $HOME. Substituted text is never expanded again. When
// several variable names match at the same $, the longest one wins, so
// $HOMEDIR is not read as $HOME followed by "DIR".
func (e *Expander) Expand(raw string) string {
	vars := e.vars()
	result := substitute(raw, vars)

	if strings.HasPrefix(result, "~") {
		if home, ok := vars[EnvHome]; ok {
			result = home + result[1:]
		}
	}

	return result
}

func (e *Expander) vars() map[string]string {
	environ := os.Environ
	if e.Environ != nil {
		environ = e.Environ
	}

	vars := make(map[string]string)
	for _, kv := range environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}

// substitute performs a single left-to-right pass over raw
func substitute(raw string, vars map[string]string) string {
	if !strings.Contains(raw, "$") || len(vars) == 0 {
		return raw
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		if raw[i] != '$' {
			b.WriteByte(raw[i])
			i++
			continue
		}

		rest := raw[i+1:]
		matched := false
		for _, name := range names {
			if strings.HasPrefix(rest, name) {
				b.WriteString(vars[name])
				i += 1 + len(name)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte('$')
			i++
		}
	}

	return b.String()
}
