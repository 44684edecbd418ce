package intent

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Class is the risky operation class an intent pattern recognizes.
type Class string

const (
	// History covers requests that need a scan of historical blocks with
	// full transaction bodies ("last transaction on X").
	History Class = "history"
	// Unbounded covers requests with no natural limit ("list all logs").
	Unbounded Class = "unbounded"
)

// Pattern is one named regular expression in its raw form.
type Pattern struct {
	Name string `yaml:"name"`
	Expr string `yaml:"pattern"`
}

// Patterns holds raw pattern lists by class, each in evaluation order.
type Patterns struct {
	History   []Pattern `yaml:"history"`
	Unbounded []Pattern `yaml:"unbounded"`
}

// Match describes the pattern that recognized a query.
type Match struct {
	Name    string `json:"name"`
	Class   Class  `json:"class"`
	Pattern string `json:"pattern"`
}

type compiled struct {
	name  string
	class Class
	expr  string
	re    *regexp.Regexp
}

// Set is an ordered, compiled and immutable collection of intent patterns.
// History patterns are always evaluated before unbounded patterns; within a
// class, patterns run in the order they were declared.
type Set struct {
	history   []compiled
	unbounded []compiled
	raw       Patterns
}

// New compiles patterns into a Set. Matching is case-insensitive.
// A pattern that fails to compile is an error: dropping it would silently
// weaken the gate.
func New(p Patterns) (*Set, error) {
	s := &Set{raw: clonePatterns(p)}

	var err error
	if s.history, err = compileAll(History, p.History); err != nil {
		return nil, err
	}
	if s.unbounded, err = compileAll(Unbounded, p.Unbounded); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDefault returns the built-in pattern set.
func NewDefault() *Set {
	s, err := New(DefaultPatterns)
	if err != nil {
		panic(fmt.Sprintf("intent: default patterns do not compile: %v", err))
	}
	return s
}

// DefaultPath returns ~/.rpcwatch/intents.yaml, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rpcwatch", "intents.yaml")
}

// Load reads a pattern set from a YAML file. An empty path falls back to
// ~/.rpcwatch/intents.yaml; a missing file yields the default set.
func Load(path string) (*Set, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return NewDefault(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("failed to read intent patterns: %w", err)
	}

	var p Patterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse intent patterns: %w", err)
	}
	if len(p.History) == 0 && len(p.Unbounded) == 0 {
		return nil, fmt.Errorf("intent patterns file %s defines no patterns", path)
	}

	return New(p)
}

// Match returns the first pattern matching text. History patterns win over
// unbounded ones.
func (s *Set) Match(text string) (Match, bool) {
	for _, group := range [][]compiled{s.history, s.unbounded} {
		for _, c := range group {
			if c.re.MatchString(text) {
				return Match{Name: c.name, Class: c.class, Pattern: c.expr}, true
			}
		}
	}
	return Match{}, false
}

// Patterns returns a copy of the raw patterns the set was built from.
func (s *Set) Patterns() Patterns {
	return clonePatterns(s.raw)
}

// Len returns the total number of patterns.
func (s *Set) Len() int {
	return len(s.history) + len(s.unbounded)
}

func compileAll(class Class, patterns []Pattern) ([]compiled, error) {
	out := make([]compiled, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("(?i)" + p.Expr)
		if err != nil {
			return nil, fmt.Errorf("intent: %s pattern %d (%s): %w", class, i, p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", class, i)
		}
		out = append(out, compiled{name: name, class: class, expr: p.Expr, re: re})
	}
	return out, nil
}

func clonePatterns(p Patterns) Patterns {
	return Patterns{
		History:   append([]Pattern(nil), p.History...),
		Unbounded: append([]Pattern(nil), p.Unbounded...),
	}
}
