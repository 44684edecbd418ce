package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

const actualInvalid = "invalid"

// Run evaluates all cases in a scenario against the engine.
// Cases are independent; the engine is never modified.
func Run(s *Scenario, engine *safety.Engine) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	base := engine.Config()
	var baseErr error
	if s.Config != nil {
		base, baseErr = base.Override(*s.Config)
	}

	for i, c := range s.Cases {
		cr := CaseResult{
			Index:    i + 1,
			Expected: strings.ToLower(strings.TrimSpace(c.Expect)),
		}

		var verdict model.Verdict
		switch {
		case baseErr != nil:
			cr.Kind = "config"
			cr.Actual = actualInvalid
			cr.Reason = baseErr.Error()
		case c.Call != nil && c.Query != "":
			cr.Kind = "case"
			cr.Actual = actualInvalid
			cr.Reason = "case sets both call and query"
		case c.Call != nil:
			cr.Kind = "call"
			cr.Subject = c.Call.Method
			cfg, err := base.Override(c.Override)
			if err != nil {
				cr.Actual = actualInvalid
				cr.Reason = err.Error()
				break
			}
			verdict = engine.ValidateCallWith(cfg, c.Call.Blockchain, c.Call.Method, c.Call.Params)
			cr.Actual = string(verdict.Decision())
			cr.Reason = verdict.Reason
		case c.Query != "":
			cr.Kind = "query"
			cr.Subject = c.Query
			verdict = engine.ValidateQuery(c.Query)
			cr.Actual = string(verdict.Decision())
			cr.Reason = verdict.Reason
		default:
			cr.Kind = "case"
			cr.Actual = actualInvalid
			cr.Reason = "case sets neither call nor query"
		}

		cr.Passed = cr.Actual == cr.Expected
		if cr.Passed && c.ExpectReason != "" {
			cr.Passed = strings.Contains(strings.ToLower(cr.Reason), strings.ToLower(c.ExpectReason))
		}

		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}

	return result
}

// Load reads a scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// LoadAndRun loads a scenario YAML file and runs it against the engine.
func LoadAndRun(path string, engine *safety.Engine) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	result := Run(s, engine)
	result.File = path

	return result, nil
}
