package parse

import (
	"slices"

	"github.com/kitecli/kite/pkg/schema"
)

// validate applies the cross-argument rules for one level, in fixed order,
// failing on the first violation: environment fallback, defaults, required,
// possible values, custom validators, conflicts, dependencies, groups.
// Delimiter expansion already happened when each value was bound.
func (e *Engine) validate(lv *level, m *Matches) error {
	args := lv.cmd.Args

	for _, a := range args {
		if a.Env == "" || m.Present(a.Name) {
			continue
		}
		value, ok := e.config.LookupEnv(a.Env)
		if !ok {
			continue
		}
		if a.Arity == schema.Flag {
			m.insertFlag(a.Name)
		} else {
			bindValue(m, a, value)
		}
	}

	for _, a := range args {
		if !a.HasDefault || m.Present(a.Name) {
			continue
		}
		bindValue(m, a, a.Default)
	}

	for _, a := range args {
		if a.Required && !m.Present(a.Name) {
			return &Error{Code: ErrCodeMissingRequired, Arg: a.Name}
		}
	}

	for _, a := range args {
		if len(a.Possible) == 0 || !m.Present(a.Name) {
			continue
		}
		for _, v := range presentValues(m, a) {
			if !slices.Contains(a.Possible, v) {
				return &Error{Code: ErrCodeInvalidValue, Arg: a.Name, Value: v, Allowed: a.Possible}
			}
		}
	}

	for _, a := range args {
		if a.Validator == nil || !m.Present(a.Name) {
			continue
		}
		for _, v := range presentValues(m, a) {
			if err := a.Validator(v); err != nil {
				return &Error{Code: ErrCodeValidationFailed, Arg: a.Name, Message: err.Error()}
			}
		}
	}

	for _, a := range args {
		if !m.Present(a.Name) {
			continue
		}
		for _, other := range a.Conflicts {
			if m.Present(other) {
				return &Error{Code: ErrCodeConflict, Arg: a.Name, Other: other}
			}
		}
	}

	for _, a := range args {
		if !m.Present(a.Name) {
			continue
		}
		for _, other := range a.Requires {
			if !m.Present(other) {
				return &Error{Code: ErrCodeMissingDependency, Arg: a.Name, Other: other}
			}
		}
	}

	for _, g := range lv.cmd.Groups {
		var present []string
		for _, name := range g.Args {
			if m.Present(name) {
				present = append(present, name)
			}
		}
		if len(present) > 1 {
			return &Error{Code: ErrCodeGroupConflict, Group: g.Name, Arg: present[0], Other: present[1]}
		}
		if g.Required && len(present) == 0 {
			return &Error{Code: ErrCodeMissingRequired, Arg: g.Name, Group: g.Name, Allowed: slices.Clone(g.Args)}
		}
	}

	return nil
}

// presentValues returns the value atoms of a present argument: none for a
// flag, one for a single, all elements for a multi.
func presentValues(m *Matches, a *schema.Arg) []string {
	v, ok := m.Get(a.Name)
	if !ok {
		return nil
	}
	if s, ok := v.Str(); ok {
		return []string{s}
	}
	if list, ok := v.List(); ok {
		return list
	}
	return nil
}
