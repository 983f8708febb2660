package parse

import (
	"strings"

	"github.com/kitecli/kite/pkg/help"
	"github.com/kitecli/kite/pkg/lex"
	"github.com/kitecli/kite/pkg/schema"
)

// parseLevel runs the matcher and validator for one schema level. At most
// one subcommand switch happens per parse; the remaining tokens are handed
// to the subcommand's own level.
func (e *Engine) parseLevel(lv *level, argv []string) (*Result, error) {
	if res := e.interceptHelpVersion(lv, argv); res != nil {
		return res, nil
	}

	m := newMatches(lv.cmd.Name)
	var free []string

	sc := lex.NewScanner(argv)
walk:
	for {
		tok, ok := sc.Next()
		if !ok {
			break
		}
		switch tok.Kind {
		case lex.LongFlag:
			arg := lv.byLong[tok.Name]
			if arg == nil {
				if res := lv.helpVersionResult(tok.Name); res != nil {
					return res, nil
				}
				return nil, &Error{
					Code:       ErrCodeUnknownArgument,
					Arg:        tok.Text,
					Suggestion: nearestName(tok.Name, lv.longNames),
				}
			}
			if err := bindOption(m, arg, tok.Inline, tok.HasInline, sc); err != nil {
				return nil, err
			}
		case lex.ShortGroup:
			if res := lv.helpVersionShortResult(tok.Name); res != nil {
				return res, nil
			}
			for _, r := range tok.Name {
				arg := lv.byShort[r]
				if arg == nil {
					return nil, &Error{Code: ErrCodeUnknownArgument, Arg: "-" + string(r)}
				}
				if err := bindOption(m, arg, "", false, sc); err != nil {
					return nil, err
				}
			}
		case lex.Value:
			if sub, ok := lv.subs[tok.Text]; ok && m.sub == nil && !tok.Terminated {
				subRes, err := e.parseLevel(sub, sc.Remaining())
				if err != nil {
					return nil, err
				}
				if subRes.Kind != Matched {
					return subRes, nil
				}
				m.setSubcommand(sub.cmd.Name, subRes.Matches)
				break walk
			}
			free = append(free, tok.Text)
		}
	}

	if err := bindPositionals(lv, m, free); err != nil {
		return nil, err
	}
	if err := e.validate(lv, m); err != nil {
		return nil, err
	}
	return &Result{Kind: Matched, Matches: m}, nil
}

// interceptHelpVersion pre-scans the active level's tokens for --help/-h
// and --version/-V, stopping at the first token that would switch to a
// subcommand: everything after it belongs to that level. Help and version
// win over any other parse or validation failure. A token the pre-scan
// mistakes for a subcommand boundary may really be an option's value; the
// matcher walk backstops that case when the help flag later fails lookup.
func (e *Engine) interceptHelpVersion(lv *level, argv []string) *Result {
	sc := lex.NewScanner(argv)
	for {
		tok, ok := sc.Next()
		if !ok {
			return nil
		}
		switch tok.Kind {
		case lex.Value:
			if _, isSub := lv.subs[tok.Text]; isSub && !tok.Terminated {
				return nil
			}
		case lex.LongFlag:
			if res := lv.helpVersionResult(tok.Name); res != nil {
				return res
			}
		case lex.ShortGroup:
			if res := lv.helpVersionShortResult(tok.Name); res != nil {
				return res
			}
		}
	}
}

// helpVersionResult returns the short-circuit outcome when a long flag
// name invokes the automatic help or version flags. Version only fires
// when the schema carries a version string.
func (lv *level) helpVersionResult(name string) *Result {
	switch name {
	case "help":
		return &Result{Kind: HelpRequested, Help: help.Render(lv.cmd)}
	case "version":
		if lv.cmd.Version != "" {
			return &Result{Kind: VersionRequested, Version: lv.versionLine()}
		}
	}
	return nil
}

// helpVersionShortResult is the short-flag counterpart, matching the
// exact groups "h" and "V".
func (lv *level) helpVersionShortResult(group string) *Result {
	switch group {
	case "h":
		return &Result{Kind: HelpRequested, Help: help.Render(lv.cmd)}
	case "V":
		if lv.cmd.Version != "" {
			return &Result{Kind: VersionRequested, Version: lv.versionLine()}
		}
	}
	return nil
}

// bindOption records one occurrence of a named (non-positional) argument.
// Options take their value from the inline =value, or greedily from the
// next Value token.
func bindOption(m *Matches, arg *schema.Arg, inline string, hasInline bool, sc *lex.Scanner) error {
	switch arg.Arity {
	case schema.Flag:
		m.insertFlag(arg.Name)
	case schema.Single, schema.Multiple:
		value := inline
		if !hasInline {
			next, ok := sc.Peek()
			if !ok || next.Kind != lex.Value {
				return &Error{Code: ErrCodeMissingValue, Arg: arg.Name}
			}
			sc.Next()
			value = next.Text
		}
		bindValue(m, arg, value)
	}
	return nil
}

// bindValue stores a matched value, expanding the schema's delimiter at
// bind time so later checks see the split elements. Single arity overwrites
// (last wins); Multiple accumulates in encounter order; a delimiter always
// materializes a multi-value.
func bindValue(m *Matches, arg *schema.Arg, raw string) {
	pieces := []string{raw}
	if arg.Delimiter != 0 {
		pieces = splitTrim(raw, arg.Delimiter)
	}
	switch {
	case arg.Arity == schema.Multiple || arg.Arity == schema.Variadic:
		m.appendMulti(arg.Name, pieces...)
	case arg.Delimiter != 0:
		m.insertMulti(arg.Name, pieces)
	default:
		m.insertSingle(arg.Name, raw)
	}
}

// bindPositionals distributes free values over the positional slots in
// index order, then the variadic, then the surplus list. A surplus is only
// an error when the schema has no positional slot at all.
func bindPositionals(lv *level, m *Matches, free []string) error {
	filled := 0
	for _, p := range lv.positionals {
		if filled >= len(free) {
			break
		}
		bindValue(m, p, free[filled])
		filled++
	}
	rest := free[filled:]
	if len(rest) == 0 {
		return nil
	}
	if lv.variadic != nil {
		m.insertMulti(lv.variadic.Name, rest)
		return nil
	}
	if len(lv.positionals) == 0 {
		return &Error{
			Code:       ErrCodeUnexpectedArgument,
			Arg:        rest[0],
			Suggestion: nearestName(rest[0], lv.subNames),
		}
	}
	m.rest = rest
	return nil
}

func splitTrim(raw string, delim rune) []string {
	parts := strings.Split(raw, string(delim))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
