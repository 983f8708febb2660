// Package parse matches a token stream against a command schema, validates
// the result, and produces the queryable Matches model. The engine is a
// pure function boundary: its only input beyond the argument vector is an
// injectable environment lookup, and it never prints or exits.
package parse

import (
	"fmt"
	"os"

	"github.com/kitecli/kite/pkg/schema"
)

// Config holds configuration for the parse Engine.
type Config struct {
	// LookupEnv resolves environment fallbacks. Defaults to os.LookupEnv;
	// tests supply a fake mapping instead of mutating process state.
	LookupEnv func(key string) (string, bool)
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{LookupEnv: os.LookupEnv}
}

// ResultKind tags the outcome of a parse.
type ResultKind int

const (
	// Matched means the parse succeeded and Matches is populated.
	Matched ResultKind = iota
	// HelpRequested means --help/-h short-circuited the parse; Help holds
	// the rendered text. Not an error: the caller decides to print.
	HelpRequested
	// VersionRequested means --version/-V short-circuited the parse;
	// Version holds the "name version" line.
	VersionRequested
)

// Result is the outcome of Engine.Parse.
type Result struct {
	Kind    ResultKind
	Matches *Matches
	Help    string
	Version string
}

// level is the compiled, immutable form of one schema node.
type level struct {
	cmd         *schema.Command
	byLong      map[string]*schema.Arg
	byShort     map[rune]*schema.Arg
	positionals []*schema.Arg
	variadic    *schema.Arg
	subs        map[string]*level
	subNames    []string
	longNames   []string
}

// Engine parses argument vectors against one compiled schema. Compiling
// snapshots the schema's lookup tables, so an Engine is safe for repeated
// and concurrent use as long as the schema is not mutated afterwards.
type Engine struct {
	config *Config
	root   *level
}

// New compiles the schema and checks its build invariants: at most one
// level of subcommand nesting, unique argument names and aliases, unique
// and contiguous positional indices, and at most one variadic positional.
// If config is nil, default configuration is used.
func New(cmd *schema.Command, config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.LookupEnv == nil {
		config.LookupEnv = os.LookupEnv
	}
	root, err := compile(cmd, 0)
	if err != nil {
		return nil, err
	}
	return &Engine{config: config, root: root}, nil
}

// Parse runs one pass over argv (program name excluded) and returns either
// a Matched result, a help/version short-circuit, or a single *Error.
func (e *Engine) Parse(argv []string) (*Result, error) {
	return e.parseLevel(e.root, argv)
}

const maxDepth = 1

func compile(cmd *schema.Command, depth int) (*level, error) {
	if cmd.Name == "" {
		return nil, schemaError("command name must not be empty")
	}
	lv := &level{
		cmd:     cmd,
		byLong:  make(map[string]*schema.Arg),
		byShort: make(map[rune]*schema.Arg),
		subs:    make(map[string]*level),
	}

	seen := make(map[string]*schema.Arg)
	indexSeen := make(map[int]*schema.Arg)
	for _, a := range cmd.Args {
		if a.Name == "" {
			return nil, schemaError("command '%s' has an argument with an empty name", cmd.Name)
		}
		if seen[a.Name] != nil {
			return nil, schemaError("command '%s' defines argument '%s' twice", cmd.Name, a.Name)
		}
		seen[a.Name] = a
		if a.Arity == schema.Flag && a.HasDefault {
			return nil, schemaError("flag argument '%s' cannot carry a default value", a.Name)
		}

		if a.IsPositional() {
			if a.Long != "" || a.Short != 0 {
				return nil, schemaError("positional argument '%s' must not carry flag aliases", a.Name)
			}
			switch a.Arity {
			case schema.Positional:
				if other := indexSeen[a.Index]; other != nil {
					return nil, schemaError("positional arguments '%s' and '%s' share index %d", other.Name, a.Name, a.Index)
				}
				indexSeen[a.Index] = a
				lv.positionals = append(lv.positionals, a)
			case schema.Variadic:
				if lv.variadic != nil {
					return nil, schemaError("command '%s' defines more than one variadic positional", cmd.Name)
				}
				lv.variadic = a
			}
			continue
		}
		if a.Long != "" {
			if lv.byLong[a.Long] != nil {
				return nil, schemaError("command '%s' defines --%s twice", cmd.Name, a.Long)
			}
			lv.byLong[a.Long] = a
			lv.longNames = append(lv.longNames, a.Long)
		}
		if a.Short != 0 {
			if lv.byShort[a.Short] != nil {
				return nil, schemaError("command '%s' defines -%c twice", cmd.Name, a.Short)
			}
			lv.byShort[a.Short] = a
		}
	}

	// Indices must be contiguous from 0 so every slot is fillable.
	for i := range lv.positionals {
		if indexSeen[i] == nil {
			return nil, schemaError("command '%s' has no positional at index %d", cmd.Name, i)
		}
	}
	ordered := make([]*schema.Arg, len(lv.positionals))
	for i := range ordered {
		ordered[i] = indexSeen[i]
	}
	lv.positionals = ordered

	for _, a := range cmd.Args {
		for _, name := range append(append([]string{}, a.Requires...), a.Conflicts...) {
			if seen[name] == nil {
				return nil, schemaError("argument '%s' references unknown argument '%s'", a.Name, name)
			}
		}
	}
	for _, g := range cmd.Groups {
		for _, name := range g.Args {
			if seen[name] == nil {
				return nil, schemaError("group '%s' references unknown argument '%s'", g.Name, name)
			}
		}
	}

	for _, sub := range cmd.Subcommands {
		if depth+1 > maxDepth {
			return nil, schemaError("subcommand '%s' nests deeper than one level under '%s'", sub.Name, cmd.Name)
		}
		compiled, err := compile(sub, depth+1)
		if err != nil {
			return nil, err
		}
		for _, invocation := range append([]string{sub.Name}, sub.Aliases...) {
			if lv.subs[invocation] != nil {
				return nil, schemaError("command '%s' maps '%s' to more than one subcommand", cmd.Name, invocation)
			}
			lv.subs[invocation] = compiled
		}
		lv.subNames = append(lv.subNames, sub.Name)
	}

	return lv, nil
}

func (lv *level) versionLine() string {
	return fmt.Sprintf("%s %s", lv.cmd.Name, lv.cmd.Version)
}
