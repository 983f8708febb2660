// Package kite is a declarative command-line argument parsing engine.
// Callers describe their commands, flags, options, and positionals with the
// schema builders, then parse an argument vector into an immutable,
// queryable match set. The engine performs no I/O beyond an injectable
// environment lookup and never prints or exits; help text, version lines,
// and errors are returned as values for the caller to render.
package kite

import (
	"github.com/kitecli/kite/pkg/parse"
	"github.com/kitecli/kite/pkg/schema"
)

// App wraps a root command schema with a parse configuration. The zero
// configuration reads the real process environment.
type App struct {
	cmd    *schema.Command
	config *parse.Config
	engine *parse.Engine
}

// New creates an App over the given root command.
func New(cmd *schema.Command) *App {
	return &App{cmd: cmd}
}

// WithConfig overrides the parse configuration, e.g. to inject a fake
// environment lookup in tests.
func (a *App) WithConfig(config *parse.Config) *App {
	a.config = config
	a.engine = nil
	return a
}

// Parse compiles the schema on first use and parses argv (program name
// excluded). Schema invariant violations and parse failures are both
// returned as *parse.Error; help and version requests come back as
// non-error results tagged with their kind.
func (a *App) Parse(argv []string) (*parse.Result, error) {
	if a.engine == nil {
		engine, err := parse.New(a.cmd, a.config)
		if err != nil {
			return nil, err
		}
		a.engine = engine
	}
	return a.engine.Parse(argv)
}
