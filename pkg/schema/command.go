package schema

// Command is a named schema node: a root command or a subcommand. It owns
// its arguments, groups, and (for a root command) one level of subcommands.
// Insertion order of arguments and subcommands is preserved for help
// rendering.
type Command struct {
	Name        string
	Aliases     []string
	About       string
	Version     string
	Args        []*Arg
	Subcommands []*Command
	Groups      []*Group
}

// NewCommand creates an empty command with the given invocation name.
func NewCommand(name string) *Command {
	return &Command{Name: name}
}

// WithAbout sets the one-line description shown in help output.
func (c *Command) WithAbout(about string) *Command {
	c.About = about
	return c
}

// WithVersion sets the version string reported by --version.
func (c *Command) WithVersion(version string) *Command {
	c.Version = version
	return c
}

// WithAliases adds alternate invocation names for the command.
func (c *Command) WithAliases(aliases ...string) *Command {
	c.Aliases = append(c.Aliases, aliases...)
	return c
}

// WithArg appends an argument to the command.
func (c *Command) WithArg(arg *Arg) *Command {
	c.Args = append(c.Args, arg)
	return c
}

// WithArgs appends several arguments in order.
func (c *Command) WithArgs(args ...*Arg) *Command {
	c.Args = append(c.Args, args...)
	return c
}

// WithSubcommand appends a subcommand. Nesting is limited to one level;
// the parser rejects deeper trees when it compiles the schema.
func (c *Command) WithSubcommand(sub *Command) *Command {
	c.Subcommands = append(c.Subcommands, sub)
	return c
}

// WithGroup appends an argument group.
func (c *Command) WithGroup(group *Group) *Command {
	c.Groups = append(c.Groups, group)
	return c
}

// Positionals returns the command's positional arguments ordered by index,
// with the variadic argument, if any, last.
func (c *Command) Positionals() []*Arg {
	var fixed []*Arg
	var variadic *Arg
	for _, a := range c.Args {
		switch a.Arity {
		case Positional:
			fixed = append(fixed, a)
		case Variadic:
			variadic = a
		}
	}
	slots := make([]*Arg, len(fixed))
	var overflow []*Arg
	for _, a := range fixed {
		if a.Index >= 0 && a.Index < len(fixed) && slots[a.Index] == nil {
			slots[a.Index] = a
		} else {
			// Out-of-range or duplicate index. The parser reports this
			// as a schema error; keep the arg visible for help output.
			overflow = append(overflow, a)
		}
	}
	var ordered []*Arg
	for _, a := range slots {
		if a != nil {
			ordered = append(ordered, a)
		}
	}
	ordered = append(ordered, overflow...)
	if variadic != nil {
		ordered = append(ordered, variadic)
	}
	return ordered
}

// Options returns the command's non-positional arguments in insertion order.
func (c *Command) Options() []*Arg {
	var opts []*Arg
	for _, a := range c.Args {
		if !a.IsPositional() {
			opts = append(opts, a)
		}
	}
	return opts
}

// Group is a named set of arguments that are mutually exclusive. A required
// group additionally demands that at least one member is present.
type Group struct {
	Name     string
	Args     []string
	Required bool
}

// NewGroup creates a group over the named arguments.
func NewGroup(name string, args ...string) *Group {
	return &Group{Name: name, Args: args}
}

// MarkRequired makes the group jointly required.
func (g *Group) MarkRequired() *Group {
	g.Required = true
	return g
}
