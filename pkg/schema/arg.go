// Package schema defines the declarative command-line grammar: arguments,
// commands, and argument groups. A schema is assembled once with the fluent
// builders here, compiled by the parser into its immutable form, and must
// not be mutated after parsing begins.
package schema

// Arity is the cardinality contract of an argument.
type Arity int

const (
	// Single takes exactly one value; repeated occurrences overwrite
	// the previous value (last wins).
	Single Arity = iota
	// Flag is a boolean presence marker taking no value.
	Flag
	// Multiple collects zero or more values across repeated occurrences,
	// in encounter order.
	Multiple
	// Positional consumes one free-standing token at a fixed 0-based index.
	Positional
	// Variadic consumes all remaining free-standing tokens. At most one
	// per command.
	Variadic
)

// ValidatorFunc checks a single matched value. A non-nil error rejects the
// value; the error text is surfaced to the user.
type ValidatorFunc func(value string) error

// Arg describes one argument: a flag, an option taking values, or a
// positional. Fields are read by the parser and the help generator; callers
// normally populate them through the With* builders.
type Arg struct {
	Name       string
	Short      rune
	Long       string
	Help       string
	Arity      Arity
	Index      int
	Required   bool
	Default    string
	HasDefault bool
	Possible   []string
	Validator  ValidatorFunc
	Env        string
	Delimiter  rune
	Requires   []string
	Conflicts  []string
}

// NewArg creates an option argument with Single arity.
func NewArg(name string) *Arg {
	return &Arg{Name: name, Arity: Single}
}

// WithShort sets the single-character alias, e.g. 'v' for -v.
func (a *Arg) WithShort(r rune) *Arg {
	a.Short = r
	return a
}

// WithLong sets the long alias, e.g. "verbose" for --verbose.
func (a *Arg) WithLong(long string) *Arg {
	a.Long = long
	return a
}

// WithHelp sets the help text shown by the usage generator.
func (a *Arg) WithHelp(help string) *Arg {
	a.Help = help
	return a
}

// AsFlag makes this a boolean flag taking no value.
func (a *Arg) AsFlag() *Arg {
	a.Arity = Flag
	return a
}

// AsMultiple lets this option be repeated, accumulating values in order.
func (a *Arg) AsMultiple() *Arg {
	a.Arity = Multiple
	return a
}

// AsPositional makes this a positional argument bound at the given 0-based
// index. Indices within one command must be unique and contiguous from 0.
func (a *Arg) AsPositional(index int) *Arg {
	a.Arity = Positional
	a.Index = index
	return a
}

// AsVariadic makes this the trailing positional that captures all remaining
// free values.
func (a *Arg) AsVariadic() *Arg {
	a.Arity = Variadic
	return a
}

// MarkRequired requires the argument to resolve to a value (directly, via
// environment fallback, or via default).
func (a *Arg) MarkRequired() *Arg {
	a.Required = true
	return a
}

// WithDefault sets the value used when the argument is absent.
func (a *Arg) WithDefault(value string) *Arg {
	a.Default = value
	a.HasDefault = true
	return a
}

// WithPossible restricts values to the given set.
func (a *Arg) WithPossible(values ...string) *Arg {
	a.Possible = append(a.Possible, values...)
	return a
}

// WithValidator attaches a custom value validator.
func (a *Arg) WithValidator(fn ValidatorFunc) *Arg {
	a.Validator = fn
	return a
}

// WithEnv names an environment variable consulted when the argument is
// absent from the command line.
func (a *Arg) WithEnv(name string) *Arg {
	a.Env = name
	return a
}

// WithDelimiter splits a single matched value on the given rune, producing
// a multi-value result, e.g. ',' turns "red,green" into two values.
func (a *Arg) WithDelimiter(r rune) *Arg {
	a.Delimiter = r
	return a
}

// WithRequires names arguments that must also be present when this one is.
func (a *Arg) WithRequires(names ...string) *Arg {
	a.Requires = append(a.Requires, names...)
	return a
}

// WithConflicts names arguments that must not be present when this one is.
func (a *Arg) WithConflicts(names ...string) *Arg {
	a.Conflicts = append(a.Conflicts, names...)
	return a
}

// TakesValue reports whether the argument consumes a value token.
func (a *Arg) TakesValue() bool {
	return a.Arity == Single || a.Arity == Multiple
}

// IsPositional reports whether the argument is bound by position rather
// than by flag name.
func (a *Arg) IsPositional() bool {
	return a.Arity == Positional || a.Arity == Variadic
}
