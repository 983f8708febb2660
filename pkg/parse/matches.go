package parse

// valueKind discriminates ArgValue variants.
type valueKind int

const (
	flagValue valueKind = iota
	singleValue
	multiValue
)

// ArgValue is a tagged variant holding one argument's parsed result: a flag
// presence, a single string, or an ordered list of strings.
type ArgValue struct {
	kind valueKind
	set  bool
	str  string
	list []string
}

// Bool returns the flag presence. The second return is false when the value
// is not a flag.
func (v ArgValue) Bool() (bool, bool) {
	if v.kind != flagValue {
		return false, false
	}
	return v.set, true
}

// Str returns the single string value. The second return is false when the
// value is not single-valued.
func (v ArgValue) Str() (string, bool) {
	if v.kind != singleValue {
		return "", false
	}
	return v.str, true
}

// List returns the multi-value list. The second return is false when the
// value is not multi-valued.
func (v ArgValue) List() ([]string, bool) {
	if v.kind != multiValue {
		return nil, false
	}
	return v.list, true
}

// Matches is the immutable result of one parse at one command level. Query
// it by argument name; an invoked subcommand carries its own nested
// Matches.
type Matches struct {
	command string
	values  map[string]ArgValue
	subName string
	sub     *Matches
	rest    []string
}

func newMatches(command string) *Matches {
	return &Matches{command: command, values: make(map[string]ArgValue)}
}

// CommandName returns the name of the command these matches belong to.
func (m *Matches) CommandName() string {
	return m.command
}

// Present reports whether the named argument resolved to any value: parsed,
// environment fallback, or default.
func (m *Matches) Present(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Flag reports whether the named flag was supplied.
func (m *Matches) Flag(name string) bool {
	b, ok := m.values[name].Bool()
	return ok && b
}

// Value returns the single value of the named argument.
func (m *Matches) Value(name string) (string, bool) {
	v, ok := m.values[name]
	if !ok {
		return "", false
	}
	return v.Str()
}

// Values returns the ordered value list of the named argument.
func (m *Matches) Values(name string) ([]string, bool) {
	v, ok := m.values[name]
	if !ok {
		return nil, false
	}
	return v.List()
}

// Get returns the raw tagged value for the named argument.
func (m *Matches) Get(name string) (ArgValue, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Subcommand returns the invoked subcommand's name and matches, if any.
func (m *Matches) Subcommand() (string, *Matches, bool) {
	if m.sub == nil {
		return "", nil, false
	}
	return m.subName, m.sub, true
}

// SubcommandName returns the invoked subcommand's name, if any.
func (m *Matches) SubcommandName() (string, bool) {
	if m.sub == nil {
		return "", false
	}
	return m.subName, true
}

// SubcommandMatches returns the nested matches when the named subcommand
// was the one invoked.
func (m *Matches) SubcommandMatches(name string) (*Matches, bool) {
	if m.sub == nil || m.subName != name {
		return nil, false
	}
	return m.sub, true
}

// Rest returns free values that filled no positional slot. This is only
// non-empty when the schema declares positionals but no variadic; with no
// positional schema at all a surplus value is a parse error instead.
func (m *Matches) Rest() []string {
	return m.rest
}

func (m *Matches) insertFlag(name string) {
	m.values[name] = ArgValue{kind: flagValue, set: true}
}

func (m *Matches) insertSingle(name, value string) {
	m.values[name] = ArgValue{kind: singleValue, str: value}
}

func (m *Matches) insertMulti(name string, values []string) {
	m.values[name] = ArgValue{kind: multiValue, list: values}
}

func (m *Matches) appendMulti(name string, values ...string) {
	v := m.values[name]
	if v.kind != multiValue {
		v = ArgValue{kind: multiValue}
	}
	v.list = append(v.list, values...)
	m.values[name] = v
}

func (m *Matches) setSubcommand(name string, sub *Matches) {
	m.subName = name
	m.sub = sub
}
