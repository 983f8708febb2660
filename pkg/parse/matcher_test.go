package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitecli/kite/pkg/schema"
)

func parseOK(t *testing.T, e *Engine, argv []string) *Matches {
	t.Helper()
	res, err := e.Parse(argv)
	require.NoError(t, err)
	require.Equal(t, Matched, res.Kind)
	return res.Matches
}

func flagsSchema() *schema.Command {
	return schema.NewCommand("app").WithArgs(
		schema.NewArg("all").WithShort('a').WithLong("all").AsFlag(),
		schema.NewArg("brief").WithShort('b').WithLong("brief").AsFlag(),
		schema.NewArg("color").WithShort('c').WithLong("color").AsFlag(),
	)
}

func TestParse_FlagsPresentAndAbsent(t *testing.T) {
	e := mustEngine(t, flagsSchema())

	m := parseOK(t, e, []string{"--all"})
	assert.True(t, m.Flag("all"))
	assert.False(t, m.Flag("brief"))
	assert.False(t, m.Present("brief"))
}

func TestParse_CombinedShortFlags(t *testing.T) {
	e := mustEngine(t, flagsSchema())

	combined := parseOK(t, e, []string{"-abc"})
	separate := parseOK(t, e, []string{"-a", "-b", "-c"})

	for _, name := range []string{"all", "brief", "color"} {
		assert.True(t, combined.Flag(name))
		assert.True(t, separate.Flag(name))
	}
}

func TestParse_InlineAndSeparateValuesAgree(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("output").WithShort('o').WithLong("output")))

	inline := parseOK(t, e, []string{"--output=file.txt"})
	separate := parseOK(t, e, []string{"--output", "file.txt"})
	short := parseOK(t, e, []string{"-o", "file.txt"})

	for _, m := range []*Matches{inline, separate, short} {
		v, ok := m.Value("output")
		require.True(t, ok)
		assert.Equal(t, "file.txt", v)
	}
}

func TestParse_MultipleValuesAccumulateInOrder(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("file").WithShort('f').AsMultiple()))

	m := parseOK(t, e, []string{"-f", "x.txt", "-f", "y.txt"})
	values, ok := m.Values("file")
	require.True(t, ok)
	assert.Equal(t, []string{"x.txt", "y.txt"}, values)
}

func TestParse_SingleRepeatLastWins(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("opt").WithLong("opt")))

	m := parseOK(t, e, []string{"--opt=first", "--opt", "second"})
	v, _ := m.Value("opt")
	assert.Equal(t, "second", v)
}

func TestParse_UnknownArgumentSuggests(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("verbose").WithLong("verbose").AsFlag()))

	_, err := e.Parse([]string{"--verbos"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArgument))
	parseErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "--verbos", parseErr.Arg)
	assert.Equal(t, "verbose", parseErr.Suggestion)
	assert.Contains(t, parseErr.Error(), "did you mean 'verbose'?")
}

func TestParse_UnknownShortFlag(t *testing.T) {
	e := mustEngine(t, flagsSchema())

	_, err := e.Parse([]string{"-axb"})
	require.Error(t, err)
	parseErr, _ := AsError(err)
	assert.Equal(t, ErrCodeUnknownArgument, parseErr.Code)
	assert.Equal(t, "-x", parseErr.Arg)
}

func TestParse_MissingValue(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").WithArgs(
		schema.NewArg("output").WithLong("output"),
		schema.NewArg("verbose").WithLong("verbose").AsFlag(),
	))

	for _, argv := range [][]string{
		{"--output"},
		{"--output", "--verbose"},
	} {
		_, err := e.Parse(argv)
		require.Error(t, err, "argv %v", argv)
		assert.True(t, errors.Is(err, ErrMissingValue))
		parseErr, _ := AsError(err)
		assert.Equal(t, "output", parseErr.Arg)
	}
}

func TestParse_PositionalBinding(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("cp").WithArgs(
		schema.NewArg("source").AsPositional(0).MarkRequired(),
		schema.NewArg("dest").AsPositional(1),
	))

	m := parseOK(t, e, []string{"a.txt", "b.txt"})
	src, _ := m.Value("source")
	dst, _ := m.Value("dest")
	assert.Equal(t, "a.txt", src)
	assert.Equal(t, "b.txt", dst)
	assert.Empty(t, m.Rest())
}

func TestParse_VariadicCapturesTrailing(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("rm").WithArgs(
		schema.NewArg("mode").AsPositional(0),
		schema.NewArg("files").AsVariadic(),
	))

	m := parseOK(t, e, []string{"force", "a", "b", "c"})
	mode, _ := m.Value("mode")
	assert.Equal(t, "force", mode)
	files, ok := m.Values("files")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, files)
}

func TestParse_SurplusWithoutVariadicIsCaptured(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("only").AsPositional(0)))

	m := parseOK(t, e, []string{"one", "extra1", "extra2"})
	assert.Equal(t, []string{"extra1", "extra2"}, m.Rest())
}

func TestParse_UnexpectedArgumentWithoutPositionalSchema(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithSubcommand(schema.NewCommand("build")))

	_, err := e.Parse([]string{"biuld"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedArgument))
	parseErr, _ := AsError(err)
	assert.Equal(t, "biuld", parseErr.Arg)
	assert.Equal(t, "build", parseErr.Suggestion)
}

func TestParse_DoubleDashStopsFlagParsing(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").WithArgs(
		schema.NewArg("verbose").WithLong("verbose").AsFlag(),
		schema.NewArg("file").AsPositional(0),
	))

	m := parseOK(t, e, []string{"--", "--verbose"})
	assert.False(t, m.Flag("verbose"))
	v, _ := m.Value("file")
	assert.Equal(t, "--verbose", v)
}

func TestParse_SubcommandDispatch(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithSubcommand(schema.NewCommand("build").
			WithAliases("b").
			WithArg(schema.NewArg("release").WithLong("release").AsFlag().MarkRequired())))

	for _, argv := range [][]string{
		{"build", "--release"},
		{"b", "--release"},
	} {
		m := parseOK(t, e, argv)
		name, sub, ok := m.Subcommand()
		require.True(t, ok, "argv %v", argv)
		assert.Equal(t, "build", name)
		assert.True(t, sub.Flag("release"))
	}

	sub, ok := parseOK(t, e, []string{"build", "--release"}).SubcommandMatches("build")
	require.True(t, ok)
	assert.True(t, sub.Flag("release"))
}

func TestParse_SubcommandValidationFailurePropagates(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithSubcommand(schema.NewCommand("build").
			WithArg(schema.NewArg("release").WithLong("release").AsFlag().MarkRequired())))

	_, err := e.Parse([]string{"build"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))
}

func TestParse_HelpShortCircuit(t *testing.T) {
	cmd := schema.NewCommand("app").
		WithAbout("An app").
		WithArg(schema.NewArg("message").WithLong("message").MarkRequired())
	e := mustEngine(t, cmd)

	for _, argv := range [][]string{
		{"--help"},
		{"-h"},
		{"--message", "hi", "--help"},
	} {
		res, err := e.Parse(argv)
		require.NoError(t, err, "argv %v", argv)
		assert.Equal(t, HelpRequested, res.Kind)
		assert.Contains(t, res.Help, "USAGE:")
		assert.Contains(t, res.Help, "--message")
	}
}

func TestParse_HelpWinsOverMissingRequired(t *testing.T) {
	// Help must short-circuit before the validator runs at all.
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("message").WithLong("message").MarkRequired()))

	res, err := e.Parse([]string{"--help"})
	require.NoError(t, err)
	assert.Equal(t, HelpRequested, res.Kind)
}

func TestParse_SubcommandHelpRendersSubLevel(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithSubcommand(schema.NewCommand("build").
			WithAbout("Build the project").
			WithArg(schema.NewArg("release").WithLong("release").AsFlag())))

	res, err := e.Parse([]string{"build", "--help"})
	require.NoError(t, err)
	assert.Equal(t, HelpRequested, res.Kind)
	assert.Contains(t, res.Help, "Build the project")
	assert.Contains(t, res.Help, "--release")
}

func TestParse_HelpAfterOptionValueNamedLikeSubcommand(t *testing.T) {
	// "build" here is --config's value, not a subcommand switch, so the
	// trailing help/version flags still belong to the root level and must
	// short-circuit instead of failing lookup.
	e := mustEngine(t, schema.NewCommand("app").
		WithVersion("1.0.0").
		WithArg(schema.NewArg("config").WithLong("config")).
		WithSubcommand(schema.NewCommand("build")))

	res, err := e.Parse([]string{"--config", "build", "--help"})
	require.NoError(t, err)
	assert.Equal(t, HelpRequested, res.Kind)
	assert.Contains(t, res.Help, "--config")

	res, err = e.Parse([]string{"--config", "build", "-h"})
	require.NoError(t, err)
	assert.Equal(t, HelpRequested, res.Kind)

	res, err = e.Parse([]string{"--config", "build", "--version"})
	require.NoError(t, err)
	assert.Equal(t, VersionRequested, res.Kind)
	assert.Equal(t, "app 1.0.0", res.Version)
}

func TestParse_TerminatedValueDoesNotDispatchSubcommand(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArg(schema.NewArg("word").AsPositional(0)).
		WithSubcommand(schema.NewCommand("build")))

	m := parseOK(t, e, []string{"--", "build"})
	_, _, ok := m.Subcommand()
	assert.False(t, ok)
	v, _ := m.Value("word")
	assert.Equal(t, "build", v)

	// Without the terminator the same token dispatches.
	m = parseOK(t, e, []string{"build"})
	name, _, ok := m.Subcommand()
	require.True(t, ok)
	assert.Equal(t, "build", name)
}

func TestParse_VersionShortCircuit(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").WithVersion("1.2.3"))

	for _, argv := range [][]string{{"--version"}, {"-V"}} {
		res, err := e.Parse(argv)
		require.NoError(t, err)
		assert.Equal(t, VersionRequested, res.Kind)
		assert.Equal(t, "app 1.2.3", res.Version)
	}
}

func TestParse_VersionIgnoredWithoutVersionString(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app"))

	_, err := e.Parse([]string{"--version"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArgument))
}

func TestParse_Idempotent(t *testing.T) {
	e := mustEngine(t, schema.NewCommand("app").
		WithArgs(
			schema.NewArg("verbose").WithShort('v').AsFlag(),
			schema.NewArg("file").WithShort('f').AsMultiple(),
			schema.NewArg("pos").AsPositional(0),
		).
		WithSubcommand(schema.NewCommand("run")))

	argv := []string{"-v", "-f", "a", "-f", "b", "value"}
	first := parseOK(t, e, argv)
	second := parseOK(t, e, argv)

	diff := cmp.Diff(first, second, cmp.AllowUnexported(Matches{}, ArgValue{}))
	assert.Empty(t, diff)
}
