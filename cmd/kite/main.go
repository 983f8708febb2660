// Package main is a demo CLI built on the kite parsing engine. It plays the
// caller's role from the engine's contract: it prints help and version
// text, renders parse errors, and chooses exit codes; the engine itself
// does none of that.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/kitecli/kite"
	"github.com/kitecli/kite/pkg/parse"
	"github.com/kitecli/kite/pkg/schema"
)

func demoSchema() *schema.Command {
	return schema.NewCommand("kite").
		WithVersion("0.1.0").
		WithAbout("A demo CLI for the kite argument parsing engine").
		WithArg(schema.NewArg("verbose").
			WithShort('v').WithLong("verbose").AsFlag().
			WithHelp("Enable verbose output")).
		WithArg(schema.NewArg("config").
			WithShort('c').WithLong("config").
			WithEnv("KITE_CONFIG").WithDefault("kite.toml").
			WithHelp("Path to the config file")).
		WithSubcommand(schema.NewCommand("init").
			WithAbout("Initialize a new project").
			WithArg(schema.NewArg("name").AsPositional(0).MarkRequired().
				WithHelp("Project name")).
			WithArg(schema.NewArg("template").WithLong("template").
				WithPossible("basic", "advanced", "minimal").
				WithDefault("basic").
				WithHelp("Project template to use"))).
		WithSubcommand(schema.NewCommand("build").
			WithAliases("b").
			WithAbout("Build the project").
			WithArg(schema.NewArg("release").WithLong("release").AsFlag().
				WithHelp("Build in release mode")).
			WithArg(schema.NewArg("jobs").
				WithShort('j').WithLong("jobs").
				WithDefault("4").
				WithValidator(func(v string) error {
					if _, err := strconv.ParseUint(v, 10, 32); err != nil {
						return errors.New("must be a number")
					}
					return nil
				}).
				WithHelp("Number of parallel jobs")).
			WithArg(schema.NewArg("targets").AsVariadic().
				WithHelp("Targets to build")))
}

func main() {
	app := kite.New(demoSchema())

	res, err := app.Parse(os.Args[1:])
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "\nFor more information try --help")
		os.Exit(1)
	}

	switch res.Kind {
	case parse.HelpRequested:
		fmt.Print(res.Help)
		return
	case parse.VersionRequested:
		fmt.Println(res.Version)
		return
	}

	m := res.Matches
	if m.Flag("verbose") {
		fmt.Println("verbose mode enabled")
	}
	if config, ok := m.Value("config"); ok {
		fmt.Printf("config: %s\n", config)
	}

	switch name, sub, _ := m.Subcommand(); name {
	case "init":
		project, _ := sub.Value("name")
		template, _ := sub.Value("template")
		fmt.Printf("initializing %s from template %s\n", project, template)
	case "build":
		jobs, _ := sub.Value("jobs")
		fmt.Printf("building with %s jobs (release=%v)\n", jobs, sub.Flag("release"))
		if targets, ok := sub.Values("targets"); ok {
			fmt.Printf("targets: %v\n", targets)
		}
	default:
		color.New(color.FgYellow).Fprintln(os.Stderr, "no subcommand given")
		fmt.Fprintln(os.Stderr, "Run 'kite --help' to see available commands")
	}
}
