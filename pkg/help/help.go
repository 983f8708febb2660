// Package help renders usage text from a command schema. Render is a pure
// function: the same schema always yields the same text, ordered by schema
// insertion order with arguments before subcommands. Callers decide whether
// and where to print it.
package help

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/kitecli/kite/pkg/schema"
)

const (
	descColumn = 30
	descWidth  = 46
)

// Render produces the full help text for a command.
func Render(cmd *schema.Command) string {
	var b strings.Builder

	if cmd.About != "" {
		fmt.Fprintf(&b, "%s\n", cmd.About)
	}
	if cmd.Version != "" {
		fmt.Fprintf(&b, "\nVersion: %s\n", cmd.Version)
	}

	options := cmd.Options()
	positionals := cmd.Positionals()

	fmt.Fprintf(&b, "\nUSAGE:\n    %s", cmd.Name)
	if len(options) > 0 {
		b.WriteString(" [OPTIONS]")
	}
	for _, a := range positionals {
		b.WriteString(" " + positionalMarker(a))
	}
	if len(cmd.Subcommands) > 0 {
		b.WriteString(" <COMMAND>")
	}
	b.WriteString("\n")

	if len(positionals) > 0 {
		b.WriteString("\nARGS:\n")
		for _, a := range positionals {
			writeEntry(&b, fmt.Sprintf("<%s>", strings.ToUpper(a.Name)), argAnnotations(a))
		}
	}

	if len(options) > 0 {
		b.WriteString("\nOPTIONS:\n")
		for _, a := range options {
			writeEntry(&b, optionInvocation(a), argAnnotations(a))
		}
	}

	if len(cmd.Subcommands) > 0 {
		b.WriteString("\nCOMMANDS:\n")
		for _, sub := range cmd.Subcommands {
			left := sub.Name
			if len(sub.Aliases) > 0 {
				left += fmt.Sprintf(" (%s)", strings.Join(sub.Aliases, ", "))
			}
			writeEntry(&b, left, sub.About)
		}
		b.WriteString("\nRun '<COMMAND> --help' for more information on a specific command.\n")
	}

	return b.String()
}

func positionalMarker(a *schema.Arg) string {
	upper := strings.ToUpper(a.Name)
	switch {
	case a.Arity == schema.Variadic:
		return fmt.Sprintf("[%s]...", upper)
	case a.Required:
		return fmt.Sprintf("<%s>", upper)
	default:
		return fmt.Sprintf("[%s]", upper)
	}
}

func optionInvocation(a *schema.Arg) string {
	var parts []string
	if a.Short != 0 {
		parts = append(parts, fmt.Sprintf("-%c", a.Short))
	}
	if a.Long != "" {
		parts = append(parts, fmt.Sprintf("--%s", a.Long))
	}
	invocation := strings.Join(parts, ", ")
	if a.TakesValue() {
		invocation += fmt.Sprintf(" <%s>", strings.ToUpper(a.Name))
	}
	return invocation
}

func argAnnotations(a *schema.Arg) string {
	desc := a.Help
	if a.Required {
		desc = strings.TrimSpace(desc + " [required]")
	}
	if a.HasDefault {
		desc = strings.TrimSpace(desc + fmt.Sprintf(" [default: %s]", a.Default))
	}
	return desc
}

// writeEntry emits one aligned entry: the invocation column padded to a
// fixed width, then the description wrapped and indented under itself.
func writeEntry(b *strings.Builder, left, desc string) {
	line := "    " + left
	if desc == "" {
		b.WriteString(line + "\n")
		return
	}
	if len(line) < descColumn {
		line += strings.Repeat(" ", descColumn-len(line))
	} else {
		line += " "
	}
	wrapped := strings.Split(wordwrap.WrapString(desc, descWidth), "\n")
	b.WriteString(line + wrapped[0] + "\n")
	for _, cont := range wrapped[1:] {
		b.WriteString(strings.Repeat(" ", descColumn) + cont + "\n")
	}
}
