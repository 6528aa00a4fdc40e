// Package main is the entry point for the rpncalc command.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/repl"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "rpncalc [expression...]",
	Short: "Evaluate arithmetic and boolean expressions",
	Long: `rpncalc evaluates infix expressions such as "2+3*4", "sin(2pi)" or
"21*(214/2) >= 7^3". All arguments are joined into one expression.
Numeric results are printed with ten decimals, comparisons as true/false.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("rpncalc version {{.Version}}\n")

	rootCmd.Flags().BoolP("input", "i", false, "Read expressions interactively, one per line")
	rootCmd.Flags().BoolP("postfix", "p", false, "Also print the postfix (RPN) form")
	rootCmd.Flags().Bool("trace", false, "Log every pipeline stage to stderr")

	rootCmd.AddCommand(serveCmd, batchCmd)
}

func main() {
	rootCmd.SetArgs(expressionArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("input")
	showPostfix, _ := cmd.Flags().GetBool("postfix")
	trace, _ := cmd.Flags().GetBool("trace")

	if interactive {
		h := store.New(historyLimit())
		return repl.New(cmd.InOrStdin(), cmd.OutOrStdout(), h, repl.Options{
			ShowPostfix: showPostfix,
			Prompt:      term.IsTerminal(int(os.Stdin.Fd())),
			Color:       term.IsTerminal(int(os.Stdout.Fd())),
		}).Run()
	}
	if len(args) == 0 {
		return cmd.Help()
	}

	a, err := expr.Trace(strings.Join(args, ""))
	if trace {
		logStages(a)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showPostfix {
		fmt.Fprintf(out, "postfix: %s\n", a.PostfixString())
	}
	fmt.Fprintln(out, a.Result)
	return nil
}

func logStages(a *expr.Analysis) {
	log.Printf("input:      %q", a.Input)
	log.Printf("normalized: %q", a.Normalized)
	log.Printf("tokens:     %s", expr.JoinTokens(a.Tokens))
	log.Printf("postfix:    %s", a.PostfixString())
}

// expressionArgs inserts "--" before the first argument that is an
// expression starting with a minus sign, so "-2*3" is not read as a flag.
// Arguments of a subcommand are left alone so its own short flags parse.
func expressionArgs(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if !strings.HasPrefix(a, "-") && isSubcommand(a) {
			return args
		}
		if isNegativeExpression(a) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

func isNegativeExpression(a string) bool {
	if len(a) < 2 || a[0] != '-' || a[1] == '-' {
		return false
	}
	switch a {
	case "-i", "-p", "-h":
		return false
	}
	return true
}

// isSubcommand reports whether name selects a subcommand of the root.
func isSubcommand(name string) bool {
	switch name {
	case "help", "completion":
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
