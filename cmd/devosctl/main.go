// Package main provides the devosctl CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/logging"
)

var (
	version = "0.1.0"

	repoFlag   string
	jsonOut    bool
	quiet      bool
	verbose    bool
	noColor    bool
	pretty     = true
	prettyFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devosctl",
		Short: "DevOS configuration validator",
		Long: `devosctl validates a DevOS agent-orchestration repository.

It checks the agent configuration (Config/agents.yaml), the tool
schema (Config/Tool-schema.json), the Copilot instructions document
and the repository tree, and reports every violated invariant.

Use 'devosctl validate' to run the full pass.
Use 'devosctl check list' to see the individual checks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose || config.Env().Debug {
				logging.SetEnabled(true)
			}

			if noColor || config.Env().NoColor {
				color.NoColor = true
			}

			// Pretty output defaults to on for terminals, off for pipes,
			// unless the flag was set explicitly.
			if cmd.Flags().Changed("pretty") {
				pretty = prettyFlag
			} else {
				pretty = term.IsTerminal(int(os.Stdout.Fd()))
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "DevOS repository root (default: DEVOS_REPO or current directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing on success, only findings on failure")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Emit structured debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", true, "Pretty print output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "validation", Title: "Validation:"},
		&cobra.Group{ID: "data", Title: "Data:"},
	)

	validate := validateCmd()
	validate.GroupID = "validation"
	rootCmd.AddCommand(validate)

	check := checkCmd()
	check.GroupID = "validation"
	rootCmd.AddCommand(check)

	hist := historyCmd()
	hist.GroupID = "data"
	rootCmd.AddCommand(hist)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("devosctl %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
