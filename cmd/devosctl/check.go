package main

import (
	"github.com/spf13/cobra"

	"github.com/devos-project/devosctl/internal/render"
	"github.com/devos-project/devosctl/internal/validator"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Inspect and run individual checks",
	}

	cmd.AddCommand(checkListCmd(), checkRunCmd())
	return cmd
}

func checkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered checks",
		Run: func(cmd *cobra.Command, args []string) {
			registry := validator.DefaultRegistry()
			w := render.Stdout()

			for _, group := range registry.Groups() {
				w.Section(group)
				for _, c := range registry.ByGroup(group) {
					w.Item("%-32s %s", c.Name, c.Description)
				}
			}
			w.Line()
		},
	}
}

func checkRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>...",
		Short: "Run individual checks by name",
		Long: `Run one or more named checks against the repository.

Examples:
  devosctl check run agents/required
  devosctl check run tools/shapes consistency/tool-refs`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			layout := repoLayout()
			runner := validator.NewRunner(validator.DefaultRegistry(), layout)

			report, err := runner.RunNamed(args)
			if err != nil {
				fatalError(err)
			}

			emitReport(report)
		},
	}
}
