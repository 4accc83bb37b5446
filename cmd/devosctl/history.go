package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/history"
	"github.com/devos-project/devosctl/internal/render"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded validation runs",
		Long: `Display recent validation runs from the local history database.

Examples:
  devosctl history             # last 20 runs
  devosctl history --limit 5   # last 5 runs
  devosctl history show <id>   # findings of one run`,
		Run: func(cmd *cobra.Command, args []string) {
			store, err := history.Open(config.GetPaths().HistoryDB)
			if err != nil {
				fatalError(err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(context.Background(), limit)
			if err != nil {
				fatalError(err)
			}

			if jsonOut {
				data, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					fatalError(err)
				}
				fmt.Println(string(data))
				return
			}

			w := render.Stdout()
			if len(runs) == 0 {
				w.Println("No recorded runs")
				return
			}

			w.Header("Validation history")
			for _, r := range runs {
				w.Item("%s %s", render.BoolIcon(r.OK), r.Summary())
			}
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")

	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the findings of one recorded run",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := history.Open(config.GetPaths().HistoryDB)
			if err != nil {
				fatalError(err)
			}
			defer store.Close()

			findings, err := store.RunFindings(context.Background(), args[0])
			if err != nil {
				fatalError(err)
			}

			if jsonOut {
				data, err := json.MarshalIndent(findings, "", "  ")
				if err != nil {
					fatalError(err)
				}
				fmt.Println(string(data))
				return
			}

			w := render.Stdout()
			if len(findings) == 0 {
				w.Println("No findings recorded for run %s", args[0])
				return
			}

			for _, f := range findings {
				w.Item("%s [%s] %s", render.KindIcon(string(f.Kind)), f.Kind, f.Message)
				if f.File != "" {
					w.SubItem("file: %s", f.File)
				}
				if f.Subject != "" {
					w.SubItem("subject: %s", f.Subject)
				}
			}
		},
	}
}
