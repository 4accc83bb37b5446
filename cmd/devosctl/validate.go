package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/history"
	"github.com/devos-project/devosctl/internal/logging"
	"github.com/devos-project/devosctl/internal/render"
	"github.com/devos-project/devosctl/internal/validator"
)

// historyKeep bounds the runs retained in the history database.
const historyKeep = 200

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [group]",
		Short: "Run validation checks",
		Long: `Run the configuration validation pass.

With no argument every check runs. With a group argument only that
group runs.

Examples:
  devosctl validate                      # full pass
  devosctl validate agents               # agents.yaml checks only
  devosctl validate consistency          # cross-reference checks only
  devosctl validate --repo ~/src/devos   # validate another checkout`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"agents", "tools", "consistency", "docs", "structure"},
		Run: func(cmd *cobra.Command, args []string) {
			layout := repoLayout()
			runner := validator.NewRunner(validator.DefaultRegistry(), layout)

			var report *validator.Report
			if len(args) == 0 {
				report = runner.RunAll()
			} else {
				var err error
				report, err = runner.RunGroup(args[0])
				if err != nil {
					fatalError(err)
				}
			}

			recordRun(report)
			emitReport(report)
		},
	}

	return cmd
}

// recordRun persists the report to the history database. Best-effort:
// a broken history store never fails validation.
func recordRun(report *validator.Report) {
	log := logging.New("history")

	store, err := history.Open(config.GetPaths().HistoryDB)
	if err != nil {
		log.Warn("open_failed", nil, err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.RecordRun(ctx, report); err != nil {
		log.Warn("record_failed", map[string]any{"run_id": report.ID}, err)
		return
	}
	if err := store.Prune(ctx, historyKeep); err != nil {
		log.Warn("prune_failed", nil, err)
	}
	log.Debug("run_recorded", map[string]any{"run_id": report.ID})
}

// emitReport renders the report and exits with the proper status.
func emitReport(report *validator.Report) {
	switch {
	case jsonOut:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fatalError(err)
		}
		fmt.Println(string(data))
	case quiet:
		if out := render.New(pretty).Findings(report); out != "" {
			fmt.Print(out)
		}
	default:
		fmt.Print(render.New(pretty).Report(report))
	}

	if !report.OK() {
		os.Exit(exitFindings)
	}
}
