package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/measure/internal/scenario"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var (
		asJSON      bool
		showChanges bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario on a virtual clock",
		Long: `Replay a scenario instantly on a virtual clock and print the
published bounds after every step.

Options in measure.json apply first; the scenario's own options
override them.

Example scenario:

  name: card in a scrolling panel
  options: {scroll: true, debounce: 50ms, transition: 160ms}
  elements:
    - id: panel
      overflow: scroll
      rect: {x: 0, y: 0, width: 400, height: 300}
      children:
        - id: card
          rect: {x: 10, y: 120, width: 200, height: 80}
  target: card
  steps:
    - mount
    - flush
    - advance: 50ms
    - scroll: {id: panel, top: 40}
    - advance: 50ms

Examples:
  measure run panel.yaml
  measure run panel.yaml --json
  measure run panel.yaml --changes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			sc, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var hooks scenario.Hooks
			if showChanges && !asJSON {
				hooks.OnChange = func(c scenario.Change) {
					info(out, "%8s  %-6s = %g", c.At, c.Field, c.Value)
				}
			}

			runner := scenario.NewRunner(sc,
				scenario.WithMeasureOptions(cfg.MeasureOptions()...),
				scenario.WithLogger(newLogger(cfg, cmd.ErrOrStderr())),
				scenario.WithHooks(hooks),
			)
			report, err := runner.Run(cmd.Context(), scenario.NewManualDriver())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(out, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&showChanges, "changes", false, "Print every channel change as it happens")

	return cmd
}

// printReport writes one row per step.
func printReport(w io.Writer, r *scenario.Report) {
	if r.Name != "" {
		fmt.Fprintf(w, "\n  %s\n\n", r.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tAT\tSTEP\tX\tY\tWIDTH\tHEIGHT\tANIM")
	for _, s := range r.Steps {
		anim := ""
		if s.Animating {
			anim = fmt.Sprintf("-> %gx%g @ %g,%g", s.Target.Width, s.Target.Height, s.Target.X, s.Target.Y)
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%g\t%g\t%g\t%g\t%s\n",
			s.Index, s.At, s.Step, s.Bounds.X, s.Bounds.Y, s.Bounds.Width, s.Bounds.Height, anim)
	}
	tw.Flush()

	fmt.Fprintln(w)
	success(w, "%d steps, %d detections (%d jumps, %d sets, %d unchanged), %d changes",
		len(r.Steps), r.Stats.Detections, r.Stats.Jumps, r.Stats.Sets, r.Stats.Unchanged, r.Changes)
	info(w, "final %s", r.Final)
}
