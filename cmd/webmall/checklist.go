package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newChecklistCommand(cli *CLI) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "checklist <task-id>",
		Short: "Print the weighted checklist built for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, p, err := cli.newTask(args[0])
			if err != nil {
				return err
			}
			records := t.Checklist().Records()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			fmt.Fprintf(out, "%s %s (policy %s)\n", bold("Task"), cyan(t.ID()), p.Name)
			if err := printChecklist(out, records); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d checkpoints, max score %.4f\n", len(records), t.Checklist().MaxScore())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
