package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type taskRow struct {
	ID         string `json:"id"`
	Set        string `json:"set"`
	AnswerType string `json:"answer_type"`
	Weighting  string `json:"weighting"`
}

func newTasksCommand(cli *CLI) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of the task set file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := cli.loadCatalog()
			if err != nil {
				return err
			}
			var rows []taskRow
			for _, set := range catalog.Sets {
				for _, spec := range set.Tasks {
					rows = append(rows, taskRow{
						ID:         spec.ID,
						Set:        set.ID,
						AnswerType: spec.AnswerType(),
						Weighting:  cli.policyFor(catalog, spec.ID),
					})
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			cells := make([][]string, 0, len(rows))
			for _, row := range rows {
				cells = append(cells, []string{row.ID, row.Set, row.AnswerType, row.Weighting})
			}
			err = printTable(out, []string{"ID", "SET", "TYPE", "WEIGHTING"}, cells, func(col int, cell string) string {
				if col == 0 {
					return cyan(cell)
				}
				return cell
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d tasks\n", len(rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
