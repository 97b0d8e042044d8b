package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/evaluator"
	"webmall/evaluation/webmall/task"
)

func newValidateCommand(cli *CLI) *cobra.Command {
	var (
		pagePath string
		pageURL  string
		message  string
		role     string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "validate <task-id>",
		Short: "Score a single saved page against a fresh task checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := cli.newTask(args[0])
			if err != nil {
				return err
			}

			var content []byte
			if pagePath != "" {
				content, err = os.ReadFile(pagePath)
				if err != nil {
					return fmt.Errorf("read page: %w", err)
				}
			}
			var chat []task.ChatMessage
			if message != "" || role == task.RoleInfeasible {
				chat = append(chat, task.ChatMessage{Role: role, Message: message})
			}

			result, err := t.Validate(cmd.Context(), evaluator.NewPageSnapshot(pageURL, string(content)), chat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "%s %s\n", bold("Score"), scoreText(result.Score, result.Detail.MaxScore))
			fmt.Fprintf(out, "%s %t\n", bold("Done"), result.Done)
			fmt.Fprintf(out, "%s %s\n", bold("Reached"), joinOrDash(recordIDs(result.Detail.ReachedDuringThisStep)))
			fmt.Fprintf(out, "%s %s\n", bold("Wrong"), joinOrDash(result.Detail.WrongSolutions))
			return printChecklist(out, result.Detail.Checklist)
		},
	}
	cmd.Flags().StringVar(&pagePath, "page", "", "Saved HTML of the current page")
	cmd.Flags().StringVar(&pageURL, "url", "", "URL of the current page")
	cmd.Flags().StringVar(&message, "message", "", "Last agent message")
	cmd.Flags().StringVar(&role, "role", task.RoleAssistant, "Role of the last message (assistant, user, infeasible)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func recordIDs(records []checklist.Record) []string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	return ids
}
