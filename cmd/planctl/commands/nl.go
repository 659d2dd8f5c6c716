package commands

import (
	"fmt"
	"strings"

	"github.com/benvon/day-planner/internal/models"
	"github.com/spf13/cobra"
)

// NewNLCmd creates the nl command
func NewNLCmd() *cobra.Command {
	var threadID, target string

	cmd := &cobra.Command{
		Use:   "nl <profile_id> <utterance...>",
		Short: "Run a natural-language command",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			req := map[string]any{
				"profile_id": args[0],
				"utterance":  strings.Join(args[1:], " "),
			}
			if threadID != "" {
				req["thread_id"] = threadID
			}
			if target != "" {
				req["target"] = target
			}

			var data struct {
				Summary  string        `json:"summary"`
				ThreadID string        `json:"thread_id"`
				Plan     *models.Plan  `json:"plan"`
				Cards    []models.Card `json:"cards"`
			}
			if err := client.post("/api/v1/nl", req, &data); err != nil {
				return err
			}

			fmt.Println(okStyle.Render(data.Summary))
			if data.ThreadID != "" {
				fmt.Println(subtleStyle.Render("thread: " + data.ThreadID))
			}
			printPlan(data.Plan)
			for _, card := range data.Cards {
				fmt.Printf("%s %s\n", titleStyle.Render(fmt.Sprintf("[%d]", card.Priority)), card.Title)
				fmt.Printf("    %s\n", card.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&threadID, "thread", "", "Existing plan thread id")
	cmd.Flags().StringVar(&target, "target", "", "Routing target: auto, event or agent")
	return cmd
}
