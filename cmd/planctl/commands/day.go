package commands

import (
	"fmt"

	"github.com/benvon/day-planner/internal/models"
	"github.com/spf13/cobra"
)

// NewDayCmd creates the day command
func NewDayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day <profile_id>",
		Short: "Assemble a full day plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			var data struct {
				Date      string        `json:"date"`
				ProfileID string        `json:"profile_id"`
				Timezone  string        `json:"timezone"`
				Cards     []models.Card `json:"cards"`
				Rationale string        `json:"rationale"`
			}
			req := map[string]string{"profile_id": args[0]}
			if date != "" {
				req["date"] = date
			}
			if err := client.post("/api/v1/plan/day", req, &data); err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("Day plan for %s on %s (%s)", data.ProfileID, data.Date, data.Timezone)))
			fmt.Println(subtleStyle.Render(data.Rationale))
			fmt.Println()
			for _, card := range data.Cards {
				fmt.Printf("%s %s\n", titleStyle.Render(fmt.Sprintf("[%d]", card.Priority)), card.Title)
				fmt.Printf("    %s\n", card.Summary)
				fmt.Println(subtleStyle.Render("    agent: " + card.Agent))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Plan date (YYYY-MM-DD, defaults to today)")
	return cmd
}
