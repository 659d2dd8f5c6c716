package commands

import (
	"fmt"
	"strings"

	"github.com/benvon/day-planner/internal/models"
	"github.com/spf13/cobra"
)

type planPayload struct {
	ThreadID string       `json:"thread_id"`
	Plan     *models.Plan `json:"plan"`
}

// NewStartCmd creates the start command
func NewStartCmd() *cobra.Command {
	var honoree, relation, eventType, date string
	var budget int
	var invitees []string

	cmd := &cobra.Command{
		Use:   "start <profile_id>",
		Short: "Start a surprise-event plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			req := map[string]any{"profile_id": args[0]}
			if honoree != "" {
				req["honoree_name"] = honoree
			}
			if relation != "" {
				req["relation"] = relation
			}
			if eventType != "" {
				req["event_type"] = eventType
			}
			if date != "" {
				req["event_date"] = date
			}
			if budget > 0 {
				req["budget"] = budget
			}
			if len(invitees) > 0 {
				req["invitees"] = invitees
			}

			var data planPayload
			if err := client.post("/api/v1/events", req, &data); err != nil {
				return err
			}

			fmt.Println(okStyle.Render("Started plan " + data.ThreadID))
			printPlan(data.Plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&honoree, "honoree", "", "Person the event is for")
	cmd.Flags().StringVar(&relation, "relation", "", "Relation to the honoree (e.g. family)")
	cmd.Flags().StringVar(&eventType, "type", "", "Event type (e.g. birthday)")
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&budget, "budget", 0, "Budget amount")
	cmd.Flags().StringSliceVar(&invitees, "invitees", nil, "Invitee emails")
	return cmd
}

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <thread_id>",
		Short: "Show a plan thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			var data planPayload
			if err := client.get("/api/v1/events/"+args[0], &data); err != nil {
				return err
			}
			printPlan(data.Plan)
			return nil
		},
	}
}

// NewActionCmd creates the action command
func NewActionCmd() *cobra.Command {
	var theme, venue, timeOfDay, date, style, brevity, template string
	var budget int
	var invitees []string

	cmd := &cobra.Command{
		Use:   "action <thread_id> <action>",
		Short: "Apply an action to a plan",
		Long: "Apply one plan action: change_theme, change_venue, confirm_theme_venue, choose_time,\n" +
			"change_date, adjust_budget, add_invitees, remove_invitees, confirm_invitees,\n" +
			"edit_invite_tone, edit_invite_text, confirm_send",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			req := map[string]any{"action": args[1]}
			if theme != "" {
				req["theme"] = theme
			}
			if venue != "" {
				req["venue"] = venue
			}
			if timeOfDay != "" {
				req["time"] = timeOfDay
			}
			if date != "" {
				req["date"] = date
			}
			if budget > 0 {
				req["budget"] = budget
			}
			if len(invitees) > 0 {
				req["invitees"] = invitees
			}
			if style != "" {
				req["style"] = style
			}
			if brevity != "" {
				req["brevity"] = brevity
			}
			if template != "" {
				req["template"] = template
			}

			var data planPayload
			if err := client.post("/api/v1/events/"+args[0]+"/actions", req, &data); err != nil {
				return err
			}

			fmt.Println(okStyle.Render("Applied " + args[1]))
			printPlan(data.Plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme name")
	cmd.Flags().StringVar(&venue, "venue", "", "Venue name")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Event time (HH:MM)")
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&budget, "budget", 0, "Budget amount")
	cmd.Flags().StringSliceVar(&invitees, "invitees", nil, "Invitee emails")
	cmd.Flags().StringVar(&style, "style", "", "Invite tone style (playful, formal, romantic, friendly)")
	cmd.Flags().StringVar(&brevity, "brevity", "", "Invite brevity (short, medium, detailed)")
	cmd.Flags().StringVar(&template, "template", "", "Invite template text")
	return cmd
}

// NewTickCmd creates the tick command
func NewTickCmd() *cobra.Command {
	var now string
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "tick <thread_id>",
		Short: "Advance the home-ops timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			req := map[string]any{}
			if now != "" {
				req["now"] = now
			}
			if maxSteps > 0 {
				req["max_steps"] = maxSteps
			}

			var data struct {
				ThreadID  string                `json:"thread_id"`
				Processed []models.TimelineTask `json:"processed"`
				Remaining int                   `json:"remaining"`
				Plan      *models.Plan          `json:"plan"`
			}
			if err := client.post("/api/v1/events/"+args[0]+"/tick", req, &data); err != nil {
				return err
			}

			if len(data.Processed) == 0 {
				fmt.Println("No tasks due")
			} else {
				fmt.Println(titleStyle.Render("Processed tasks"))
				for _, task := range data.Processed {
					fmt.Printf("  %s %s (%s)\n", okStyle.Render("done"), task.Title, task.Notes)
				}
			}
			fmt.Println(subtleStyle.Render(fmt.Sprintf("%d tasks still scheduled", data.Remaining)))
			return nil
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Clock override (RFC3339)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum tasks to execute (0 = all due)")
	return cmd
}

func printPlan(plan *models.Plan) {
	if plan == nil {
		return
	}
	fmt.Println(titleStyle.Render("Plan " + plan.ThreadID))
	fmt.Printf("  Stage:   %s\n", plan.Stage)
	fmt.Printf("  Honoree: %s (%s %s)\n", plan.HonoreeName, plan.Relation, plan.EventType)
	fmt.Printf("  When:    %s %s\n", plan.Date, plan.Time)
	fmt.Printf("  Where:   %s (theme %s)\n", plan.Venue, plan.Theme)
	fmt.Printf("  Budget:  %d\n", plan.Budget)
	if len(plan.Invitees) > 0 {
		fmt.Printf("  Invitees: %s\n", strings.Join(plan.Invitees, ", "))
	}
	if len(plan.TimeOptions) > 0 {
		fmt.Println(subtleStyle.Render("  Time options: " + strings.Join(plan.TimeOptions, ", ")))
	}
	if len(plan.InviteeSuggestions) > 0 {
		fmt.Println(subtleStyle.Render("  Suggested invitees: " + strings.Join(plan.InviteeSuggestions, ", ")))
	}
	if plan.InvitePreview != "" {
		fmt.Println(subtleStyle.Render("  Invite preview: " + plan.InvitePreview))
	}
	if len(plan.Timeline) > 0 {
		fmt.Println(titleStyle.Render("  Timeline"))
		for _, task := range plan.Timeline {
			fmt.Printf("    %-20s %s (%s)\n", task.Title, task.ScheduledAt.Format("2006-01-02 15:04"), task.Status)
		}
	}
}
