package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProfilesCmd creates the profiles command
func NewProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List known profile ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			var data struct {
				Profiles []string `json:"profiles"`
			}
			if err := client.get("/api/v1/profiles", &data); err != nil {
				return err
			}

			if len(data.Profiles) == 0 {
				fmt.Println("No profiles configured")
				return nil
			}
			fmt.Println(titleStyle.Render("Profiles"))
			for _, id := range data.Profiles {
				fmt.Printf("  - %s\n", id)
			}
			return nil
		},
	}
}
