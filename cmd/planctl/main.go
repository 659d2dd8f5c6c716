package main

import (
	"fmt"
	"os"

	"github.com/benvon/day-planner/cmd/planctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "planctl",
		Short: "CLI for the Day Planner API",
		Long:  "CLI tool for running day plans, surprise-event workflows and natural-language commands against a Day Planner server",
	}

	rootCmd.AddCommand(commands.NewProfilesCmd())
	rootCmd.AddCommand(commands.NewDayCmd())
	rootCmd.AddCommand(commands.NewStartCmd())
	rootCmd.AddCommand(commands.NewGetCmd())
	rootCmd.AddCommand(commands.NewActionCmd())
	rootCmd.AddCommand(commands.NewTickCmd())
	rootCmd.AddCommand(commands.NewNLCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
