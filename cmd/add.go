package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/parser"
	"github.com/cwarden/planer/internal/planner"
)

var (
	addPriority string
	addTags     string
	addWarning  string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add an appointment without starting the planner",
	Long: `Add an appointment from a line of text such as
"tomorrow 14:00 dentist" or "15.03.2024 tax return". Without a date the
appointment falls on today.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: high, middle or low")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "Comma separated tags")
	addCmd.Flags().StringVarP(&addWarning, "warning", "w", "", "Warning date (default: configured days before)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	now := time.Now()
	res, err := parser.New(now).Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	p, err := newPlanner(store)
	if err != nil {
		return err
	}

	// Fill the same draft the dialog would, so validation and saving
	// behave exactly as in the planner.
	events := []planner.Event{planner.AddAppointment{Date: res.Date, Description: res.Text}}
	if addPriority != "" {
		prio, err := appointment.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		events = append(events, planner.DialogPriority{Priority: prio})
	}
	if addTags != "" {
		events = append(events, planner.DialogTags{Text: addTags})
	}
	if addWarning != "" {
		w, err := parser.New(now).ParseDate(addWarning)
		if err != nil {
			return fmt.Errorf("warning: %w", err)
		}
		events = append(events, planner.DialogWarning{Text: w.String()})
	}
	events = append(events, planner.DialogSubmit{})

	for _, ev := range events {
		if _, err := p.Handle(ev); err != nil {
			return err
		}
	}

	added := store.All()
	a := added[len(added)-1]
	fmt.Fprintf(cmd.OutOrStdout(), "Added appointment %d on %s\n", a.ID, a.Date)
	return nil
}
