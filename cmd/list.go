package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
	"github.com/cwarden/planer/internal/parser"
)

var listDays int

var listCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List appointments and exit",
	Long: `List the appointments of a day in a simple text format and exit.
The date defaults to today and may be written as 15.03.2024, 2024-03-15
or "next friday".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listDays, "days", "d", 1, "Number of days to list")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}

	day := calendar.Today()
	if len(args) > 0 {
		d, err := parser.New(time.Now()).ParseDate(args[0])
		if err != nil {
			return err
		}
		day = d
	}
	if listDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := range listDays {
		d, err := day.AddDays(i)
		if err != nil {
			break
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printDay(out, d, store.FindByDate(d))
	}
	return nil
}

func printDay(w io.Writer, day calendar.Date, items []appointment.Appointment) {
	fmt.Fprintf(w, "Appointments for %s:\n", day)
	if len(items) == 0 {
		fmt.Fprintln(w, "No appointments found.")
		return
	}

	for _, a := range items {
		timeStr := "All day"
		if a.Date.HasClock() {
			timeStr = a.Date.Format(cfg.TimeFormat)
		}

		fmt.Fprintf(w, "  %s - %s %s\n", timeStr, a.Description, a.Priority.Marker())
		if len(a.Tags) > 0 {
			fmt.Fprintf(w, "    Tags: %s\n", strings.Join(a.Tags, ", "))
		}
	}
}
