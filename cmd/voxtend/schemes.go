package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-voxtend/pkg/scheme"
)

func schemesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "schemes [id]",
		Short: "List welfare schemes or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := scheme.Default()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				s, err := catalog.Get(args[0])
				if err != nil {
					return fmt.Errorf("%w: %s", err, args[0])
				}
				fmt.Fprintf(out, "%s\n%s\n\nBenefits: %s\n", s.Name, s.Description, s.Benefits)
				fmt.Fprintln(out, "Eligibility:")
				for _, e := range s.Eligibility {
					fmt.Fprintf(out, "  - %s\n", e)
				}
				fmt.Fprintf(out, "Documents: %s\n", strings.Join(s.DocumentNames(), ", "))
				if s.Deadline != nil {
					days, _ := s.DaysLeft(time.Now())
					fmt.Fprintf(out, "Deadline: %s (%d days)\n", s.Deadline.Format(time.DateOnly), days)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tDEADLINE\tNAME")
			for _, s := range catalog.ByCategory(category) {
				deadline := "-"
				if s.Deadline != nil {
					deadline = s.Deadline.Format(time.DateOnly)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Category, deadline, s.Name)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	return cmd
}
