package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-voxtend/pkg/reminder"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
)

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage scheme deadline reminders",
	}

	openStore := func() (*reminder.JSONStore, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return reminder.NewJSONStore(cfg.RemindersPath())
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCHEME\tDEADLINE\tDAYS\tNAME")
			now := time.Now()
			for _, r := range store.List() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.SchemeID, r.Deadline.Format(time.DateOnly),
					scheme.DaysUntil(r.Deadline, now), r.SchemeName)
			}
			return tw.Flush()
		},
	}

	var deadline string
	add := &cobra.Command{
		Use:   "add <scheme-id>",
		Short: "Remind me about a scheme deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			r := reminder.Reminder{SchemeID: args[0], SchemeName: args[0]}
			if s, err := scheme.Default().Get(args[0]); err == nil {
				if r, err = reminder.FromScheme(s); err != nil && deadline == "" {
					return err
				}
				r.SchemeID, r.SchemeName = s.ID, s.Name
			}
			if deadline != "" {
				d, err := time.Parse(time.DateOnly, deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline %q: %w", deadline, err)
				}
				r.Deadline = d
			}

			saved, added, err := store.Add(r)
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "already reminding about %s (%s)\n", saved.SchemeName, saved.Deadline.Format(time.DateOnly))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reminder set for %s (%s)\n", saved.SchemeName, saved.Deadline.Format(time.DateOnly))
			return nil
		},
	}
	add.Flags().StringVar(&deadline, "deadline", "", "deadline as YYYY-MM-DD (default from the catalog)")

	remove := &cobra.Command{
		Use:   "remove <scheme-id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			return store.Remove(args[0])
		},
	}

	due := &cobra.Command{
		Use:   "due",
		Short: "Show reminders due within a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			for _, n := range store.Due(time.Now()) {
				fmt.Fprintln(cmd.OutOrStdout(), n.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, due)
	return cmd
}
