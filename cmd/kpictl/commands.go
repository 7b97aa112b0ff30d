package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kpi_tracker/backend/internal/models"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		developer string
		all       bool
		pf        periodFlags
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute and store the monthly KPI of a developer or of every active developer",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.period()
			if err != nil {
				return err
			}
			switch {
			case all:
				items, err := a.svc.GenerateAll(cmd.Context(), p)
				if err != nil {
					return err
				}
				return writeSummaryTable(cmd, items)
			case developer != "":
				k, err := a.svc.Generate(cmd.Context(), developer, p)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), k)
			default:
				return errors.New("either --developer or --all is required")
			}
		},
	}
	cmd.Flags().StringVar(&developer, "developer", "", "developer id")
	cmd.Flags().BoolVar(&all, "all", false, "generate for every active developer")
	pf.register(cmd)
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var developer string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute the current month's KPI without storing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.svc.Preview(cmd.Context(), developer)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), k)
		},
	}
	cmd.Flags().StringVar(&developer, "developer", "", "developer id")
	_ = cmd.MarkFlagRequired("developer")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var developer string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored KPIs of a developer, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.svc.History(cmd.Context(), developer)
			if err != nil {
				return err
			}
			return writeSummaryTable(cmd, items)
		},
	}
	cmd.Flags().StringVar(&developer, "developer", "", "developer id")
	_ = cmd.MarkFlagRequired("developer")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		developer string
		output    string
		pf        periodFlags
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a KPI report as CSV; without --developer the team summary is exported",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.period()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return a.svc.ExportCSV(cmd.Context(), developer, p, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := a.svc.ExportCSV(cmd.Context(), developer, p, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&developer, "developer", "", "developer id, team summary when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	pf.register(cmd)
	return cmd
}

func writeSummaryTable(cmd *cobra.Command, items []models.MonthlyKPI) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVELOPER\tPERIOD\tDELIVERY\tQUALITY\tOVERALL\tTREND")
	for _, k := range items {
		trend := "-"
		if k.Trend != nil {
			trend = string(*k.Trend)
		}
		fmt.Fprintf(tw, "%s\t%04d-%02d\t%.2f\t%.2f\t%.2f\t%s\n",
			k.DeveloperID, k.Year, k.Month, k.DeliveryScore, k.QualityScore, k.OverallScore, trend)
	}
	return tw.Flush()
}
