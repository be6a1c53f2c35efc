package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Generate sample data and print its aggregates",
		Long: `stats loads a generated dataset into a fresh store and prints per-department
user counts and spending. The same seed always produces the same figures.`,
		RunE: runStats,
	}
	cmd.Flags().Int("users", 0, "number of users to generate")
	cmd.Flags().Uint64("random-seed", 0, "seed for the generator (0 picks one)")
	_ = viper.BindPFlag("SEED_USERS", cmd.Flags().Lookup("users"))
	_ = viper.BindPFlag("SEED_RANDOM_SEED", cmd.Flags().Lookup("random-seed"))
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	container, err := newServiceContainer(cfg, slog.Default())
	if err != nil {
		return err
	}

	summary, err := container.Dataset.LoadMockData(ctx, dto.LoadMockDataRequest{})
	if err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}
	departments, err := container.Department.ListDepartments(ctx, dto.ListParams{})
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Departments: %s  Users: %s  Expenses: %s\n\n",
		utils.FormatNumber(summary.Departments),
		utils.FormatNumber(summary.Users),
		utils.FormatNumber(summary.Expenses))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DEPARTMENT\tUSERS\tSPENDING\t")
	for _, d := range departments.Departments {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", d.Name, utils.FormatNumber(d.UserCount), d.FormattedTotalSpending)
	}
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t\n",
		departments.Stats.Formatted["totalUsers"],
		departments.Stats.Formatted["totalSpending"])
	return w.Flush()
}
