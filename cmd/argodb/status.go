package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/oceanobs/argodb/internal/iodb"
	"github.com/spf13/cobra"
)

func getStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [floatID...]",
		Short: "Show per-float profile and measurement counts",
		Long: `Show ingestion status of floats stored in the database.

Without arguments every known float is listed. With float IDs as
arguments the listing is restricted to those floats. The report is
read-only.

Examples:
  argodb status
  argodb status 1902669 1902670`,
		RunE: runStatus,
	}
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	floatIDs := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid float ID %q: %w", arg, err)
		}
		floatIDs = append(floatIDs, id)
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	summaries, err := op.FloatSummaries(ctx, floatIDs)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No floats found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLOAT\tPI\tPROJECT\tPROFILES\tMEASUREMENTS\tLAST PROFILE")
	for _, s := range summaries {
		lastProfile := "-"
		if s.LastProfile.Valid {
			lastProfile = s.LastProfile.Time.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.PlatformNumber,
			orDash(s.PIName.String),
			orDash(s.ProjectName.String),
			humanize.Comma(s.Profiles),
			humanize.Comma(s.Measurements),
			lastProfile,
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
