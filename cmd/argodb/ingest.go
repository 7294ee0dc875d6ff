package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/oceanobs/argodb/internal/iodb"
	"github.com/oceanobs/argodb/internal/ioingest"
	"github.com/oceanobs/argodb/pkg/argo"
	pkgconfig "github.com/oceanobs/argodb/pkg/config"
	"github.com/spf13/cobra"
)

var (
	ingestDataDir string
	ingestReplace bool
)

func getIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [floatID...]",
		Short: "Ingest float NetCDF files into the database",
		Long: `Ingest Argo float observation files into PostgreSQL.

With float IDs as arguments, only those floats are ingested. Without
arguments the whole data directory is scanned for *_prof.nc files and
every discovered float is ingested in sorted order.

Per float, the metadata file is ingested before the profile file. A
missing file is skipped with a warning. One float's failure never
aborts a directory-wide run.

Examples:
  argodb ingest
  argodb ingest 1902669
  argodb ingest 1902669 1902670 --replace
  argodb ingest --data-dir /var/lib/argo/netcdf`,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestDataDir, "data-dir", "",
		"directory with NetCDF files (overrides config)")
	cmd.Flags().BoolVar(&ingestReplace, "replace", false,
		"delete and re-insert measurements of re-ingested profiles")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var opts []pkgconfig.Option
	if ingestDataDir != "" {
		opts = append(opts, pkgconfig.OptIngestDataDir(ingestDataDir))
	}
	opts = append(opts, pkgconfig.OptIngestReplace(ingestReplace))
	cfg.Update(opts)

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer op.Close()

	ing := ioingest.New(cfg, op)

	if len(args) == 0 {
		results, err := ing.IngestAll(ctx)
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(results) {
			printResult(results[id])
		}
		return nil
	}

	var failed []string
	for _, id := range args {
		res, err := ing.IngestOne(ctx, id)
		printResult(res)
		if err != nil {
			failed = append(failed, id)
		}
	}
	if len(failed) == len(args) {
		return errors.New("ingestion failed for every requested float")
	}
	return nil
}

func printResult(res argo.Result) {
	if res.Err != nil {
		fmt.Printf("float %s: FAILED: %s\n", res.FloatID, res.Err)
		return
	}
	fmt.Printf("float %s: %s profiles, %s measurements\n",
		res.FloatID,
		humanize.Comma(int64(res.Profiles)),
		humanize.Comma(int64(res.Measurements)),
	)
}

func sortedKeys(m map[string]argo.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
