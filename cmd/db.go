package cmd

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/cron"
	"github.com/iasolb/EdgewaterInventoryManager/db"
	"github.com/iasolb/EdgewaterInventoryManager/internal/app"
	"github.com/iasolb/EdgewaterInventoryManager/service/farm"
)

var dbMigrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Create or upgrade tables and recreate the views",
	Run: func(c *cobra.Command, args []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			return db.Migrate(ctx, a.DB, a.Log)
		})
		if err != nil {
			fail(c, err)
		}
		fmt.Fprintln(c.OutOrStdout(), green("schema up to date"))
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the item type lookup",
	Run: func(c *cobra.Command, args []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			n, err := a.Farm.SeedItemTypes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "item types added: %s\n", green(n))
			return nil
		})
		if err != nil {
			fail(c, err)
		}
	},
}

var dbStatsCmd = &cobra.Command{
	Use:   "db:stats",
	Short: "Print the row count of every table",
	Run: func(c *cobra.Command, args []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			printStats(c, a.Farm.Stats(ctx))
			return nil
		})
		if err != nil {
			fail(c, err)
		}
	},
}

func printStats(c *cobra.Command, stats []farm.TableStat) {
	sort.Slice(stats, func(i, j int) bool { return stats[i].Table < stats[j].Table })
	w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, bold("TABLE")+"\t"+bold("ROWS"))
	var total int64
	for _, s := range stats {
		if s.Err != "" {
			fmt.Fprintf(w, "%s\t%s\n", s.Table, red(s.Err))
			continue
		}
		rows := fmt.Sprint(s.Rows)
		if s.Rows == 0 {
			rows = yellow(rows)
		}
		fmt.Fprintf(w, "%s\t%s\n", s.Table, rows)
		total += s.Rows
	}
	fmt.Fprintf(w, "%s\t%s\n", bold("total"), green(total))
	_ = w.Flush()
}

var dbBackupCmd = &cobra.Command{
	Use:   "db:backup",
	Short: "Snapshot every table to the backup store and apply retention",
	Run: func(c *cobra.Command, args []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			bk, err := a.Backup(ctx)
			if err != nil {
				return err
			}
			if listOnly {
				stamps, err := bk.Snapshots(ctx)
				if err != nil {
					return err
				}
				for _, s := range stamps {
					fmt.Fprintln(c.OutOrStdout(), s)
				}
				return nil
			}
			if err := cron.RunBackup(ctx, bk, a.Log); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), green("backup complete"))
			return nil
		})
		if err != nil {
			fail(c, err)
		}
	},
}

var listOnly bool

func init() {
	dbBackupCmd.Flags().BoolVar(&listOnly, "list", false, "List snapshots instead of taking one")
	rootCmd.AddCommand(dbMigrateCmd, dbSeedCmd, dbStatsCmd, dbBackupCmd)
}
