package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/cron"
	"github.com/iasolb/EdgewaterInventoryManager/internal/app"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Run: func(c *cobra.Command, _ []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			bk, err := a.Backup(ctx)
			if err != nil {
				a.Log.Warn("backup store unavailable, backup job disabled", "error", err)
			}
			cron.RegisterBuiltins(cron.Deps{
				Farm:        a.Farm,
				Sessions:    a.Sessions,
				Backup:      bk,
				SessionIdle: a.Config.SessionIdle,
				Log:         a.Log,
			})
			if jobName != "" {
				j, ok := cron.Lookup(jobName)
				if !ok {
					return fmt.Errorf("unknown job: %s", jobName)
				}
				fmt.Fprintf(c.OutOrStdout(), "Running cron job: %s\n", bold(j.Name))
				return cron.RunJob(ctx, j, a.Log)
			}
			sched, err := cron.Start(ctx, a.Log)
			if err != nil {
				return err
			}
			defer sched.Stop()
			fmt.Fprintln(c.OutOrStdout(), green("Cron scheduler started. Press Ctrl+C to exit."))
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		})
		if err != nil {
			fail(c, err)
		}
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
