package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "edgewater",
	Short: "Edgewater farm inventory maintenance commands",
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp opens the application for the duration of fn.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx := context.Background()
	a, err := app.Open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func fail(c *cobra.Command, err error) {
	fmt.Fprintln(c.ErrOrStderr(), red("error: "+err.Error()))
	os.Exit(1)
}
