package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expertpanel",
	Short: "Multi-agent expert panel review system",
	Long: `expertpanel creates virtual expert panels to review and discuss any
topic, document, or idea. It supports the OpenAI and Anthropic APIs with
per-session token and cost analytics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree under the supplied context.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
