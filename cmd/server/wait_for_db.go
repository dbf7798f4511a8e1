package main

import (
	"context"
	"recipe/internal/model"
	"time"

	"github.com/spf13/cobra"
)

var waitTimeout time.Duration

var waitForDBCmd = &cobra.Command{
	Use:   "wait-for-db",
	Short: "Block until the database accepts connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if waitTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, waitTimeout)
			defer cancel()
		}
		return model.WaitFor(ctx, model.DatabaseProbe(&cfg), cfg.DBWaitInterval)
	},
}

func init() {
	waitForDBCmd.Flags().DurationVar(&waitTimeout, "timeout", 0, "give up after this long (0 waits forever)")
}
