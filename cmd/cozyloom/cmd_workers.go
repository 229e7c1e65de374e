package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cozyloom/app/jobs"
	"github.com/shashiranjanraj/cozyloom/config"
	"github.com/shashiranjanraj/cozyloom/pkg/cache"
	"github.com/shashiranjanraj/cozyloom/pkg/logger"
	"github.com/shashiranjanraj/cozyloom/pkg/queue"
)

var queueWorkersFlag int

// cozyloom queue:work — drain the job queue in a dedicated process.
// Requires the Redis driver so this process sees jobs pushed by the
// API server; without Redis each process only sees its own jobs.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		logger.Setup()

		if err := cache.Connect(); err != nil {
			fmt.Println("⚠️  Redis unavailable — falling back to in-process queue")
		}
		if cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		queue.UseDB(db)
		jobs.Register()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = config.QueueWorkers()
		}

		fmt.Printf("🚀 Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\n⚡ Queue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers (default from config)")
}
