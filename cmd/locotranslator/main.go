package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/louanfontenele/LocoTranslator/internal/cli"
	"github.com/louanfontenele/LocoTranslator/internal/models"
	"github.com/louanfontenele/LocoTranslator/internal/pipeline"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Cancel the run on Ctrl-C so progress is flushed and the process
	// can be resumed later.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, saving progress...")
		cancel()
	}()

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(ctx, cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard exit code for SIGINT
		}
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	if len(args) == 0 {
		return fmt.Errorf("no catalog given; usage: %s", cmd.UseLine())
	}

	cfg := cli.BuildRunConfig(flags, args[0])

	runner, err := pipeline.NewRunner(ctx, cfg)
	if err != nil {
		return err
	}

	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if stats.Failed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d entries failed to translate; rerun to retry them\n", stats.Failed)
	}
	return nil
}
