package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/api"
	"github.com/LambdaTest/covgate/pkg/azure"
	"github.com/LambdaTest/covgate/pkg/command"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/diffmanager"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/fileutils"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/publisher"
	"github.com/LambdaTest/covgate/pkg/reportloader"
	"github.com/LambdaTest/covgate/pkg/runner"
	"github.com/LambdaTest/covgate/pkg/server"
	"github.com/LambdaTest/covgate/pkg/service/coverage"
	"github.com/LambdaTest/covgate/pkg/zstd"
	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:           "covgate",
		Long:          `covgate filters a coverage report to the files changed by a pull request and reports the result`,
		Version:       global.BinaryVersion,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the coverage check over HTTP",
		RunE:  serve,
	})

	return &rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return reportSetupError(cmd, err)
	}

	r, err := buildRunner(ctx, cfg, cmd, logger)
	if err != nil {
		logger.Errorf("Unable to set up the coverage check: %v", err)
		return reportSetupError(cmd, err)
	}

	logger.Infof("covgate version: %s", global.BinaryVersion)
	summary, err := r.Run(ctx)
	if err != nil {
		logger.Errorf("%s", summary.Failure)
	}
	return err
}

// reportSetupError prints the error note in place of the summary. A check that
// cannot start must not fail the pull request.
func reportSetupError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "[Error] %v\n", err)
	fmt.Fprint(cmd.OutOrStdout(), coverage.ErrorSummary(err).Markdown)
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	maxBody, err := units.FromHumanSize(cfg.MaxReportSize)
	if err != nil {
		return errs.Config("invalid max_report_size", err)
	}

	logger.Infof("covgate version: %s", global.BinaryVersion)
	return server.ListenAndServe(ctx, api.NewRouter(logger, maxBody), cfg, logger)
}

// setup loads the configuration and creates the logger shared by every subcommand.
func setup(cmd *cobra.Command) (*config.Config, lumber.Logger, error) {
	// Load environment variables from .env if available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not read .env file: %v\n", err)
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	instance, err := lumber.ParseInstance(cfg.Logger)
	if err != nil {
		return nil, nil, errs.Config("unknown logger "+cfg.Logger, err)
	}
	logger, err := lumber.NewLogger(cfg.Log, cfg.Verbose, instance)
	if err != nil {
		return nil, nil, errs.Config("could not instantiate logger", err)
	}
	logger.Debugf("Loaded configuration %s", cfg)
	return cfg, logger, nil
}

func buildRunner(ctx context.Context, cfg *config.Config, cmd *cobra.Command, logger lumber.Logger) (*runner.Runner, error) {
	secrets := map[string]string{
		"github.token":                     cfg.GitHub.Token,
		"archive.azure.storage_access_key": cfg.Archive.Azure.StorageAccessKey,
	}
	execManager := command.NewExecutionManager(cfg.Timeout, secrets, logger)

	loader, err := reportloader.New(cfg, execManager, logger)
	if err != nil {
		return nil, err
	}
	changes, err := diffmanager.New(ctx, cfg, execManager, logger)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.New(ctx, cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return nil, err
	}

	var opts []runner.Option
	if cfg.Archive.Enabled {
		store, err := archiveStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runner.WithArchiver(coverage.NewArchiver(store, zstd.New(logger), logger)))
	}
	return runner.New(cfg, loader, changes, pub, logger, opts...), nil
}

func archiveStore(cfg *config.Config, logger lumber.Logger) (core.BlobStore, error) {
	if cfg.UsesAzure() {
		return azure.NewAzureBlobEnv(&cfg.Archive.Azure, logger)
	}
	return fileutils.NewLocalStore(cfg.Archive.Dir, logger), nil
}
