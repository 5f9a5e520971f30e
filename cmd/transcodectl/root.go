package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/transcodectl/internal/config"
	"github.com/danmuck/transcodectl/internal/dispatch"
	"github.com/danmuck/transcodectl/internal/observability"
	"github.com/danmuck/transcodectl/internal/operations"
	"github.com/danmuck/transcodectl/internal/tools"
	"github.com/danmuck/transcodectl/internal/transcode"
)

var errStrict = errors.New("one or more operations did not succeed")

type rootOptions struct {
	configPath      string
	input           string
	outputDir       string
	ffmpeg          string
	ffprobe         string
	timeout         time.Duration
	dryRun          bool
	strict          bool
	metricsTextfile string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:   "transcodectl [operation ...]",
		Short: "Run named ffmpeg operations against one input video",
		Long: "Run named ffmpeg operations against one input video.\n\n" +
			"Operations are given as arguments or, when none are given, typed at the\n" +
			"prompt as a comma separated list. Run `transcodectl list` for the names.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildAppConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runOperations(cmd, cfg, opts.strict, args, tools.ExecRunner{})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to transcodectl.toml (env "+EnvConfigPath+")")
	flags.StringVarP(&opts.input, "input", "i", "", "input video file")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for results (default: input file directory)")
	flags.StringVar(&opts.ffmpeg, "ffmpeg", "", "ffmpeg executable (default \"ffmpeg\" on PATH)")
	flags.StringVar(&opts.ffprobe, "ffprobe", "", "ffprobe executable (default \"ffprobe\" on PATH)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-operation time limit, 0 for none (default 30m)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the commands instead of running them")
	flags.BoolVar(&opts.strict, "strict", false, "exit non-zero when any operation fails or is unknown")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file when done")

	cmd.AddCommand(newListCommand(), newInitCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOperationList(cmd.OutOrStdout(), operations.DefaultRegistry())
		},
	}
}

func newInitCommand() *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + defaultConfigFile,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(output, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config template to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", defaultConfigFile, "output path for the config template")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func writeOperationList(w io.Writer, registry *operations.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, op := range registry.List() {
		output := op.OutputFile
		if output == "" {
			output = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Name, output, op.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// buildAppConfig layers defaults, then the config file, then flags.
func buildAppConfig(cmd *cobra.Command, opts rootOptions) (appConfig, error) {
	cfg, err := loadAppConfig(resolveConfigPath(opts.configPath))
	if err != nil {
		return appConfig{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Transcode.InputPath = opts.input
	}
	if flags.Changed("output-dir") {
		cfg.Transcode.OutputDir = opts.outputDir
	}
	if flags.Changed("ffmpeg") {
		cfg.Transcode.FFmpegPath = opts.ffmpeg
	}
	if flags.Changed("ffprobe") {
		cfg.Transcode.FFprobePath = opts.ffprobe
	}
	if flags.Changed("timeout") {
		cfg.Transcode.Timeout = opts.timeout
	}
	if flags.Changed("dry-run") {
		cfg.Transcode.DryRun = opts.dryRun
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = opts.metricsTextfile
	}
	cfg.Transcode = cfg.Transcode.WithDefaults()
	if err := cfg.Transcode.Validate(); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func runOperations(cmd *cobra.Command, cfg appConfig, strict bool, args []string, runner tools.CommandRunner) error {
	invoker := transcode.NewInvoker(cfg.Transcode, runner)
	for _, err := range invoker.Preflight() {
		log.Warn().Err(err).Msg("transcodectl.preflight")
	}

	line := dispatch.JoinArgs(args)
	if len(args) == 0 {
		var err error
		line, err = dispatch.ReadRequest(cmd.InOrStdin(), cmd.OutOrStdout(), dispatch.Prompt)
		if err != nil {
			return err
		}
	}

	d := dispatch.NewDispatcher(operations.DefaultRegistry(), invoker, cmd.OutOrStdout())
	summary := d.Run(cmd.Context(), line)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Error().Err(err).Msg("transcodectl.metrics")
		}
	}
	if strict && !summary.OK() {
		return fmt.Errorf("%w (failed=%d unknown=%d)", errStrict, summary.Failed, len(summary.Unknown))
	}
	return nil
}
