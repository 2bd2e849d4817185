// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the imgmerge CLI, which converts a
// folder of images into a single PDF with one page per image.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/imgmerge/internal/pipeline"
	"github.com/pdiddy/imgmerge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts and merges; subcommands only cover housekeeping.
var rootCmd = &cobra.Command{
	Use:   "imgmerge",
	Short: "Convert a folder of images into a single PDF",
	Long: `imgmerge converts every .jpg, .jpeg and .png file directly inside a
folder into a one-page PDF, then merges the pages into a single document in
filename order. --quality scales both image dimensions by a percentage
before conversion; 100 keeps the original size.

Defaults can be set in imgmerge.yaml (current directory or
~/.config/imgmerge/) or through IMGMERGE_* environment variables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMerge,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./imgmerge.yaml or ~/.config/imgmerge/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion details to stderr")

	rootCmd.Flags().StringP("folder", "f", "", "folder containing images (required)")
	rootCmd.Flags().IntP("quality", "q", types.DefaultQuality, "scale both dimensions to this percentage (1-100)")
	rootCmd.Flags().StringP("output", "o", types.DefaultOutput, "output PDF filename")
	rootCmd.Flags().String("manifest", "", "write a YAML report of the merged pages to this path")

	for _, name := range []string{"folder", "quality", "output", "manifest"} {
		_ = viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
	setDefaults(viper.GetViper())
}

// setDefaults registers the settings that have no flag.
func setDefaults(v *viper.Viper) {
	v.SetDefault("quality", types.DefaultQuality)
	v.SetDefault("output", types.DefaultOutput)
	v.SetDefault("dpi", types.DefaultDPI)
	v.SetDefault("jpeg_quality", types.DefaultJPEGQuality)
	v.SetDefault("resample", string(types.ResampleCatmullRom))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("imgmerge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "imgmerge"))
		}
	}

	viper.SetEnvPrefix("IMGMERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, file, and environment settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runMerge(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	logger.Debug("configuration",
		zap.String("folder", cfg.Folder),
		zap.Int("quality", cfg.Quality),
		zap.String("output", cfg.Output),
		zap.Int("dpi", cfg.DPI),
		zap.String("resample", string(cfg.Resample)),
	)

	p, err := pipeline.NewDefault(cfg.PageConfig, logger)
	if err != nil {
		return err
	}
	_, err = p.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	return err
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
