package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/goplus/hxbuild/internal/build"
	"github.com/goplus/hxbuild/internal/config"
	"github.com/spf13/cobra"
)

var buildConfig string
var buildArchive string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the Haxe sources",
	Long: `Build downloads Node.js if needed, bootstraps lix and the Haxe compiler,
installs the haxelibs and compiles the sources.

Settings come from hxbuild.yaml (or --config), HXBUILD_* environment
variables and flags, flags taking precedence.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildConfig, "config", "c", "", "Configuration file (default ./hxbuild.yaml)")
	buildCmd.Flags().StringVarP(&buildArchive, "archive", "a", "", "Also pack the output directory into this .zip file")
	config.RegisterFlags(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(buildConfig, cmd.Flags())
	if err != nil {
		return err
	}
	setVerbose(cfg.Verbose)

	// Resolve archive path before build, the compiler runs elsewhere
	if buildArchive != "" {
		abs, err := filepath.Abs(buildArchive)
		if err != nil {
			return fmt.Errorf("failed to resolve archive path: %w", err)
		}
		buildArchive = abs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := build.New(cfg).Run(ctx)
	if err != nil {
		return err
	}
	printResult(cmd, res)

	if buildArchive != "" {
		if err := zipDir(res.OutputDir, buildArchive); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "archive:", buildArchive)
	}
	return nil
}

func printResult(cmd *cobra.Command, res *build.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "haxe", res.CommandLine)
	for _, lib := range res.Libraries {
		fmt.Fprintln(out, "lib:", lib)
	}
	fmt.Fprintln(out, "output:", res.OutputDir)
}
