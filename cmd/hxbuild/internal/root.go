package internal

import (
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hxbuild",
	Short: "hxbuild compiles Haxe projects",
	Long: `hxbuild compiles Haxe projects with a private Node.js runtime.
It installs lix and the requested compiler, resolves haxelibs and copies
the compiler output to the output directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func setVerbose(verbose bool) {
	if verbose {
		log.SetOutputLevel(log.Ldebug)
	}
}
