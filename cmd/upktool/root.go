package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goopsie/upkfile/pkg/build"
	// Blank-imported so the example object-serializer plug-ins register
	// themselves before any command loads a package.
	_ "github.com/goopsie/upkfile/pkg/objectserializers"
)

var (
	flagPlatform  string
	flagTrace     bool
	flagVerbose   bool
	cfgFile       string
)

var rootCmd = &cobra.Command{
	Use:   "upktool",
	Short: "Inspect and round-trip Unreal-style package files",
	Long: `upktool reads and writes the binary package file format shared by
Unreal Engine 1 through 4: Summary header, Name/Import/Export/Depends
tables, and the resolved import/export object graph.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.upktool.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagPlatform, "platform", "undetermined", "platform hint: pc, console, or undetermined")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "record a read trace for every named field")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print non-fatal table/object diagnostics to stdout after loading")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(exportsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(extractCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".upktool")
	}
	viper.SetEnvPrefix("UPKTOOL")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		if p := viper.GetString("platform"); p != "" && !rootCmd.PersistentFlags().Changed("platform") {
			flagPlatform = p
		}
	}
}

// resolvePlatform maps the --platform flag's string form to a
// build.Platform value.
func resolvePlatform() (build.Platform, error) {
	switch strings.ToLower(flagPlatform) {
	case "", "undetermined":
		return build.PlatformUndetermined, nil
	case "pc":
		return build.PlatformPC, nil
	case "console":
		return build.PlatformConsole, nil
	default:
		return build.PlatformUndetermined, fmt.Errorf("unknown platform %q (want pc, console, or undetermined)", flagPlatform)
	}
}
