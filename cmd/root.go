package cmd

import (
	"errors"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ELGA-GmbH/mike-multi-project/internal/config"
	"github.com/ELGA-GmbH/mike-multi-project/internal/log"
)

var (
	cfgFile string
	debug   bool
	cfg     config.Config

	// logger is the user-facing stderr logger; the debug file logger in
	// internal/log is separate and only active with --debug.
	logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
	})
)

var rootCmd = &cobra.Command{
	Use:   "mike",
	Short: "Manage versioned documentation deployments across components",
	Long: `Maintain a registry of named, versioned documentation deployments
grouped under independent components. Each version carries an identifier,
a display title and a set of mutable aliases; the registry is persisted
as a JSON manifest consulted before every deployment operation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debug || os.Getenv("MIKE_DEBUG") != "" {
			cleanup, err := log.Init(cfg.DebugLog)
			if err != nil {
				return err
			}
			cobra.OnFinalize(cleanup)
			log.Debug(log.CatCLI, "command started", "name", cmd.Name())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .mike/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (see debug_log in config)")
	rootCmd.PersistentFlags().StringP("site-dir", "d", "",
		"root directory of the deploy target")
	rootCmd.PersistentFlags().String("prefix", "",
		"subdirectory under the deploy root holding the manifest")
	rootCmd.PersistentFlags().String("manifest", "",
		"file name of the version manifest")
	rootCmd.PersistentFlags().StringP("branch", "b", "",
		"storage branch for publishing backends")

	// Bind flags to viper
	_ = viper.BindPFlag("site_dir", rootCmd.PersistentFlags().Lookup("site-dir"))
	_ = viper.BindPFlag("prefix", rootCmd.PersistentFlags().Lookup("prefix"))
	_ = viper.BindPFlag("manifest_name", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("branch", rootCmd.PersistentFlags().Lookup("branch"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("site_dir", defaults.SiteDir)
	viper.SetDefault("prefix", defaults.Prefix)
	viper.SetDefault("manifest_name", defaults.ManifestName)
	viper.SetDefault("branch", defaults.Branch)
	viper.SetDefault("update_aliases", defaults.UpdateAliases)
	viper.SetDefault("debug_log", defaults.DebugLog)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .mike/config.yaml (current directory)
		// 2. ~/.config/mike-multi-project/config.yaml (user config)
		if _, err := os.Stat(".mike/config.yaml"); err == nil {
			viper.SetConfigFile(".mike/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "mike-multi-project"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("MIKE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			logger.Warn("could not read config file", "path", cfgFile, "error", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Warn("invalid configuration", "error", err)
		cfg = config.Defaults()
	}
}

// SetVersion sets the version string shown by --version.
func SetVersion(version string) {
	rootCmd.Version = version
}

// Execute runs the root command, reporting any error on stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}
