// Package config provides configuration types and defaults for the
// deployment registry CLI.
package config

// Config holds all configuration options.
type Config struct {
	// SiteDir is the root directory of the deploy target where the
	// version manifest lives.
	SiteDir string `mapstructure:"site_dir"`

	// Prefix is an optional subdirectory under SiteDir holding the
	// manifest, mirroring deployments that share one target.
	Prefix string `mapstructure:"prefix"`

	// ManifestName is the file name of the persisted registry document.
	ManifestName string `mapstructure:"manifest_name"`

	// Branch names the storage branch a publishing backend should use.
	// The registry itself never inspects it; it is carried opaquely.
	Branch string `mapstructure:"branch"`

	// UpdateAliases allows alias reassignment by default, without
	// passing --update-aliases on every call.
	UpdateAliases bool `mapstructure:"update_aliases"`

	// DebugLog is the path of the debug log file written when --debug
	// is set.
	DebugLog string `mapstructure:"debug_log"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SiteDir:      ".",
		ManifestName: "versions.json",
		Branch:       "gh-pages",
		DebugLog:     "mike-debug.log",
	}
}
