package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes cfg as a commented YAML document. Existing files are not
// overwritten unless force is set.
func Save(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	doc := yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			{
				Kind: yaml.MappingNode,
				Content: []*yaml.Node{
					scalar("site_dir", "root directory of the deploy target"),
					scalar(cfg.SiteDir, ""),
					scalar("prefix", "optional subdirectory holding the manifest"),
					scalar(cfg.Prefix, ""),
					scalar("manifest_name", "file name of the version manifest"),
					scalar(cfg.ManifestName, ""),
					scalar("branch", "storage branch for publishing backends"),
					scalar(cfg.Branch, ""),
					scalar("update_aliases", "allow alias reassignment by default"),
					boolScalar(cfg.UpdateAliases),
					scalar("debug_log", "debug log file used with --debug"),
					scalar(cfg.DebugLog, ""),
				},
			},
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func scalar(value, comment string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, HeadComment: comment}
}

func boolScalar(value bool) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	if value {
		n.Value = "true"
	} else {
		n.Value = "false"
	}
	return n
}
