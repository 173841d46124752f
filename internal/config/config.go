// Package config overlays an optional YAML file onto the default tag
// policy options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tagmint/tagmint"
)

// FileName is the config file looked up in the repository root when no
// explicit path is given.
const FileName = ".tagmint.yaml"

// File is the on-disk shape. Every field is optional; absent fields keep
// their default.
type File struct {
	Projects            []string `yaml:"projects"`
	Mainline            []string `yaml:"mainline"`
	Remote              string   `yaml:"remote"`
	FirstDevelopmentTag string   `yaml:"first_development_tag"`
	FirstReleaseTag     string   `yaml:"first_release_tag"`
}

// Load overlays the file at path onto opt. When path is empty, the
// default file in repoRoot is used and its absence is not an error; an
// explicitly given path must exist.
func Load(opt tagmint.Options, repoRoot, path string) (tagmint.Options, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(repoRoot, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return opt, nil
		}
		return opt, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return opt, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(f.Projects) > 0 {
		opt.Projects = f.Projects
	}
	if len(f.Mainline) > 0 {
		opt.MainlineCandidates = f.Mainline
	}
	if f.Remote != "" {
		opt.Remote = f.Remote
	}
	if f.FirstDevelopmentTag != "" {
		opt.FirstDevelopmentTag = f.FirstDevelopmentTag
	}
	if f.FirstReleaseTag != "" {
		opt.FirstReleaseTag = f.FirstReleaseTag
	}

	return opt, nil
}
