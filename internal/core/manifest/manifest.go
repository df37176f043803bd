// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

type Manifest struct {
	ApiVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

type Metadata struct {
	Name string `yaml:"name"`
}

type Spec struct {
	RemoteUser string `yaml:"remoteUser"`
}

const (
	FileName = "box.yaml"

	expectedKind = "Box"
)

var (
	ErrManifestNotFound = errors.New("manifest-not-found")

	supportedApiVersions = []string{"v1"}

	//go:embed embed/box.schema.json
	manifestSchema string

	compiledManifestSchema = jsonschema.MustCompileString("box.schema.json", manifestSchema)
)

// Load reads the per-project box manifest from the given directory.
// Returns ErrManifestNotFound when the directory contains no manifest.
func Load(dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, FileName)

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No box manifest in dir", "dir", dir)

			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("error occurred while reading manifest '%s': %w", manifestPath, err)
	}

	var genericContent any
	if err := yaml.Unmarshal(content, &genericContent); err != nil {
		return nil, fmt.Errorf("error occurred while unmarshalling manifest '%s': %w", manifestPath, err)
	}

	if err := compiledManifestSchema.Validate(genericContent); err != nil {
		return nil, fmt.Errorf("manifest '%s' violates schema: %w", manifestPath, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("error occurred while unmarshalling manifest '%s': %w", manifestPath, err)
	}

	if err := validateManifest(manifest); err != nil {
		return nil, fmt.Errorf("manifest '%s' invalid: %w", manifestPath, err)
	}

	slog.Debug("Box manifest loaded", "path", manifestPath, "machine-name", manifest.Metadata.Name)

	return &manifest, nil
}

func validateManifest(manifest Manifest) error {
	if !slices.Contains(supportedApiVersions, manifest.ApiVersion) {
		return fmt.Errorf("apiVersion '%s' invalid; supported versions are (%s)", manifest.ApiVersion, strings.Join(supportedApiVersions, "|"))
	}
	if manifest.Kind != expectedKind {
		return fmt.Errorf("kind '%s' invalid; expected '%s'", manifest.Kind, expectedKind)
	}
	return nil
}
