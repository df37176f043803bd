// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package machine

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	bjson "github.com/boxworks/boxctl/internal/json"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type State string

type SshEndpoint struct {
	Host           string `json:"host"`
	Port           uint16 `json:"port"`
	User           string `json:"user"`
	PrivateKeyPath string `json:"privateKeyPath"`
}

type Machine struct {
	Id        string      `json:"-"`
	Name      string      `json:"name"`
	Provider  string      `json:"provider"`
	State     State       `json:"state"`
	DataDir   string      `json:"dataDir"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Ssh       SshEndpoint `json:"ssh"`
}

type Index struct {
	machines []Machine
}

type indexJson struct {
	Version  int                `json:"version"`
	Machines map[string]Machine `json:"machines"`
}

const (
	StateRunning    State = "running"
	StateStopped    State = "stopped"
	StateSaved      State = "saved"
	StateNotCreated State = "not_created"

	IndexFileName   = "index.json"
	indexSubDirName = "machine-index"

	supportedIndexVersion = 1
)

var ErrIndexNotFound = errors.New("machine-index-not-found")

//go:embed embed/index.schema.json
var indexSchema string

var compiledIndexSchema = jsonschema.MustCompileString("index.schema.json", indexSchema)

// IndexPath returns the machine index file path underneath the VM manager's data dir.
func IndexPath(dataDir string) string {
	return filepath.Join(dataDir, indexSubDirName, IndexFileName)
}

// LoadIndex reads and validates the machine index maintained by the VM manager.
func LoadIndex(dataDir string) (*Index, error) {
	indexPath := IndexPath(dataDir)

	if err := validateAgainstSchema(indexPath); err != nil {
		return nil, err
	}

	index, err := bjson.FromFile[indexJson](indexPath)
	if err != nil {
		return nil, fmt.Errorf("error occurred while loading machine index: %w", err)
	}

	if index.Version != supportedIndexVersion {
		return nil, fmt.Errorf("unsupported machine index version %d, supported version is %d", index.Version, supportedIndexVersion)
	}

	machines := lo.MapToSlice(index.Machines, func(id string, machine Machine) Machine {
		machine.Id = id
		return machine
	})

	for _, machine := range machines {
		if _, err := uuid.Parse(machine.Id); err != nil {
			return nil, fmt.Errorf("machine id '%s' is not a valid UUID: %w", machine.Id, err)
		}
	}

	sort.Slice(machines, func(i, j int) bool { return machines[i].Name < machines[j].Name })

	slog.Debug("Machine index loaded", "path", indexPath, "machine-count", len(machines))

	return &Index{machines: machines}, nil
}

func (i *Index) Machines() []Machine {
	return i.machines
}

func (m Machine) IsRunning() bool {
	return m.State == StateRunning
}

func validateAgainstSchema(indexPath string) error {
	content, err := os.ReadFile(indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("Machine index not found, assuming VM manager is not initialized", "path", indexPath)

			return ErrIndexNotFound
		}
		return fmt.Errorf("error occurred while reading machine index '%s': %w", indexPath, err)
	}

	var genericContent any
	if err := json.Unmarshal(content, &genericContent); err != nil {
		return fmt.Errorf("error occurred while unmarshalling machine index '%s': %w", indexPath, err)
	}

	if err := compiledIndexSchema.Validate(genericContent); err != nil {
		return fmt.Errorf("machine index '%s' violates schema: %w", indexPath, err)
	}
	return nil
}
