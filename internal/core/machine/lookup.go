// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package machine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrMachineNotFound   = errors.New("machine-not-found")
	ErrMachineAmbiguous  = errors.New("machine-ambiguous")
	ErrMachineNotRunning = errors.New("machine-not-running")
)

// FindTarget resolves the single target machine. When a name is given, it must match
// exactly one index entry. Without a name, the index must contain exactly one machine.
func (i *Index) FindTarget(name string) (*Machine, error) {
	if name != "" {
		target, found := lo.Find(i.machines, func(m Machine) bool { return m.Name == name })
		if !found {
			return nil, fmt.Errorf("no machine named '%s' in index: %w", name, ErrMachineNotFound)
		}

		slog.Debug("Target machine found by name", "name", target.Name, "id", target.Id, "state", target.State)
		return &target, nil
	}

	switch len(i.machines) {
	case 0:
		return nil, fmt.Errorf("machine index is empty: %w", ErrMachineNotFound)
	case 1:
		target := i.machines[0]

		slog.Debug("Single machine in index used as target", "name", target.Name, "id", target.Id, "state", target.State)
		return &target, nil
	default:
		names := lo.Map(i.machines, func(m Machine, _ int) string { return m.Name })

		return nil, fmt.Errorf("multiple machines in index (%s), target selection required: %w", strings.Join(names, ", "), ErrMachineAmbiguous)
	}
}

// FindRunningTarget resolves the single target machine and requires it to be running.
func (i *Index) FindRunningTarget(name string) (*Machine, error) {
	target, err := i.FindTarget(name)
	if err != nil {
		return nil, err
	}

	if !target.IsRunning() {
		return nil, fmt.Errorf("machine '%s' is in state '%s': %w", target.Name, target.State, ErrMachineNotRunning)
	}
	return target, nil
}
