// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package manager

import (
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v3/process"
)

// IsProcessRunning reports whether the VM manager process is alive on the host.
func IsProcessRunning(processName string) (bool, error) {
	processes, err := process.Processes()
	if err != nil {
		return false, fmt.Errorf("failed to list host processes: %w", err)
	}

	for _, p := range processes {
		name, err := p.Name()
		if err != nil {
			// processes can vanish while iterating
			continue
		}
		if name == processName {
			slog.Debug("VM manager process found", "name", processName, "pid", p.Pid)
			return true, nil
		}
	}

	slog.Debug("VM manager process not found", "name", processName)
	return false, nil
}
