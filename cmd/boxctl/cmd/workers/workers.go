// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package workers

import (
	"fmt"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/spf13/cobra"
)

// The worker stack inside the guest is managed by supervisord. Each sub-command
// runs exactly one fixed command line; no user input is ever interpolated.
const (
	startWorkersCommand   = "sudo supervisorctl start all"
	stopWorkersCommand    = "sudo supervisorctl stop all"
	restartWorkersCommand = "sudo supervisorctl restart all"
	workersStatusCommand  = "sudo supervisorctl status"
)

const workersExample = `  # Restart the worker stack inside the guest
  boxctl workers restart

  # Worker status of a specific machine
  boxctl workers status -m backend
`

var WorkersCmd = &cobra.Command{
	Use:     "workers",
	Short:   "Controls the background worker stack inside the guest",
	Example: workersExample,
}

func init() {
	WorkersCmd.AddCommand(newFixedCmd("start", "Starts all workers inside the guest", startWorkersCommand))
	WorkersCmd.AddCommand(newFixedCmd("stop", "Stops all workers inside the guest", stopWorkersCommand))
	WorkersCmd.AddCommand(newFixedCmd("restart", "Restarts all workers inside the guest", restartWorkersCommand))
	WorkersCmd.AddCommand(newFixedCmd("status", "Prints the worker status reported by the guest", workersStatusCommand))
}

func newFixedCmd(use, short, remoteCommand string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixed(cmd, remoteCommand)
		},
	}
}

func runFixed(cmd *cobra.Command, remoteCommand string) error {
	cmdSession := common.StartCmdSession(cmd.CommandPath())

	target, err := common.ResolveTargetGuest(cmd)
	if err != nil {
		return err
	}

	if err := target.Exec(remoteCommand); err != nil {
		return fmt.Errorf("failed to run worker command on machine '%s': %w", target.Machine.Name, err)
	}

	cmdSession.Finish()

	return nil
}
