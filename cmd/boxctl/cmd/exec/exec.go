// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package exec

import (
	"fmt"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/spf13/cobra"
)

const (
	commandFlag     = "command"
	longDescription = "Executes a command on the target guest machine."
	example         = `# Execute a command on the guest
boxctl exec -c "echo 'Hello, World!'"

# Execute a command on a specific machine
boxctl exec -m backend -c "uptime"
`
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exec",
		Short:   "Executes a command on the target guest machine.",
		Long:    longDescription,
		Example: example,
		RunE:    exec,
	}

	cmd.Flags().StringP(commandFlag, "c", "", "[required] Command to execute")

	cmd.MarkFlagRequired(commandFlag)

	cmd.Flags().SortFlags = false
	cmd.Flags().PrintDefaults()

	return cmd
}

func exec(cmd *cobra.Command, args []string) error {
	cmdSession := common.StartCmdSession(cmd.CommandPath())

	command, err := cmd.Flags().GetString(commandFlag)
	if err != nil {
		return err
	}

	target, err := common.ResolveTargetGuest(cmd)
	if err != nil {
		return err
	}

	if err := target.Exec(command); err != nil {
		return fmt.Errorf("failed to exec on machine '%s': %w", target.Machine.Name, err)
	}

	cmdSession.Finish()

	return nil
}
