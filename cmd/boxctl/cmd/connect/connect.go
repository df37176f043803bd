// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package connect

import (
	"fmt"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/spf13/cobra"
)

const (
	longDescription = `Connects to the target guest machine.

This command uses the system OpenSSH client to open an interactive session.

Since boxctl does not maintain this ssh binary, make sure it is up-to-date.
Check the client version with 'ssh -V'.
`
	example = `# Connect to the guest
boxctl connect

# Connect to a specific machine
boxctl connect -m backend
`
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connect",
		Short:   "Connects to the target guest machine.",
		Long:    longDescription,
		Example: example,
		RunE:    connect,
	}

	return cmd
}

func connect(cmd *cobra.Command, args []string) error {
	cmdSession := common.StartCmdSession(cmd.CommandPath())

	target, err := common.ResolveTargetGuest(cmd)
	if err != nil {
		return err
	}

	if err := target.Connect(); err != nil {
		return fmt.Errorf("failed to connect to machine '%s': %w", target.Machine.Name, err)
	}

	cmdSession.Finish()

	return nil
}
