// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package copy

import (
	"fmt"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"

	"github.com/spf13/cobra"
)

const (
	sourceFlag  = "source"
	targetFlag  = "target"
	reverseFlag = "reverse"

	longDescription = "Copies files or directories between the host and the target guest machine."
	example         = `# Copy a local file to the guest's home dir
boxctl copy -s C:\tmp\myFile -t ~/myFile

# Copy a directory from the guest to the host
boxctl copy -r -s ~/myDir -t /tmp/myDir
`
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy",
		Short:   "Copies files or directories between host and guest.",
		Long:    longDescription,
		Example: example,
		RunE:    copyFiles,
	}

	cmd.Flags().StringP(sourceFlag, "s", "", "[required] Source path")
	cmd.Flags().StringP(targetFlag, "t", "", "[required] Target path")
	cmd.Flags().BoolP(reverseFlag, "r", false, "Copy from the guest to the host instead")

	cmd.MarkFlagRequired(sourceFlag)
	cmd.MarkFlagRequired(targetFlag)

	cmd.Flags().SortFlags = false
	cmd.Flags().PrintDefaults()

	return cmd
}

func copyFiles(cmd *cobra.Command, args []string) error {
	cmdSession := common.StartCmdSession(cmd.CommandPath())

	copyOptions, err := readCopyOptions(cmd)
	if err != nil {
		return err
	}

	target, err := common.ResolveTargetGuest(cmd)
	if err != nil {
		return err
	}

	if err := target.Copy(*copyOptions); err != nil {
		return fmt.Errorf("failed to copy '%s' to '%s' on machine '%s': %w", copyOptions.Source, copyOptions.Target, target.Machine.Name, err)
	}

	cmdSession.Finish()

	return nil
}

func readCopyOptions(cmd *cobra.Command) (*contracts.CopyOptions, error) {
	source, err := cmd.Flags().GetString(sourceFlag)
	if err != nil {
		return nil, err
	}

	targetPath, err := cmd.Flags().GetString(targetFlag)
	if err != nil {
		return nil, err
	}

	reverse, err := cmd.Flags().GetBool(reverseFlag)
	if err != nil {
		return nil, err
	}

	direction := contracts.CopyToGuest
	if reverse {
		direction = contracts.CopyFromGuest
	}

	return &contracts.CopyOptions{
		Source:    source,
		Target:    targetPath,
		Direction: direction,
	}, nil
}
