// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package version

import (
	"github.com/boxworks/boxctl/cmd/boxctl/common"

	"github.com/boxworks/boxctl/internal/cli"
	ve "github.com/boxworks/boxctl/internal/version"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   cli.VersionFlagName,
	Short: cli.NewVersionFlagHint("boxctl"),
	RunE:  showVersion,
}

func init() {
	VersionCmd.Flags().SortFlags = false
	VersionCmd.Flags().PrintDefaults()
}

func showVersion(ccmd *cobra.Command, args []string) error {
	ve.GetVersion().Print(common.CliName, pterm.Printf)
	return nil
}
