// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package common

import (
	"fmt"

	"github.com/boxworks/boxctl/internal/core/guest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// MachineNameFromFlags reads the target machine name from the given flag set.
func MachineNameFromFlags(flags *pflag.FlagSet) (string, error) {
	return flags.GetString(MachineFlagName)
}

// ResolveTargetGuest resolves the single target guest for the given command invocation,
// mapping lookup errors to CLI failures.
func ResolveTargetGuest(cmd *cobra.Command) (*guest.Guest, error) {
	machineName, err := MachineNameFromFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	cmdContext, ok := cmd.Context().Value(ContextKeyCmdContext).(*CmdContext)
	if !ok {
		return nil, fmt.Errorf("no command context found")
	}

	target, err := guest.Resolve(cmdContext.Config(), machineName)
	if err != nil {
		return nil, CreateTargetResolveFailure(err)
	}
	return target, nil
}
