// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package status

import (
	"errors"
	"fmt"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"

	"github.com/boxworks/boxctl/internal/core/machine"
	"github.com/boxworks/boxctl/internal/core/manager"
	"github.com/boxworks/boxctl/internal/json"
	"github.com/boxworks/boxctl/internal/terminal"

	"github.com/spf13/cobra"
)

type StatusPrinter interface {
	Print() error
}

type LoadedStatus struct {
	ManagerRunning bool
	Machines       []machine.Machine
}

const (
	outputFlagName = "output"
	wideOption     = "wide"
	jsonOption     = "json"

	statusCommandExample = `
  # Status of the VM manager and its machines
  boxctl status

  # Status with SSH endpoint details
  boxctl status -o wide

  # Status in JSON output format
  boxctl status -o json
`
)

var StatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Prints out status information about the VM manager and its machines",
	RunE:    printStatus,
	Example: statusCommandExample,
}

func init() {
	StatusCmd.Flags().StringP(outputFlagName, "o", "", "Output format modifier. Currently supported: 'wide' for more information and 'json' for output as JSON structure")
	StatusCmd.Flags().SortFlags = false
	StatusCmd.Flags().PrintDefaults()
}

func printStatus(cmd *cobra.Command, args []string) error {
	outputOption, err := cmd.Flags().GetString(outputFlagName)
	if err != nil {
		return err
	}

	if outputOption != "" && outputOption != wideOption && outputOption != jsonOption {
		return fmt.Errorf("parameter '%s' not supported for flag 'o'", outputOption)
	}

	terminalPrinter := terminal.NewTerminalPrinter()

	context := cmd.Context().Value(common.ContextKeyCmdContext).(*common.CmdContext)
	config := context.Config()

	loadFunc := func() (*LoadedStatus, error) {
		running, err := manager.IsProcessRunning(config.Manager.ProcessName)
		if err != nil {
			return nil, err
		}

		index, err := machine.LoadIndex(config.Manager.DataDir)
		if err != nil {
			return nil, err
		}

		return &LoadedStatus{ManagerRunning: running, Machines: index.Machines()}, nil
	}

	var printer StatusPrinter
	if outputOption == jsonOption {
		printer = NewJsonPrinter(terminalPrinter.Println, json.MarshalIndent, loadFunc)
	} else {
		printer = NewUserFriendlyPrinter(config.Manager.ProcessName, outputOption == wideOption, terminalPrinter, loadFunc)
	}

	if err := printer.Print(); err != nil {
		if errors.Is(err, machine.ErrIndexNotFound) {
			if outputOption == jsonOption {
				return printNotInitializedJson(terminalPrinter.Println)
			}
			return common.CreateManagerNotInitializedCmdFailure()
		}
		return err
	}

	return nil
}

func printNotInitializedJson(printlnFunc func(m ...any)) error {
	errCode := machine.ErrIndexNotFound.Error()
	status := PrintStatus{
		Error: &errCode,
	}

	bytes, err := json.MarshalIndent(status)
	if err != nil {
		return err
	}

	printlnFunc(string(bytes))

	failure := common.CreateManagerNotInitializedCmdFailure()
	failure.SuppressCliOutput = true

	return failure
}
