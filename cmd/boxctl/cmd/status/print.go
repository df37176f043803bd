// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package status

import (
	"fmt"
	"log/slog"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"

	"github.com/boxworks/boxctl/internal/core/machine"
)

type TerminalPrinter interface {
	Println(m ...any)
	PrintCyanFg(text string) string
	PrintRedFg(text string) string
	PrintGreenFg(text string) string
	PrintHeader(m ...any)
	StartSpinner(m ...any) (any, error)
	PrintSuccess(m ...any)
	PrintInfoln(m ...any)
	PrintWarning(m ...any)
	PrintTableWithHeaders(table [][]string)
}

type JsonPrinter struct {
	basePrinter
	printlnFunc       func(m ...any)
	marshalIndentFunc func(data any) ([]byte, error)
}

type UserFriendlyPrinter struct {
	basePrinter
	managerProcessName string
	showAdditionalInfo bool
	terminalPrinter    TerminalPrinter
}

type PrintStatus struct {
	ManagerRunning *bool             `json:"managerRunning"`
	Machines       []machine.Machine `json:"machines"`
	Error          *string           `json:"error"`
}

type basePrinter struct {
	loadFunc func() (*LoadedStatus, error)
}

func NewJsonPrinter(
	printlnFunc func(m ...any),
	marshalIndentFunc func(data any) ([]byte, error),
	loadFunc func() (*LoadedStatus, error)) *JsonPrinter {
	return &JsonPrinter{
		basePrinter:       basePrinter{loadFunc: loadFunc},
		printlnFunc:       printlnFunc,
		marshalIndentFunc: marshalIndentFunc,
	}
}

func NewUserFriendlyPrinter(
	managerProcessName string,
	showAdditionalInfo bool,
	terminalPrinter TerminalPrinter,
	loadFunc func() (*LoadedStatus, error)) *UserFriendlyPrinter {
	return &UserFriendlyPrinter{
		basePrinter:        basePrinter{loadFunc: loadFunc},
		managerProcessName: managerProcessName,
		showAdditionalInfo: showAdditionalInfo,
		terminalPrinter:    terminalPrinter,
	}
}

func (p *JsonPrinter) Print() error {
	loadedStatus, err := p.loadFunc()
	if err != nil {
		return err
	}

	printStatus := PrintStatus{
		ManagerRunning: &loadedStatus.ManagerRunning,
		Machines:       loadedStatus.Machines,
	}

	bytes, err := p.marshalIndentFunc(printStatus)
	if err != nil {
		return err
	}

	statusJson := string(bytes)

	slog.Debug("Printing", "json", statusJson)

	p.printlnFunc(statusJson)

	return nil
}

func (p *UserFriendlyPrinter) Print() error {
	spinner, err := common.StartSpinner(p.terminalPrinter)
	if err != nil {
		return err
	}

	status, err := p.loadFunc()

	common.StopSpinner(spinner)

	if err != nil {
		return err
	}

	p.terminalPrinter.PrintHeader("BOX SYSTEM STATUS")

	processText := p.terminalPrinter.PrintCyanFg(p.managerProcessName)

	if status.ManagerRunning {
		p.terminalPrinter.PrintSuccess(fmt.Sprintf("The VM manager '%s' is running", processText))
	} else {
		p.terminalPrinter.PrintWarning(fmt.Sprintf("The VM manager '%s' is not running", processText))
	}

	p.terminalPrinter.Println()

	p.printMachinesStatus(status.Machines, p.showAdditionalInfo)

	return nil
}

func (p *UserFriendlyPrinter) printMachinesStatus(machines []machine.Machine, showAdditionalInfo bool) {
	if len(machines) == 0 {
		p.terminalPrinter.PrintInfoln("No machines found in the index")
		return
	}

	headers := createMachineHeaders(showAdditionalInfo)

	table := [][]string{headers}

	rows, allRunning := p.buildMachineRows(machines, showAdditionalInfo)

	table = append(table, rows...)

	p.terminalPrinter.PrintTableWithHeaders(table)

	if allRunning {
		p.terminalPrinter.PrintSuccess("All machines are running")
	} else {
		p.terminalPrinter.PrintWarning("Some machines are not running")
	}

	p.terminalPrinter.Println()
}

func createMachineHeaders(showAdditionalInfo bool) []string {
	headers := []string{"STATE", "NAME", "PROVIDER", "UPDATED"}

	if showAdditionalInfo {
		headers = append(headers, "SSH-HOST", "SSH-PORT", "SSH-USER")
	}

	return headers
}

func (p *UserFriendlyPrinter) buildMachineRows(machines []machine.Machine, showAdditionalInfo bool) ([][]string, bool) {
	allRunning := true
	var rows [][]string

	for _, m := range machines {
		row := p.buildMachineRow(m, showAdditionalInfo)
		if !m.IsRunning() {
			allRunning = false
		}

		rows = append(rows, row)
	}

	return rows, allRunning
}

func (p *UserFriendlyPrinter) buildMachineRow(m machine.Machine, showAdditionalInfo bool) []string {
	state := p.determineStatusColor(m.IsRunning(), string(m.State))

	row := []string{state, m.Name, m.Provider, m.UpdatedAt.Format("2006-01-02 15:04:05")}

	if showAdditionalInfo {
		row = append(row, m.Ssh.Host, fmt.Sprintf("%d", m.Ssh.Port), m.Ssh.User)
	}

	return row
}

func (p *UserFriendlyPrinter) determineStatusColor(isOkay bool, status string) string {
	if isOkay {
		return p.terminalPrinter.PrintGreenFg(status)
	}
	return p.terminalPrinter.PrintRedFg(status)
}
