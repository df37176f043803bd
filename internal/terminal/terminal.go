// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package terminal

import (
	"github.com/pterm/pterm"
)

type TerminalPrinter struct {
}

func NewTerminalPrinter() TerminalPrinter {
	return TerminalPrinter{}
}

func (tp TerminalPrinter) Println(m ...any) {
	pterm.Println(m...)
}

func (tp TerminalPrinter) Printfln(format string, a ...any) {
	pterm.Printfln(format, a...)
}

func (tp TerminalPrinter) PrintHeader(m ...any) {
	pterm.Println(pterm.FgLightCyan.Sprint(pterm.BgBlack.Sprint(m...)))
}

func (tp TerminalPrinter) PrintWarning(m ...any) {
	pterm.Warning.Println(m...)
}

func (tp TerminalPrinter) PrintInfoln(m ...any) {
	pterm.Info.Println(m...)
}

func (tp TerminalPrinter) PrintSuccess(m ...any) {
	pterm.Success.Println(m...)
}

func (tp TerminalPrinter) PrintRedFg(text string) string {
	return pterm.FgRed.Sprint(text)
}

func (tp TerminalPrinter) PrintGreenFg(text string) string {
	return pterm.FgGreen.Sprint(text)
}

func (tp TerminalPrinter) PrintCyanFg(text string) string {
	return pterm.FgCyan.Sprint(text)
}

func (tp TerminalPrinter) PrintTableWithHeaders(table [][]string) {
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(table).Render()
}

func (tp TerminalPrinter) StartSpinner(m ...any) (any, error) {
	pSpinner, err := pterm.DefaultSpinner.WithRemoveWhenDone().Start(m...)
	if err != nil {
		return nil, err
	}

	return pSpinner, nil
}
