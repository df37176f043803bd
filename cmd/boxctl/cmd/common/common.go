// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package common

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	ul "github.com/boxworks/boxctl/cmd/boxctl/utils/logging"
	"github.com/boxworks/boxctl/internal/core/config"
	"github.com/boxworks/boxctl/internal/core/machine"
	"github.com/boxworks/boxctl/internal/logging"

	"github.com/pterm/pterm"
)

type FailureSeverity uint8
type ContextKey string

type CmdFailure struct {
	Severity          FailureSeverity `json:"severity"`
	Code              string          `json:"code"`
	Message           string          `json:"message"`
	SuppressCliOutput bool
}

type CmdResult struct {
	Failure *CmdFailure `json:"error"`
}

type CmdContext struct {
	config *config.Config
	logger *ul.Slogger
}

type CmdSession struct {
	start   time.Time
	cmdName string
}

type TerminalPrinter interface {
	StartSpinner(m ...any) (any, error)
}

type Spinner interface {
	Stop() error
}

const (
	ErrManagerNotInitializedMsg = "The VM manager has not been initialized on this host yet (no machine index found). Bring up a machine first."

	SeverityWarning FailureSeverity = 3
	SeverityError   FailureSeverity = 4

	ContextKeyCmdContext ContextKey = "cmd-context"

	MachineFlagName      = "machine"
	MachineFlagShorthand = "m"
	MachineFlagUsage     = "Name of the target machine (defaults to the box manifest or the sole machine in the index)"

	OutputFlagName      = "output"
	OutputFlagShorthand = "o"
	OutputFlagUsage     = "Show all logs in terminal"
)

func NewCmdContext(config *config.Config, logger *ul.Slogger) *CmdContext {
	return &CmdContext{config: config, logger: logger}
}

func (c *CmdContext) Config() *config.Config {
	return c.config
}

func (c *CmdContext) Logger() *ul.Slogger {
	return c.logger
}

func StartCmdSession(cmdName string) CmdSession {
	return CmdSession{start: time.Now(), cmdName: cmdName}
}

func (s CmdSession) Finish() {
	PrintCompletedMessage(time.Since(s.start), s.cmdName)
}

func PrintCompletedMessage(duration time.Duration, command string) {
	pterm.Success.Printfln("'%s' completed in %v", command, duration)

	logHint := pterm.LightCyan(fmt.Sprintf("Please see '%s' for more information", logging.GlobalLogFilePath()))

	pterm.Println(logHint)
}

func CreateManagerNotInitializedCmdFailure() *CmdFailure {
	return &CmdFailure{
		Severity: SeverityWarning,
		Code:     machine.ErrIndexNotFound.Error(),
		Message:  ErrManagerNotInitializedMsg,
	}
}

func CreateMachineNotFoundCmdFailure(err error) *CmdFailure {
	return &CmdFailure{
		Severity: SeverityError,
		Code:     machine.ErrMachineNotFound.Error(),
		Message:  err.Error(),
	}
}

func CreateMachineAmbiguousCmdFailure(err error) *CmdFailure {
	return &CmdFailure{
		Severity: SeverityError,
		Code:     machine.ErrMachineAmbiguous.Error(),
		Message:  fmt.Sprintf("%s; select one with '--%s'", err.Error(), MachineFlagName),
	}
}

func CreateMachineNotRunningCmdFailure(err error) *CmdFailure {
	return &CmdFailure{
		Severity: SeverityWarning,
		Code:     machine.ErrMachineNotRunning.Error(),
		Message:  err.Error(),
	}
}

// CreateTargetResolveFailure maps guest/machine lookup errors to CLI failures.
// Unknown errors are passed through unchanged.
func CreateTargetResolveFailure(err error) error {
	switch {
	case errors.Is(err, machine.ErrIndexNotFound):
		return CreateManagerNotInitializedCmdFailure()
	case errors.Is(err, machine.ErrMachineNotFound):
		return CreateMachineNotFoundCmdFailure(err)
	case errors.Is(err, machine.ErrMachineAmbiguous):
		return CreateMachineAmbiguousCmdFailure(err)
	case errors.Is(err, machine.ErrMachineNotRunning):
		return CreateMachineNotRunningCmdFailure(err)
	default:
		return err
	}
}

func StartSpinner(printer TerminalPrinter) (Spinner, error) {
	startResult, err := printer.StartSpinner("Gathering information..")
	if err != nil {
		return nil, err
	}

	spinner, ok := startResult.(Spinner)
	if !ok {
		return nil, errors.New("could not start operation")
	}

	return spinner, nil
}

func StopSpinner(spinner Spinner) {
	if err := spinner.Stop(); err != nil {
		slog.Error("spinner stop", "error", err)
	}
}

func (c *CmdFailure) Error() string {
	return fmt.Sprintf("%s: %s", c.Code, c.Message)
}

func (s FailureSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}
