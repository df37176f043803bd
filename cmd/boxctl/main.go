// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/boxworks/boxctl/cmd/boxctl/cmd"
	"github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/boxworks/boxctl/cmd/boxctl/utils/logging"
	"github.com/boxworks/boxctl/internal/cli"
	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"

	"github.com/pterm/pterm"
)

func main() {
	exitCode := cli.ExitCodeSuccess

	logger := logging.NewSlogger()

	defer func() {
		if err := recover(); err != nil {
			exitCode = cli.ExitCodeFailure
			handleUnexpectedError(err)
		}

		logger.Flush()
		logger.Close()
		os.Exit(int(exitCode))
	}()

	rootCmd, err := cmd.CreateRootCmd(logger)
	if err != nil {
		exitCode = cli.ExitCodeFailure
		slog.Error("error occurred during root command creation", "error", err)
		return
	}

	err = rootCmd.Execute()
	if err == nil {
		return
	}

	// a remote command that ran but failed forwards its exit status unchanged
	var exitErr *contracts.ExitError
	if errors.As(err, &exitErr) {
		exitCode = cli.ExitCode(exitErr.Code)
		slog.Error("remote command failed", "exit-code", exitErr.Code)
		return
	}

	exitCode = cli.ExitCodeFailure

	var cmdFailure *common.CmdFailure
	if !errors.As(err, &cmdFailure) {
		handleUnexpectedError(err)
		return
	}

	if !cmdFailure.SuppressCliOutput {
		switch cmdFailure.Severity {
		case common.SeverityWarning:
			pterm.Warning.Println(cmdFailure.Message)
		case common.SeverityError:
			pterm.Error.Println(cmdFailure.Message)
		default:
			slog.Warn("unknown cmd failure severity", "severity", cmdFailure.Severity)
		}
	}

	slog.Error("command failed",
		"severity", fmt.Sprintf("%d(%s)", cmdFailure.Severity, cmdFailure.Severity),
		"code", cmdFailure.Code,
		"message", cmdFailure.Message,
		"suppressCliOutput", cmdFailure.SuppressCliOutput)
}

func handleUnexpectedError(err any) {
	pterm.Error.Println(fmt.Errorf("%v", err))

	slog.Error("unexpected error", "error", err)
}
