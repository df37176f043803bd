// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package cmd

import (
	"context"
	"log/slog"

	cc "github.com/boxworks/boxctl/cmd/boxctl/cmd/common"
	"github.com/boxworks/boxctl/cmd/boxctl/cmd/connect"
	cp "github.com/boxworks/boxctl/cmd/boxctl/cmd/copy"
	ex "github.com/boxworks/boxctl/cmd/boxctl/cmd/exec"
	stat "github.com/boxworks/boxctl/cmd/boxctl/cmd/status"
	ve "github.com/boxworks/boxctl/cmd/boxctl/cmd/version"
	"github.com/boxworks/boxctl/cmd/boxctl/cmd/workers"
	"github.com/boxworks/boxctl/cmd/boxctl/common"
	"github.com/boxworks/boxctl/cmd/boxctl/utils/logging"
	"github.com/boxworks/boxctl/internal/cli"
	"github.com/boxworks/boxctl/internal/core/config"
	"github.com/boxworks/boxctl/internal/host"
	bl "github.com/boxworks/boxctl/internal/logging"

	"github.com/spf13/cobra"
)

func CreateRootCmd(logger *logging.Slogger) (*cobra.Command, error) {
	verbosity := bl.LevelToLowerString(slog.LevelInfo)
	showLog := false

	cmd := &cobra.Command{
		Use:               common.CliName,
		Short:             "boxctl - command-line companion for the local dev box VM",
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.SetVerbosity(verbosity); err != nil {
				return err
			}

			logHandlers := []logging.HandlerBuilder{logging.NewFileHandler(bl.GlobalLogFilePath())}
			if showLog {
				logHandlers = append(logHandlers, logging.NewCliPtermHandler())
			}
			logger.SetHandlers(logHandlers...).SetGlobally()

			slog.Debug("log level set", "level", verbosity)

			boxctlDir, err := host.BoxctlDir()
			if err != nil {
				return err
			}

			config, err := config.Load(boxctlDir)
			if err != nil {
				return err
			}

			slog.Debug("config loaded", "config", config)

			cmd.SetContext(context.WithValue(cmd.Context(), cc.ContextKeyCmdContext, cc.NewCmdContext(config, logger)))

			return nil
		},
	}

	cmd.AddCommand(workers.WorkersCmd)
	cmd.AddCommand(ex.NewCmd())
	cmd.AddCommand(connect.NewCmd())
	cmd.AddCommand(cp.NewCmd())
	cmd.AddCommand(stat.StatusCmd)
	cmd.AddCommand(ve.VersionCmd)

	persistentFlags := cmd.PersistentFlags()
	persistentFlags.StringP(cc.MachineFlagName, cc.MachineFlagShorthand, "", cc.MachineFlagUsage)
	persistentFlags.BoolVarP(&showLog, cc.OutputFlagName, cc.OutputFlagShorthand, showLog, cc.OutputFlagUsage)
	persistentFlags.StringVarP(&verbosity, cli.VerbosityFlagName, cli.VerbosityFlagShorthand, verbosity, cli.VerbosityFlagHelp())

	return cmd, nil
}
