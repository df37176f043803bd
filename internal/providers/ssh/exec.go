// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package ssh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"
	"github.com/boxworks/boxctl/internal/logging"
	"golang.org/x/crypto/ssh"
)

// errorLineWriter feeds complete stderr lines into a log buffer.
type errorLineWriter struct {
	buffer  *logging.LogBuffer
	pending []byte
}

func (w *errorLineWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)

	for {
		index := bytes.IndexByte(w.pending, '\n')
		if index < 0 {
			break
		}
		w.buffer.Log(string(bytes.TrimRight(w.pending[:index], "\r")))
		w.pending = w.pending[index+1:]
	}
	return len(p), nil
}

func (w *errorLineWriter) flush() {
	if len(w.pending) > 0 {
		w.buffer.Log(string(w.pending))
		w.pending = nil
	}
	w.buffer.Flush()
}

// Exec runs the given command on the remote guest. When the command finishes with a
// non-zero status, the returned error wraps contracts.ExitError carrying that status.
func Exec(command string, connectionOptions contracts.ConnectionOptions) error {
	sshClient, err := Connect(connectionOptions)
	if err != nil {
		return fmt.Errorf("failed to dial SSH: %w", err)
	}
	defer func() {
		slog.Debug("Closing SSH client")
		if err := sshClient.Close(); err != nil {
			slog.Error("failed to close SSH client", "error", err)
		}
	}()

	session, err := sshClient.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}

	if connectionOptions.StdOutWriter != nil {
		session.Stdout = connectionOptions.StdOutWriter
	} else {
		session.Stdout = os.Stdout
	}

	var stdErr io.Writer = os.Stderr
	if connectionOptions.StdErrWriter != nil {
		stdErr = connectionOptions.StdErrWriter
	}

	errorLineBuffer, err := logging.NewLogBuffer(logging.BufferConfig{
		Limit: 100,
		FlushFunc: func(buffer []string) {
			slog.Error("Flushing error lines", "count", len(buffer), "lines", buffer)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create error line buffer: %w", err)
	}

	lineWriter := &errorLineWriter{buffer: errorLineBuffer}
	defer lineWriter.flush()

	session.Stderr = io.MultiWriter(stdErr, lineWriter)

	slog.Debug("Running remote command", "command", command)

	// Session.Run() implicitly closes the session afterwards
	if err := session.Run(command); err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			slog.Debug("Remote command exited non-zero", "command", command, "exit-status", exitErr.ExitStatus())

			return fmt.Errorf("remote command '%s' failed: %w", command, &contracts.ExitError{Code: exitErr.ExitStatus()})
		}

		var missingErr *ssh.ExitMissingError
		if errors.As(err, &missingErr) {
			return fmt.Errorf("remote command '%s' finished without exit status: %w", command, err)
		}
		return fmt.Errorf("failed to run command: %w", err)
	}
	return nil
}
