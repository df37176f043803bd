// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package ssh

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

const sshExecutableName = "ssh"

func Connect(options contracts.ConnectionOptions) (*ssh.Client, error) {
	slog.Debug("Connecting via SSH", "host", options.Host, "user", options.RemoteUser, "key", options.SshPrivateKeyPath, "timeout", options.Timeout)

	key, err := os.ReadFile(options.SshPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private SSH key: %w", err)
	}

	clientConfig := &ssh.ClientConfig{
		User: options.RemoteUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         options.Timeout,
	}

	address := fmt.Sprintf("%s:%d", options.Host, options.Port)

	retryPolicy := retrypolicy.Builder[*ssh.Client]().
		WithBackoff(time.Second, 8*time.Second).
		WithMaxRetries(2).
		WithMaxDuration(options.Timeout).
		OnRetry(func(e failsafe.ExecutionEvent[*ssh.Client]) {
			slog.Debug("Retrying SSH dial", "attempt", e.Attempts(), "elapsed", e.ElapsedTime(), "last-error", e.LastError())
		}).
		Build()

	sshClient, err := failsafe.Get(func() (*ssh.Client, error) {
		return ssh.Dial("tcp", address, clientConfig)
	}, retryPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to connect via SSH to '%s': %w", address, err)
	}

	slog.Debug("Connected via SSH", "host", options.Host)
	return sshClient, nil
}

// ConnectInteractively hands the terminal over to the system OpenSSH client for an interactive session.
func ConnectInteractively(options contracts.ConnectionOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive session requires a terminal")
	}

	timeoutOption := fmt.Sprintf("ConnectTimeout=%d", int(options.Timeout.Seconds()))
	port := fmt.Sprintf("%d", options.Port)
	remote := fmt.Sprintf("%s@%s", options.RemoteUser, options.Host)

	cmd := exec.Command(sshExecutableName, "-tt", "-o", "StrictHostKeyChecking=no", "-o", timeoutOption, "-i", options.SshPrivateKeyPath, "-p", port, remote)

	slog.Debug("Executing ssh", "command", cmd.String())

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ssh: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode := exitErr.ExitCode()
			if exitCode == 255 {
				return fmt.Errorf("failed to execute ssh: %w", err)
			}
			slog.Debug("remote session ended with non-zero status", "exit-code", exitCode)
			return &contracts.ExitError{Code: exitCode}
		}
		return fmt.Errorf("failed to wait for ssh execution: %w", err)
	}
	return nil
}
