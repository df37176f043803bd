// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package guest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	contracts "github.com/boxworks/boxctl/internal/contracts/ssh"
	"github.com/boxworks/boxctl/internal/core/config"
	"github.com/boxworks/boxctl/internal/core/machine"
	"github.com/boxworks/boxctl/internal/core/manifest"
	"github.com/boxworks/boxctl/internal/definitions"
	"github.com/boxworks/boxctl/internal/host"
	"github.com/boxworks/boxctl/internal/providers/ssh"
)

// Guest is the single resolved target machine with ready-to-use connection options.
type Guest struct {
	Machine           machine.Machine
	connectionOptions contracts.ConnectionOptions
}

// Resolve locates the single target guest machine and builds its SSH connection options.
// Target selection order: explicit machine name, then the box manifest in the working
// directory, then the sole machine in the manager's index.
func Resolve(cfg *config.Config, machineName string) (*Guest, error) {
	remoteUser := cfg.Ssh.RemoteUser

	if machineName == "" {
		workingDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working dir: %w", err)
		}

		boxManifest, err := manifest.Load(workingDir)
		if err == nil {
			machineName = boxManifest.Metadata.Name
			if boxManifest.Spec.RemoteUser != "" {
				remoteUser = boxManifest.Spec.RemoteUser
			}
		} else if !errors.Is(err, manifest.ErrManifestNotFound) {
			return nil, fmt.Errorf("failed to load box manifest: %w", err)
		}
	}

	index, err := machine.LoadIndex(cfg.Manager.DataDir)
	if err != nil {
		return nil, err
	}

	target, err := index.FindRunningTarget(machineName)
	if err != nil {
		return nil, err
	}

	connectionOptions, err := connectionOptionsFor(cfg, target, remoteUser)
	if err != nil {
		return nil, err
	}

	slog.Debug("Guest resolved", "machine", target.Name, "host", connectionOptions.Host, "port", connectionOptions.Port, "user", connectionOptions.RemoteUser)

	return &Guest{
		Machine:           *target,
		connectionOptions: *connectionOptions,
	}, nil
}

// Exec runs the given command on the guest, streaming its output.
func (g *Guest) Exec(command string) error {
	return ssh.Exec(command, g.connectionOptions)
}

// Connect opens an interactive SSH session into the guest.
func (g *Guest) Connect() error {
	return ssh.ConnectInteractively(g.connectionOptions)
}

// Copy transfers files between host and guest.
func (g *Guest) Copy(copyOptions contracts.CopyOptions) error {
	return ssh.Copy(copyOptions, g.connectionOptions)
}

func (g *Guest) ConnectionOptions() contracts.ConnectionOptions {
	return g.connectionOptions
}

func connectionOptionsFor(cfg *config.Config, target *machine.Machine, remoteUser string) (*contracts.ConnectionOptions, error) {
	timeout, err := cfg.SshTimeout()
	if err != nil {
		return nil, err
	}

	endpoint := target.Ssh

	if endpoint.Host == "" {
		return nil, fmt.Errorf("machine '%s' has no SSH host in index", target.Name)
	}

	port := endpoint.Port
	if port == 0 {
		port = cfg.Ssh.Port
	}
	if port == 0 {
		port = definitions.SSHDefaultPort
	}

	if endpoint.User != "" {
		remoteUser = endpoint.User
	}
	if remoteUser == "" {
		remoteUser = definitions.DefaultRemoteUser
	}

	keyPath, err := host.ResolveTildePrefix(endpoint.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tilde in private key path '%s': %w", endpoint.PrivateKeyPath, err)
	}

	if timeout == 0 {
		timeout = definitions.SSHDefaultTimeout
	}

	return &contracts.ConnectionOptions{
		Host:              endpoint.Host,
		Port:              port,
		RemoteUser:        remoteUser,
		SshPrivateKeyPath: keyPath,
		Timeout:           timeout,
	}, nil
}
