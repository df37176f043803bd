// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package ssh

import (
	"fmt"
	"io"
	"time"
)

type ConnectionOptions struct {
	Host              string
	Port              uint16
	RemoteUser        string
	SshPrivateKeyPath string
	Timeout           time.Duration
	StdOutWriter      io.Writer
	StdErrWriter      io.Writer
}

// ExitError reports that the remote command ran, but finished with a non-zero exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("remote command exited with status %d", e.Code)
}

type CopyDirection bool

type CopyOptions struct {
	Source    string
	Target    string
	Direction CopyDirection
}

const (
	CopyToGuest   CopyDirection = false
	CopyFromGuest CopyDirection = true
)
