// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package definitions

import "time"

const (
	SSHDefaultPort    uint16 = 22
	SSHDefaultTimeout        = 30 * time.Second

	DefaultRemoteUser = "box"
)
