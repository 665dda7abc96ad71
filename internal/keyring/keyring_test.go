// SPDX-License-Identifier: GPL-2.0
/*
 * Copyright (c) 2023 Oracle and/or its affiliates.
 * Copyright (c) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * tlsident is free software; you can redistribute it and/or
 * modify it under the terms of the GNU General Public License as
 * published by the Free Software Foundation; version 2.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
 * 02110-1301, USA.
 */

package keyring_test

import (
	"testing"

	"github.com/dpeckett/tlsident/cert"
	"github.com/dpeckett/tlsident/internal/keyring"
	"github.com/dpeckett/tlsident/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestStorePeerCert(t *testing.T) {
	x509Cert, _, err := testutil.GenerateSelfSignedCert(testutil.RSA, "localhost")
	require.NoError(t, err)

	peer, err := cert.NewPeerCert(nil, x509Cert.Raw)
	require.NoError(t, err)

	serial, err := keyring.StorePeerCert(peer)
	require.NoError(t, err)

	require.NotZero(t, serial)
}
