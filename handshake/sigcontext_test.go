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

package handshake_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/dpeckett/tlsident/handshake"
	"github.com/stretchr/testify/require"
)

func TestSignatureContextServer(t *testing.T) {
	transcriptHash := sha256.Sum256([]byte("ClientHello...Certificate"))

	out := handshake.SignatureContext(handshake.RoleServer, transcriptHash[:])

	var expected []byte
	expected = append(expected, bytes.Repeat([]byte{0x20}, 64)...)
	expected = append(expected, "TLS 1.3, server CertificateVerify"...)
	expected = append(expected, 0x00)
	expected = append(expected, transcriptHash[:]...)

	require.Len(t, out, 130)
	require.Equal(t, expected, out)
}

func TestSignatureContextLayout(t *testing.T) {
	labels := map[handshake.Role]string{
		handshake.RoleClient: "TLS 1.3, client CertificateVerify",
		handshake.RoleServer: "TLS 1.3, server CertificateVerify",
	}

	for role, label := range labels {
		for _, transcript := range [][]byte{nil, {0x01}, bytes.Repeat([]byte{0xab}, 48), bytes.Repeat([]byte{0x00}, 64)} {
			out := handshake.SignatureContext(role, transcript)

			require.Len(t, out, 64+len(label)+1+len(transcript))
			require.Equal(t, bytes.Repeat([]byte{0x20}, 64), out[:64])
			require.Equal(t, label, string(out[64:64+len(label)]))
			require.Equal(t, byte(0), out[64+len(label)])
			require.Equal(t, transcript, out[64+len(label)+1:], "role %s", role)
		}
	}
}

func TestSignatureContextRolesDiffer(t *testing.T) {
	transcript := []byte("transcript")
	require.NotEqual(t,
		handshake.SignatureContext(handshake.RoleClient, transcript),
		handshake.SignatureContext(handshake.RoleServer, transcript))
}
