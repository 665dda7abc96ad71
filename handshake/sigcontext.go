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

package handshake

const (
	sigPrefixLen = 64
	sigPrefix    = 0x20

	serverLabel = "TLS 1.3, server CertificateVerify"
	clientLabel = "TLS 1.3, client CertificateVerify"
)

// SignatureContext returns the content covered by a CertificateVerify
// signature [rfc8446:4.4.3]: 64 spaces, the role label, a zero byte and
// the transcript hash.
func SignatureContext(role Role, transcriptHash []byte) []byte {
	label := clientLabel
	if role == RoleServer {
		label = serverLabel
	}

	out := make([]byte, 0, sigPrefixLen+len(label)+1+len(transcriptHash))
	for i := 0; i < sigPrefixLen; i++ {
		out = append(out, sigPrefix)
	}
	out = append(out, label...)
	out = append(out, 0)
	return append(out, transcriptHash...)
}
