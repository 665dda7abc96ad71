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

// Package cert turns X.509 certificate material into typed signing and
// verification capabilities for TLS 1.3 CertificateVerify.
//
// A PeerCert verifies signatures with a certificate received from the peer,
// a SelfCert signs with a locally held key and carries the chain to present.
// Both are immutable once constructed and safe for concurrent use.
package cert

import "crypto/x509"

// Cert is anything that carries a logical identity.
type Cert interface {
	Identity() string
}

var (
	_ Cert = (*PeerCert)(nil)
	_ Cert = (*SelfCert)(nil)
	_ Cert = (*IdentityCert)(nil)
)

// IdentityCert represents an identity established without X.509 material,
// for example a pre-shared key name.
type IdentityCert struct {
	identity string
}

// NewIdentityCert returns an IdentityCert for identity.
func NewIdentityCert(identity string) *IdentityCert {
	return &IdentityCert{identity: identity}
}

// Identity returns the identity the IdentityCert was created with.
func (c *IdentityCert) Identity() string {
	return c.identity
}

// Certificate always returns nil, an IdentityCert has no backing certificate.
func (c *IdentityCert) Certificate() *x509.Certificate {
	return nil
}
