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

package cert

import (
	"crypto/x509"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// PeerCert is a certificate received from the peer, bound to the key type of
// its public key.
type PeerCert struct {
	keyType KeyType
	cert    *x509.Certificate
}

// NewPeerCert parses a single DER encoded certificate. Bytes following the
// certificate are ignored and only logged.
func NewPeerCert(logger *slog.Logger, der []byte) (*PeerCert, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if len(der) == 0 {
		return nil, ErrEmptyCertificate
	}

	input := cryptobyte.String(der)
	var element cryptobyte.String
	if !input.ReadASN1Element(&element, asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: not a DER sequence", ErrCertDecoding)
	}

	if !input.Empty() {
		logger.Debug("Did not read to end of certificate",
			"consumed", len(element), "total", len(der))
	}

	c, err := parseCertificate(element)
	if err != nil {
		return nil, err
	}

	if c.PublicKey == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPublicKey, c.PublicKeyAlgorithm)
	}

	keyType, err := ClassifyKey(c.PublicKey)
	if err != nil {
		return nil, err
	}

	return &PeerCert{keyType: keyType, cert: c}, nil
}

// Identity returns the subject common name of the certificate.
func (p *PeerCert) Identity() string {
	return p.cert.Subject.CommonName
}

// KeyType returns the key type the certificate was classified as.
func (p *PeerCert) KeyType() KeyType {
	return p.keyType
}

// Certificate returns the parsed certificate. It must not be modified.
func (p *PeerCert) Certificate() *x509.Certificate {
	return p.cert
}

// Verify checks signature over signedData, typically the output of
// handshake.SignatureContext.
func (p *PeerCert) Verify(scheme SignatureScheme, signedData, signature []byte) error {
	return verifySignature(p.keyType, p.cert.PublicKey, scheme, signedData, signature)
}
