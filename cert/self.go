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
	"crypto"
	"crypto/x509"
	"fmt"
	"slices"
)

// SelfCert is a local identity: a private key together with the certificate
// chain presented to peers, leaf first.
type SelfCert struct {
	keyType KeyType
	key     crypto.Signer
	chain   []*x509.Certificate
}

// NewSelfCertFromPEM builds a SelfCert from a PEM certificate bundle and a
// PEM private key.
func NewSelfCertFromPEM(certPEM, keyPEM []byte) (*SelfCert, error) {
	certs, err := ParseCertificatesPEM(certPEM)
	if err != nil {
		return nil, err
	}

	key, err := ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, err
	}

	return NewSelfCert(certs, key)
}

// NewSelfCert builds a SelfCert from a decoded chain and its private key.
// The key type is taken from the leaf certificate; the caller is responsible
// for key matching the leaf, a mismatch only shows up when peers fail to
// verify our signatures.
func NewSelfCert(certs []*x509.Certificate, key crypto.Signer) (*SelfCert, error) {
	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	for i, c := range certs {
		if c == nil {
			return nil, fmt.Errorf("%w: certificate %d is nil", ErrNoCertificates, i)
		}
	}

	if key == nil {
		return nil, fmt.Errorf("%w: no private key", ErrKeyDecoding)
	}

	leaf := certs[0]
	if leaf.PublicKey == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPublicKey, leaf.PublicKeyAlgorithm)
	}

	keyType, err := ClassifyKey(leaf.PublicKey)
	if err != nil {
		return nil, err
	}

	return &SelfCert{
		keyType: keyType,
		key:     key,
		chain:   slices.Clone(certs),
	}, nil
}

// Identity returns the subject common name of the leaf certificate.
func (s *SelfCert) Identity() string {
	return s.chain[0].Subject.CommonName
}

// KeyType returns the key type of the leaf certificate.
func (s *SelfCert) KeyType() KeyType {
	return s.keyType
}

// CertificateChain returns the DER encoding of each certificate in the chain.
func (s *SelfCert) CertificateChain() [][]byte {
	chain := make([][]byte, len(s.chain))
	for i, c := range s.chain {
		chain[i] = slices.Clone(c.Raw)
	}
	return chain
}

// Certificates returns the parsed chain. The certificates must not be modified.
func (s *SelfCert) Certificates() []*x509.Certificate {
	return slices.Clone(s.chain)
}

// CertificateMsg builds the Certificate message presenting this chain.
func (s *SelfCert) CertificateMsg(requestContext []byte) (*CertificateMsg, error) {
	return NewCertificateMsg(s.chain, requestContext)
}

// Sign signs data, typically the output of handshake.SignatureContext.
func (s *SelfCert) Sign(scheme SignatureScheme, data []byte) ([]byte, error) {
	return createSignature(s.keyType, s.key, scheme, data)
}
