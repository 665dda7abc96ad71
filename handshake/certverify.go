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

import (
	"fmt"
	"slices"

	"github.com/dpeckett/tlsident/cert"
	"golang.org/x/crypto/cryptobyte"
)

// CertificateVerifyMsg is the TLS 1.3 CertificateVerify message [rfc8446:4.4.3].
type CertificateVerifyMsg struct {
	Scheme    cert.SignatureScheme
	Signature []byte
}

// Marshal encodes the message body (without the handshake header).
func (msg *CertificateVerifyMsg) Marshal() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint16(uint16(msg.Scheme))
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(msg.Signature)
	})

	body, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cert.ErrMalformedMessage, err)
	}

	return body, nil
}

// Unmarshal decodes a message body. The signature does not alias body.
func (msg *CertificateVerifyMsg) Unmarshal(body []byte) error {
	s := cryptobyte.String(body)

	var scheme uint16
	var signature cryptobyte.String
	if !s.ReadUint16(&scheme) || !s.ReadUint16LengthPrefixed(&signature) || !s.Empty() {
		return fmt.Errorf("%w: CertificateVerify", cert.ErrMalformedMessage)
	}

	msg.Scheme = cert.SignatureScheme(scheme)
	msg.Signature = slices.Clone([]byte(signature))

	return nil
}

// Signer is implemented by *cert.SelfCert.
type Signer interface {
	Sign(scheme cert.SignatureScheme, data []byte) ([]byte, error)
}

// Verifier is implemented by *cert.PeerCert.
type Verifier interface {
	Verify(scheme cert.SignatureScheme, signedData, signature []byte) error
}

// SignCertificateVerify produces our CertificateVerify for the given role
// over the transcript hash up to and including our Certificate message.
func SignCertificateVerify(signer Signer, role Role, scheme cert.SignatureScheme, transcriptHash []byte) (*CertificateVerifyMsg, error) {
	sig, err := signer.Sign(scheme, SignatureContext(role, transcriptHash))
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s CertificateVerify: %w", role, err)
	}

	return &CertificateVerifyMsg{Scheme: scheme, Signature: sig}, nil
}

// VerifyCertificateVerify checks a CertificateVerify sent by the peer. Role is
// the peer's role, not ours.
func VerifyCertificateVerify(verifier Verifier, role Role, msg *CertificateVerifyMsg, transcriptHash []byte) error {
	if err := verifier.Verify(msg.Scheme, SignatureContext(role, transcriptHash), msg.Signature); err != nil {
		return fmt.Errorf("failed to verify %s CertificateVerify: %w", role, err)
	}

	return nil
}
