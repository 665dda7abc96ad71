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
	"slices"

	"golang.org/x/crypto/cryptobyte"
)

const (
	maxRequestContextLen = 0xFF
	maxCertDataLen       = 0xFFFFFF
)

// Extension is a single extension attached to a certificate entry.
type Extension struct {
	Type uint16
	Data []byte
}

// CertificateEntry is one DER certificate in a Certificate message.
type CertificateEntry struct {
	CertData   []byte
	Extensions []Extension
}

// CertificateMsg is the TLS 1.3 Certificate handshake message [rfc8446:4.4.2].
// The first entry is the end-entity certificate.
type CertificateMsg struct {
	RequestContext []byte
	Certificates   []CertificateEntry
}

// NewCertificateMsg builds a Certificate message from a chain, preserving its
// order. Either every certificate is encoded or an error is returned.
func NewCertificateMsg(certs []*x509.Certificate, requestContext []byte) (*CertificateMsg, error) {
	entries := make([]CertificateEntry, 0, len(certs))
	for i, c := range certs {
		der, err := encodeCertificate(c)
		if err != nil {
			return nil, fmt.Errorf("%w: certificate %d: %w", ErrCertEncoding, i, err)
		}

		// TODO: carry status_request and signed_certificate_timestamp extensions.
		entries = append(entries, CertificateEntry{CertData: der})
	}

	return &CertificateMsg{
		RequestContext: slices.Clone(requestContext),
		Certificates:   entries,
	}, nil
}

func encodeCertificate(c *x509.Certificate) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("nil certificate")
	}

	if len(c.Raw) == 0 {
		return nil, fmt.Errorf("certificate has no DER encoding")
	}

	if len(c.Raw) > maxCertDataLen {
		return nil, fmt.Errorf("certificate is %d bytes, exceeds %d", len(c.Raw), maxCertDataLen)
	}

	return slices.Clone(c.Raw), nil
}

// Marshal encodes the message body (without the handshake header).
func (msg *CertificateMsg) Marshal() ([]byte, error) {
	if len(msg.RequestContext) > maxRequestContextLen {
		return nil, fmt.Errorf("%w: request context is %d bytes", ErrMalformedMessage, len(msg.RequestContext))
	}

	for i, entry := range msg.Certificates {
		if len(entry.CertData) == 0 {
			return nil, fmt.Errorf("%w: certificate entry %d is empty", ErrMalformedMessage, i)
		}
	}

	var b cryptobyte.Builder
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(msg.RequestContext)
	})
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		for _, entry := range msg.Certificates {
			b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(entry.CertData)
			})
			b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
				for _, ext := range entry.Extensions {
					b.AddUint16(ext.Type)
					b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
						b.AddBytes(ext.Data)
					})
				}
			})
		}
	})

	body, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return body, nil
}

// Unmarshal decodes a message body. The decoded slices do not alias body.
func (msg *CertificateMsg) Unmarshal(body []byte) error {
	s := cryptobyte.String(body)

	var requestContext, certList cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&requestContext) ||
		!s.ReadUint24LengthPrefixed(&certList) || !s.Empty() {
		return fmt.Errorf("%w: Certificate", ErrMalformedMessage)
	}

	var entries []CertificateEntry
	for !certList.Empty() {
		var certData, extList cryptobyte.String
		if !certList.ReadUint24LengthPrefixed(&certData) || certData.Empty() ||
			!certList.ReadUint16LengthPrefixed(&extList) {
			return fmt.Errorf("%w: certificate entry %d", ErrMalformedMessage, len(entries))
		}

		entry := CertificateEntry{CertData: slices.Clone([]byte(certData))}
		for !extList.Empty() {
			var ext Extension
			var extData cryptobyte.String
			if !extList.ReadUint16(&ext.Type) || !extList.ReadUint16LengthPrefixed(&extData) {
				return fmt.Errorf("%w: extensions of certificate entry %d", ErrMalformedMessage, len(entries))
			}
			ext.Data = slices.Clone([]byte(extData))
			entry.Extensions = append(entry.Extensions, ext)
		}

		entries = append(entries, entry)
	}

	msg.RequestContext = slices.Clone([]byte(requestContext))
	msg.Certificates = entries

	return nil
}
