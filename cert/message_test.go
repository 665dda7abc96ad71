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

package cert_test

import (
	"bytes"
	"crypto/x509"
	"testing"

	"github.com/dpeckett/tlsident/cert"
	"github.com/dpeckett/tlsident/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewCertificateMsg(t *testing.T) {
	chain, _, err := testutil.GenerateChain(testutil.P256, "leaf")
	require.NoError(t, err)

	other, _, err := testutil.GenerateSelfSignedCert(testutil.RSA, "other")
	require.NoError(t, err)
	chain = append(chain, other)

	requestContext := []byte{0x01, 0x02}
	msg, err := cert.NewCertificateMsg(chain, requestContext)
	require.NoError(t, err)

	require.Equal(t, requestContext, msg.RequestContext)
	require.Len(t, msg.Certificates, len(chain))
	for i, entry := range msg.Certificates {
		require.Empty(t, entry.Extensions)

		parsed, err := x509.ParseCertificate(entry.CertData)
		require.NoError(t, err)
		require.Equal(t, chain[i].Raw, parsed.Raw)
	}

	// The message owns its buffers.
	requestContext[0] = 0xff
	msg.Certificates[0].CertData[0] ^= 0xff
	require.Equal(t, byte(0x01), msg.RequestContext[0])
	require.NotEqual(t, chain[0].Raw[0], msg.Certificates[0].CertData[0])
}

func TestNewCertificateMsgEncodingFailure(t *testing.T) {
	x509Cert, _, err := testutil.GenerateSelfSignedCert(testutil.P256, "leaf")
	require.NoError(t, err)

	msg, err := cert.NewCertificateMsg([]*x509.Certificate{x509Cert, {}}, nil)
	require.ErrorIs(t, err, cert.ErrCertEncoding)
	require.Nil(t, msg)

	msg, err = cert.NewCertificateMsg([]*x509.Certificate{nil}, nil)
	require.ErrorIs(t, err, cert.ErrCertEncoding)
	require.Nil(t, msg)
}

func TestCertificateMsgMarshal(t *testing.T) {
	msg := &cert.CertificateMsg{
		RequestContext: []byte{0xaa},
		Certificates: []cert.CertificateEntry{
			{CertData: []byte{0x01, 0x02, 0x03}},
			{CertData: []byte{0x04}, Extensions: []cert.Extension{{Type: 5, Data: []byte{0x06}}}},
		},
	}

	body, err := msg.Marshal()
	require.NoError(t, err)

	expected := []byte{
		0x01, 0xaa, // certificate_request_context
		0x00, 0x00, 0x13, // certificate_list
		0x00, 0x00, 0x03, 0x01, 0x02, 0x03, 0x00, 0x00,
		0x00, 0x00, 0x01, 0x04, 0x00, 0x05, 0x00, 0x05, 0x00, 0x01, 0x06,
	}
	require.Equal(t, expected, body)

	var decoded cert.CertificateMsg
	require.NoError(t, decoded.Unmarshal(body))
	require.Equal(t, msg.RequestContext, decoded.RequestContext)
	require.Len(t, decoded.Certificates, 2)
	require.Equal(t, msg.Certificates[0].CertData, decoded.Certificates[0].CertData)
	require.Empty(t, decoded.Certificates[0].Extensions)
	require.Equal(t, msg.Certificates[1], decoded.Certificates[1])
}

func TestCertificateMsgRoundTrip(t *testing.T) {
	chain, key, err := testutil.GenerateChain(testutil.P521, "leaf")
	require.NoError(t, err)

	self, err := cert.NewSelfCert(chain, key)
	require.NoError(t, err)

	msg, err := self.CertificateMsg(nil)
	require.NoError(t, err)

	body, err := msg.Marshal()
	require.NoError(t, err)

	var decoded cert.CertificateMsg
	require.NoError(t, decoded.Unmarshal(body))
	require.Empty(t, decoded.RequestContext)
	require.Len(t, decoded.Certificates, len(chain))

	peer, err := cert.NewPeerCert(nil, decoded.Certificates[0].CertData)
	require.NoError(t, err)
	require.Equal(t, cert.KeyTypeP521, peer.KeyType())
	require.Equal(t, "leaf", peer.Identity())
}

func TestCertificateMsgMarshalErrors(t *testing.T) {
	msg := &cert.CertificateMsg{RequestContext: bytes.Repeat([]byte{0x01}, 256)}
	_, err := msg.Marshal()
	require.ErrorIs(t, err, cert.ErrMalformedMessage)

	msg = &cert.CertificateMsg{Certificates: []cert.CertificateEntry{{}}}
	_, err = msg.Marshal()
	require.ErrorIs(t, err, cert.ErrMalformedMessage)
}

func TestCertificateMsgUnmarshalErrors(t *testing.T) {
	for name, body := range map[string][]byte{
		"empty":          {},
		"short context":  {0x02, 0x01},
		"short list":     {0x00, 0x00, 0x00, 0x05, 0x00},
		"empty cert":     {0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00},
		"no extensions":  {0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x01, 0x01},
		"trailing bytes": {0x00, 0x00, 0x00, 0x00, 0x00},
	} {
		t.Run(name, func(t *testing.T) {
			var msg cert.CertificateMsg
			require.ErrorIs(t, msg.Unmarshal(body), cert.ErrMalformedMessage)
		})
	}
}
