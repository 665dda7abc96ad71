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
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/dpeckett/tlsident/cert"
	"github.com/dpeckett/tlsident/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		alg     testutil.Algorithm
		keyType cert.KeyType
	}{
		{testutil.RSA, cert.KeyTypeRSA},
		{testutil.P256, cert.KeyTypeP256},
		{testutil.P384, cert.KeyTypeP384},
		{testutil.P521, cert.KeyTypeP521},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			key, err := testutil.GenerateKey(tt.alg)
			require.NoError(t, err)

			keyType, err := cert.ClassifyKey(key.Public())
			require.NoError(t, err)
			require.Equal(t, tt.keyType, keyType)
		})
	}
}

func TestClassifyKeyUnsupported(t *testing.T) {
	p224, err := ecdsa.GenerateKey(elliptic.P224(), rand.Reader)
	require.NoError(t, err)

	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	for name, pub := range map[string]any{
		"p224":    &p224.PublicKey,
		"ed25519": edPub,
		"nocurve": &ecdsa.PublicKey{},
		"nil":     nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := cert.ClassifyKey(pub)
			require.ErrorIs(t, err, cert.ErrUnsupportedKey)
		})
	}
}

// paramlessCurve is a caller supplied curve that exposes no parameters.
type paramlessCurve struct {
	elliptic.Curve
}

func (paramlessCurve) Params() *elliptic.CurveParams { return nil }

func TestClassifyKeyCurveWithoutParams(t *testing.T) {
	_, err := cert.ClassifyKey(&ecdsa.PublicKey{Curve: paramlessCurve{}})
	require.ErrorIs(t, err, cert.ErrUnsupportedKey)
	require.Contains(t, err.Error(), "paramlessCurve")
}

func TestKeyTypeSignatureSchemes(t *testing.T) {
	require.Equal(t, []cert.SignatureScheme{cert.PSSWithSHA256, cert.PSSWithSHA384, cert.PSSWithSHA512},
		cert.KeyTypeRSA.SignatureSchemes())
	require.True(t, cert.KeyTypeP384.Supports(cert.ECDSAWithP384AndSHA384))
	require.False(t, cert.KeyTypeP384.Supports(cert.ECDSAWithP256AndSHA256))
	require.False(t, cert.KeyTypeP256.Supports(cert.PSSWithSHA256))
	require.Empty(t, cert.KeyType(0).SignatureSchemes())

	require.Equal(t, "P521", cert.KeyTypeP521.String())
	require.Equal(t, "rsa_pss_rsae_sha384", cert.PSSWithSHA384.String())
}

func TestParseSignatureScheme(t *testing.T) {
	scheme, err := cert.ParseSignatureScheme("ecdsa_secp521r1_sha512")
	require.NoError(t, err)
	require.Equal(t, cert.ECDSAWithP521AndSHA512, scheme)

	_, err = cert.ParseSignatureScheme("ed25519")
	require.ErrorIs(t, err, cert.ErrUnsupportedScheme)
}
