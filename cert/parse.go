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
	encoding_asn1 "encoding/asn1"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidPublicKeyECDSA = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	oidNamedCurveP256 = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidNamedCurveP384 = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidNamedCurveP521 = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 35}
)

// parseCertificate parses exactly one DER certificate. Certificates whose EC
// key is on a curve crypto/x509 cannot parse fail with ErrUnsupportedKey
// rather than ErrCertDecoding.
func parseCertificate(der []byte) (*x509.Certificate, error) {
	c, err := x509.ParseCertificate(der)
	if err != nil {
		if curve, ok := unsupportedNamedCurve(der); ok {
			return nil, fmt.Errorf("%w: EC curve %s", ErrUnsupportedKey, curve)
		}

		return nil, fmt.Errorf("%w: %w", ErrCertDecoding, err)
	}

	return c, nil
}

// unsupportedNamedCurve reports the curve of an id-ecPublicKey
// SubjectPublicKeyInfo when it is not one of P-256, P-384 or P-521.
func unsupportedNamedCurve(der []byte) (string, bool) {
	input := cryptobyte.String(der)

	var certificate, tbs, spki, algorithm cryptobyte.String
	if !input.ReadASN1(&certificate, asn1.SEQUENCE) ||
		!certificate.ReadASN1(&tbs, asn1.SEQUENCE) ||
		!tbs.SkipOptionalASN1(asn1.Tag(0).Constructed().ContextSpecific()) ||
		!tbs.SkipASN1(asn1.INTEGER) || // serialNumber
		!tbs.SkipASN1(asn1.SEQUENCE) || // signature
		!tbs.SkipASN1(asn1.SEQUENCE) || // issuer
		!tbs.SkipASN1(asn1.SEQUENCE) || // validity
		!tbs.SkipASN1(asn1.SEQUENCE) || // subject
		!tbs.ReadASN1(&spki, asn1.SEQUENCE) ||
		!spki.ReadASN1(&algorithm, asn1.SEQUENCE) {
		return "", false
	}

	var algorithmOID, curveOID encoding_asn1.ObjectIdentifier
	if !algorithm.ReadASN1ObjectIdentifier(&algorithmOID) || !algorithmOID.Equal(oidPublicKeyECDSA) {
		return "", false
	}

	// Missing or explicit curve parameters never name a supported curve.
	if !algorithm.PeekASN1Tag(asn1.OBJECT_IDENTIFIER) {
		return "(unnamed)", true
	}

	if !algorithm.ReadASN1ObjectIdentifier(&curveOID) {
		return "", false
	}

	switch {
	case curveOID.Equal(oidNamedCurveP256), curveOID.Equal(oidNamedCurveP384), curveOID.Equal(oidNamedCurveP521):
		return "", false
	default:
		return curveOID.String(), true
	}
}
