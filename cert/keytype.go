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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
)

// KeyType identifies the algorithm family (and curve) of a certificate key.
type KeyType int

const (
	KeyTypeRSA KeyType = iota + 1
	KeyTypeP256
	KeyTypeP384
	KeyTypeP521
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeP256:
		return "P256"
	case KeyTypeP384:
		return "P384"
	case KeyTypeP521:
		return "P521"
	default:
		return fmt.Sprintf("KeyType(%d)", int(k))
	}
}

// SignatureSchemes returns the TLS 1.3 signature schemes usable with keys of
// this type, in order of preference.
func (k KeyType) SignatureSchemes() []SignatureScheme {
	switch k {
	case KeyTypeRSA:
		return []SignatureScheme{PSSWithSHA256, PSSWithSHA384, PSSWithSHA512}
	case KeyTypeP256:
		return []SignatureScheme{ECDSAWithP256AndSHA256}
	case KeyTypeP384:
		return []SignatureScheme{ECDSAWithP384AndSHA384}
	case KeyTypeP521:
		return []SignatureScheme{ECDSAWithP521AndSHA512}
	default:
		return nil
	}
}

// Supports reports whether scheme can be used with keys of this type.
func (k KeyType) Supports(scheme SignatureScheme) bool {
	for _, s := range k.SignatureSchemes() {
		if s == scheme {
			return true
		}
	}

	return false
}

// ClassifyKey maps a public key onto one of the supported key types.
// Anything other than RSA or ECDSA on P-256, P-384 or P-521 is rejected.
func ClassifyKey(pub crypto.PublicKey) (KeyType, error) {
	switch pub := pub.(type) {
	case *rsa.PublicKey:
		return KeyTypeRSA, nil
	case *ecdsa.PublicKey:
		if pub.Curve == nil {
			return 0, fmt.Errorf("%w: EC key without a named curve", ErrUnsupportedKey)
		}

		switch pub.Curve {
		case elliptic.P256():
			return KeyTypeP256, nil
		case elliptic.P384():
			return KeyTypeP384, nil
		case elliptic.P521():
			return KeyTypeP521, nil
		default:
			if params := pub.Curve.Params(); params != nil && params.Name != "" {
				return 0, fmt.Errorf("%w: EC curve %s", ErrUnsupportedKey, params.Name)
			}
			return 0, fmt.Errorf("%w: EC curve %T", ErrUnsupportedKey, pub.Curve)
		}
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedKey, pub)
	}
}
