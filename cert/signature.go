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
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
)

func pssOptions(scheme SignatureScheme) *rsa.PSSOptions {
	return &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: scheme.hash()}
}

func verifySignature(keyType KeyType, pub crypto.PublicKey, scheme SignatureScheme, signedData, signature []byte) error {
	if !keyType.Supports(scheme) {
		return fmt.Errorf("%w: %w: %s with %s key", ErrVerification, ErrUnsupportedScheme, scheme, keyType)
	}

	digest := scheme.digest(signedData)

	switch keyType {
	case KeyTypeRSA:
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return fmt.Errorf("%w: expected RSA public key, got %T", ErrVerification, pub)
		}

		if err := rsa.VerifyPSS(rsaPub, scheme.hash(), digest, signature, pssOptions(scheme)); err != nil {
			return fmt.Errorf("%w: %w", ErrVerification, err)
		}
	case KeyTypeP256, KeyTypeP384, KeyTypeP521:
		ecPub, ok := pub.(*ecdsa.PublicKey)
		if !ok {
			return fmt.Errorf("%w: expected EC public key, got %T", ErrVerification, pub)
		}

		if !ecdsa.VerifyASN1(ecPub, digest, signature) {
			return fmt.Errorf("%w: invalid ECDSA signature", ErrVerification)
		}
	default:
		return fmt.Errorf("%w: %w: %s", ErrVerification, ErrUnsupportedKey, keyType)
	}

	return nil
}

func createSignature(keyType KeyType, signer crypto.Signer, scheme SignatureScheme, data []byte) ([]byte, error) {
	if !keyType.Supports(scheme) {
		return nil, fmt.Errorf("%w: %w: %s with %s key", ErrSigning, ErrUnsupportedScheme, scheme, keyType)
	}

	digest := scheme.digest(data)

	var opts crypto.SignerOpts
	switch keyType {
	case KeyTypeRSA:
		opts = pssOptions(scheme)
	case KeyTypeP256, KeyTypeP384, KeyTypeP521:
		opts = scheme.hash()
	default:
		return nil, fmt.Errorf("%w: %w: %s", ErrSigning, ErrUnsupportedKey, keyType)
	}

	sig, err := signer.Sign(rand.Reader, digest, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	if len(sig) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrSigning, errors.New("empty signature"))
	}

	return sig, nil
}
