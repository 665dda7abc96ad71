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

import "errors"

var (
	ErrEmptyCertificate  = errors.New("empty certificate")
	ErrCertDecoding      = errors.New("could not decode certificate")
	ErrCertEncoding      = errors.New("could not encode certificate")
	ErrMissingPublicKey  = errors.New("certificate has no public key")
	ErrUnsupportedKey    = errors.New("unsupported key type")
	ErrNoCertificates    = errors.New("no certificates read")
	ErrKeyDecoding       = errors.New("could not read private key")
	ErrVerification      = errors.New("signature verification failed")
	ErrSigning           = errors.New("signing failed")
	ErrUnsupportedScheme = errors.New("unsupported signature scheme")
	ErrMalformedMessage  = errors.New("malformed handshake message")
)
