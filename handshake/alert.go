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
	"errors"

	"github.com/dpeckett/tlsident/cert"
)

// AlertFor returns the fatal alert to send when a certificate operation fails
// with err. Failures of our own identity map to internal_error.
func AlertFor(err error) AlertDescription {
	switch {
	case errors.Is(err, cert.ErrSigning),
		errors.Is(err, cert.ErrKeyDecoding),
		errors.Is(err, cert.ErrNoCertificates),
		errors.Is(err, cert.ErrCertEncoding):
		return AlertInternalError
	case errors.Is(err, cert.ErrUnsupportedScheme):
		return AlertIllegalParameter
	case errors.Is(err, cert.ErrEmptyCertificate),
		errors.Is(err, cert.ErrMalformedMessage):
		return AlertDecodeError
	case errors.Is(err, cert.ErrCertDecoding):
		return AlertBadCertificate
	case errors.Is(err, cert.ErrMissingPublicKey),
		errors.Is(err, cert.ErrUnsupportedKey):
		return AlertUnsupportedCertificate
	case errors.Is(err, cert.ErrVerification):
		return AlertDecryptError
	default:
		return AlertInternalError
	}
}
