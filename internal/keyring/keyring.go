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

package keyring

import (
	"encoding/pem"
	"fmt"

	"github.com/dpeckett/keyutils"
	"github.com/dpeckett/tlsident/cert"
)

// KeySerial is a unique identifier for a key in the kernel keyring.
type KeySerial int32

// LoadSelfCert reads a DER certificate and a PKCS#8 private key from the
// kernel keyring and combines them into a local identity.
func LoadSelfCert(certSerial, keySerial KeySerial) (*cert.SelfCert, error) {
	certPEM, err := readPEM(certSerial, "CERTIFICATE")
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	keyPEM, err := readPEM(keySerial, "PRIVATE KEY")
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}

	selfCert, err := cert.NewSelfCertFromPEM(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	return selfCert, nil
}

func readPEM(serial KeySerial, blockType string) ([]byte, error) {
	key := keyutils.GetKey(int32(serial))

	der, err := key.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get key value: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), nil
}

// StorePeerCert adds a verified peer certificate to the user keyring and
// returns its serial.
func StorePeerCert(peer *cert.PeerCert) (KeySerial, error) {
	keyring, err := keyutils.UserKeyring()
	if err != nil {
		return 0, fmt.Errorf("failed to get user keyring: %w", err)
	}

	description := fmt.Sprintf("TLS x509 %s", peer.Identity())
	key, err := keyring.AddType(description, "asymmetric", peer.Certificate().Raw)
	if err != nil {
		return 0, fmt.Errorf("failed to add key: %w", err)
	}

	return KeySerial(key.Id()), nil
}
