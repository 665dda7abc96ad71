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

package main

import (
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dpeckett/tlsident/cert"
	"github.com/dpeckett/tlsident/handshake"
	"github.com/dpeckett/tlsident/internal/keyring"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	certFlag := &cli.StringFlag{
		Name:    "cert",
		Usage:   "Path to a PEM or DER certificate (chain)",
		EnvVars: []string{"TLSIDENT_CERT"},
	}
	roleFlag := &cli.StringFlag{
		Name:  "role",
		Usage: "Role of the signer (client or server)",
		Value: "server",
	}
	transcriptFlag := &cli.StringFlag{
		Name:     "transcript",
		Usage:    "Hex encoded transcript hash",
		Required: true,
	}

	app := &cli.App{
		Name:  "tlsident",
		Usage: "Inspect TLS 1.3 certificate identities and CertificateVerify signatures",
		Flags: []cli.Flag{
			&cli.GenericFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set the log level",
				EnvVars: []string{"TLSIDENT_LOG_LEVEL"},
				Value:   fromLogLevel(slog.LevelInfo),
			},
		},
		Before: func(c *cli.Context) error {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: (*slog.Level)(c.Generic("log-level").(*logLevelFlag)),
			}))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "Show the identity and key type of a peer certificate",
				Flags: []cli.Flag{certFlag},
				Action: func(c *cli.Context) error {
					peer, err := loadPeerCert(logger, c.String("cert"))
					if err != nil {
						return err
					}

					fmt.Printf("identity: %s\n", peer.Identity())
					fmt.Printf("key type: %s\n", peer.KeyType())
					for _, scheme := range peer.KeyType().SignatureSchemes() {
						fmt.Printf("scheme:   %s\n", scheme)
					}

					return nil
				},
			},
			{
				Name:  "context",
				Usage: "Print the content covered by a CertificateVerify signature",
				Flags: []cli.Flag{roleFlag, transcriptFlag},
				Action: func(c *cli.Context) error {
					role, transcript, err := parseRoleAndTranscript(c)
					if err != nil {
						return err
					}

					fmt.Println(hex.EncodeToString(handshake.SignatureContext(role, transcript)))

					return nil
				},
			},
			{
				Name:  "message",
				Usage: "Print the Certificate message for a local identity",
				Flags: append(identityFlags(certFlag), &cli.StringFlag{
					Name:  "request-context",
					Usage: "Hex encoded certificate_request_context",
				}),
				Action: func(c *cli.Context) error {
					self, err := loadSelfCert(c)
					if err != nil {
						return err
					}

					requestContext, err := hex.DecodeString(c.String("request-context"))
					if err != nil {
						return fmt.Errorf("failed to decode request context: %w", err)
					}

					msg, err := self.CertificateMsg(requestContext)
					if err != nil {
						return fmt.Errorf("failed to build certificate message: %w", err)
					}

					body, err := msg.Marshal()
					if err != nil {
						return fmt.Errorf("failed to encode certificate message: %w", err)
					}

					fmt.Println(hex.EncodeToString(body))

					return nil
				},
			},
			{
				Name:  "sign",
				Usage: "Produce a CertificateVerify message with a local identity",
				Flags: append(identityFlags(certFlag), roleFlag, transcriptFlag, &cli.StringFlag{
					Name:  "scheme",
					Usage: "Signature scheme (defaults to the first one supported by the key)",
				}),
				Action: func(c *cli.Context) error {
					self, err := loadSelfCert(c)
					if err != nil {
						return err
					}

					role, transcript, err := parseRoleAndTranscript(c)
					if err != nil {
						return err
					}

					scheme := self.KeyType().SignatureSchemes()[0]
					if name := c.String("scheme"); name != "" {
						if scheme, err = cert.ParseSignatureScheme(name); err != nil {
							return err
						}
					}

					logger.Debug("Signing CertificateVerify",
						"identity", self.Identity(), "role", role, "scheme", scheme)

					msg, err := handshake.SignCertificateVerify(self, role, scheme, transcript)
					if err != nil {
						return err
					}

					body, err := msg.Marshal()
					if err != nil {
						return fmt.Errorf("failed to encode CertificateVerify: %w", err)
					}

					fmt.Println(hex.EncodeToString(body))

					return nil
				},
			},
			{
				Name:  "verify",
				Usage: "Check a CertificateVerify message against a peer certificate",
				Flags: []cli.Flag{certFlag, roleFlag, transcriptFlag, &cli.StringFlag{
					Name:     "certificate-verify",
					Usage:    "Hex encoded CertificateVerify message body",
					Required: true,
				}},
				Action: func(c *cli.Context) error {
					peer, err := loadPeerCert(logger, c.String("cert"))
					if err != nil {
						return err
					}

					role, transcript, err := parseRoleAndTranscript(c)
					if err != nil {
						return err
					}

					body, err := hex.DecodeString(c.String("certificate-verify"))
					if err != nil {
						return fmt.Errorf("failed to decode CertificateVerify: %w", err)
					}

					var msg handshake.CertificateVerifyMsg
					if err := msg.Unmarshal(body); err != nil {
						return err
					}

					if err := handshake.VerifyCertificateVerify(peer, role, &msg, transcript); err != nil {
						logger.Error("CertificateVerify rejected",
							"identity", peer.Identity(), "alert", handshake.AlertFor(err))
						return err
					}

					fmt.Printf("verified: %s (%s)\n", peer.Identity(), msg.Scheme)

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("Failed to run application", "error", err)
		os.Exit(1)
	}
}

func identityFlags(certFlag cli.Flag) []cli.Flag {
	return []cli.Flag{
		certFlag,
		&cli.StringFlag{
			Name:    "key",
			Usage:   "Path to a PEM private key",
			EnvVars: []string{"TLSIDENT_KEY"},
		},
		&cli.IntFlag{
			Name:  "cert-serial",
			Usage: "Kernel keyring serial of the certificate (instead of --cert)",
		},
		&cli.IntFlag{
			Name:  "key-serial",
			Usage: "Kernel keyring serial of the private key (instead of --key)",
		},
	}
}

func loadSelfCert(c *cli.Context) (*cert.SelfCert, error) {
	if c.Int("cert-serial") != 0 || c.Int("key-serial") != 0 {
		return keyring.LoadSelfCert(keyring.KeySerial(c.Int("cert-serial")), keyring.KeySerial(c.Int("key-serial")))
	}

	certPEM, err := os.ReadFile(c.String("cert"))
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(c.String("key"))
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	return cert.NewSelfCertFromPEM(certPEM, keyPEM)
}

// loadPeerCert reads the end-entity certificate from path, accepting either
// raw DER or a PEM bundle.
func loadPeerCert(logger *slog.Logger, path string) (*cert.PeerCert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	if block, _ := pem.Decode(data); block != nil {
		certs, err := cert.ParseCertificatesPEM(data)
		if err != nil {
			return nil, err
		}
		data = certs[0].Raw
	}

	return cert.NewPeerCert(logger, data)
}

func parseRoleAndTranscript(c *cli.Context) (handshake.Role, []byte, error) {
	var role handshake.Role
	switch strings.ToLower(c.String("role")) {
	case "client":
		role = handshake.RoleClient
	case "server":
		role = handshake.RoleServer
	default:
		return 0, nil, fmt.Errorf("unknown role: %q", c.String("role"))
	}

	transcript, err := hex.DecodeString(c.String("transcript"))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to decode transcript: %w", err)
	}

	return role, transcript, nil
}

type logLevelFlag slog.Level

func fromLogLevel(l slog.Level) *logLevelFlag {
	f := logLevelFlag(l)
	return &f
}

func (f *logLevelFlag) Set(value string) error {
	return (*slog.Level)(f).UnmarshalText([]byte(value))
}

func (f *logLevelFlag) String() string {
	return (*slog.Level)(f).String()
}
