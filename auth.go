// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/ripemd160"
)

// challenge holds the fields of the server's login challenge:
//
//	salt : identity : protocol : hash_list : endianness : algo
//
// The endianness hint is ignored; protocol v9 frames little-endian.
type challenge struct {
	salt     string
	identity string
	protocol string
	hashes   []string
	algo     string
}

func parseChallenge(msg []byte) (*challenge, error) {
	fields := strings.Split(string(msg), ":")
	if len(fields) < 6 {
		return nil, connErrf("malformed login challenge: %q", msg)
	}

	return &challenge{
		salt:     fields[0],
		identity: fields[1],
		protocol: fields[2],
		hashes:   strings.Split(fields[3], ","),
		algo:     fields[5],
	}, nil
}

// response computes the client's answer to the challenge:
//
//	BIG:<user>:{<HASH>}<hex digest>:<language>:<database>:
//
// The password is first hashed with the algorithm the server named in
// the challenge, then the hex form of that digest is salted and hashed
// with the strongest algorithm both sides support.
func (ch *challenge) response(cfg *Config) (string, error) {
	if ch.protocol != "9" {
		return "", connErrf("Unsupported protocol version: %s", ch.protocol)
	}
	if ch.identity != "mserver" && ch.identity != "merovingian" {
		return "", connErrf("Unknown server type: %s", ch.identity)
	}

	preHash, err := encodingAlgorithm(ch.algo)
	if err != nil {
		return "", err
	}
	name, pwHash, err := passwordAlgorithm(ch.hashes)
	if err != nil {
		return "", err
	}

	hashedPw := hexDigest(preHash(), cfg.Passwd)
	saltedPw := hexDigest(pwHash(), hashedPw+ch.salt)

	return "BIG:" + cfg.User + ":{" + name + "}" + saltedPw +
		":" + string(cfg.Language) + ":" + cfg.Database + ":", nil
}

// encodingAlgorithm resolves the password pre-hash the server asked for.
func encodingAlgorithm(algo string) (func() hash.Hash, error) {
	switch algo {
	case "SHA256":
		return sha256.New, nil
	case "SHA512":
		return sha512.New, nil
	}
	return nil, connErrf("Server requested unsupported cryptographic algorithm %s", algo)
}

// passwordAlgorithm picks the hash used for the stored password from the
// server's list, strongest first.
func passwordAlgorithm(hashes []string) (string, func() hash.Hash, error) {
	supported := []struct {
		name string
		new  func() hash.Hash
	}{
		{"SHA512", sha512.New},
		{"SHA256", sha256.New},
		{"RIPEMD160", ripemd160.New},
	}

	for _, algo := range supported {
		for _, h := range hashes {
			if h == algo.name {
				return algo.name, algo.new, nil
			}
		}
	}
	return "", nil, connErr("No supported hash algorithm found")
}

func hexDigest(h hash.Hash, s string) string {
	io.WriteString(h, s)
	return hex.EncodeToString(h.Sum(nil))
}
