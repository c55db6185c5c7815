// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

// MAPI protocol version 9: peers exchange messages in blocks of at most
// blockSize bytes. Each block carries a 2 byte little-endian header
// encoding (payload length << 1) | lastFlag.
const blockSize = 8*1024 - 2

const (
	defaultPort     = 50000
	defaultUsername = "monetdb"
	defaultPassword = "monetdb"
)

// Language selects the MAPI sub-language spoken after login.
type Language string

const (
	LanguageSQL     Language = "sql"
	LanguageMAPI    Language = "mapi"
	LanguageControl Language = "control"
)

// Connection states
const (
	stateInit = iota
	stateReady
)

// A merovingian daemon may bounce the login a few times while it forks
// the target server. Bound the restarts so a misbehaving proxy cannot
// drive unbounded recursion.
const maxRedirects = 10
