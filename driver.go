// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

// Package monetdb provides a MonetDB driver for Go's database/sql package.
//
// The driver speaks MAPI protocol version 9 over TCP or unix domain
// sockets. Connections are described by DSNs of the form
//
//	mapi://[user[:password]@]host[:port]/database
//
// Statement parameters are interpolated client-side into {} placeholders.
package monetdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// MonetDBDriver is exported to make the driver directly accessible.
// In general the driver is used via the database/sql package.
type MonetDBDriver struct{}

// Open new Connection.
// See ParseDSN for how the DSN string is formatted.
func (d MonetDBDriver) Open(dsn string) (driver.Conn, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	c := connector{cfg: cfg}
	return c.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext.
func (d MonetDBDriver) OpenConnector(dsn string) (driver.Connector, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return connector{cfg: cfg}, nil
}

func init() {
	sql.Register("monetdb", &MonetDBDriver{})
}
