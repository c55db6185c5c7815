// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import "database/sql/driver"

// monetStmt is a client-side statement. MonetDB's prepared statements
// are not used; arguments are bound into {} placeholders before the
// query is sent.
type monetStmt struct {
	mc     *monetConn
	query  string
	params int
}

func (stmt *monetStmt) Close() error {
	stmt.mc = nil
	return nil
}

func (stmt *monetStmt) NumInput() int {
	return stmt.params
}

func (stmt *monetStmt) Exec(args []driver.Value) (driver.Result, error) {
	if stmt.mc == nil {
		return nil, ErrInvalidConn
	}
	return stmt.mc.Exec(stmt.query, args)
}

func (stmt *monetStmt) Query(args []driver.Value) (driver.Rows, error) {
	if stmt.mc == nil {
		return nil, ErrInvalidConn
	}
	return stmt.mc.Query(stmt.query, args)
}
