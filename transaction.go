// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

type monetTx struct {
	mc *monetConn
}

func (tx *monetTx) Commit() error {
	if tx.mc == nil {
		return ErrInvalidConn
	}
	_, err := tx.mc.execSQL("COMMIT")
	tx.mc = nil
	return err
}

func (tx *monetTx) Rollback() error {
	if tx.mc == nil {
		return ErrInvalidConn
	}
	_, err := tx.mc.execSQL("ROLLBACK")
	tx.mc = nil
	return err
}
