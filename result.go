// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import "strings"

type monetResult struct {
	affectedRows int64
	insertID     int64
}

func (res *monetResult) LastInsertId() (int64, error) {
	return res.insertID, nil
}

func (res *monetResult) RowsAffected() (int64, error) {
	return res.affectedRows, nil
}

// parseUpdateResult extracts the affected-row count and last insert id
// from an update reply. The interesting line reads
//
//	&2 <affected rows> <last id> ...
//
// Replies without one (schema changes, transaction control) count as
// zero rows affected.
func parseUpdateResult(response string) *monetResult {
	res := &monetResult{insertID: -1}
	for _, line := range strings.Split(response, "\n") {
		if !strings.HasPrefix(line, "&2 ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 1 {
			if n, err := atoi32(fields[1]); err == nil {
				res.affectedRows = int64(n)
			}
		}
		if len(fields) > 2 {
			if n, err := atoi32(fields[2]); err == nil {
				res.insertID = int64(n)
			}
		}
		break
	}
	return res
}
