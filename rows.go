// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"database/sql/driver"
	"io"
	"reflect"
	"strings"
)

// QueryMetadata is the statistics line a table response starts with:
// a '&1' tag followed by eight space-separated 32 bit integers.
type QueryMetadata struct {
	ResultID         int32
	RowCount         int32
	ColumnCount      int32
	RowsInMessage    int32
	QueryID          int32
	QueryTime        int32
	MalOptimizerTime int32
	SQLOptimizerTime int32
}

type resultSet struct {
	meta   QueryMetadata
	tables []string
	names  []string
	types  []string
	rows   [][]driver.Value
}

// parseResultSet decodes the textual reply of a table query: the '&1'
// metadata line, four '%' header lines and the '[ ... ]' tuple lines.
// Replies of any other shape produce an empty set.
func parseResultSet(response string) (*resultSet, error) {
	rs := &resultSet{}
	if !strings.HasPrefix(response, "&1") {
		return rs, nil
	}

	for _, line := range strings.Split(response, "\n") {
		if line == "" {
			continue
		}
		var err error
		switch line[0] {
		case '&':
			err = rs.parseMetadata(line)
		case '%':
			err = rs.parseHeader(line)
		case '[':
			err = rs.parseTuple(line)
		default:
			err = unknownRespErrf("unexpected line in result set: %q", line)
		}
		if err != nil {
			return nil, err
		}
	}

	return rs, nil
}

func (rs *resultSet) parseMetadata(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 9 {
		return unknownRespErrf("malformed result set statistics: %q", line)
	}

	dest := []*int32{
		&rs.meta.ResultID,
		&rs.meta.RowCount,
		&rs.meta.ColumnCount,
		&rs.meta.RowsInMessage,
		&rs.meta.QueryID,
		&rs.meta.QueryTime,
		&rs.meta.MalOptimizerTime,
		&rs.meta.SQLOptimizerTime,
	}
	for i, d := range dest {
		n, err := atoi32(fields[i+1])
		if err != nil {
			return unknownRespErrf("malformed result set statistics: %q", line)
		}
		*d = n
	}
	return nil
}

// parseHeader handles one '% a,<tab>b # kind' metadata line.
func (rs *resultSet) parseHeader(line string) error {
	hash := strings.LastIndexByte(line, '#')
	if hash < 0 {
		return unknownRespErrf("malformed header line: %q", line)
	}

	var values []string
	for _, v := range strings.Split(line[1:hash], ",") {
		values = append(values, strings.TrimSpace(v))
	}

	switch strings.TrimSpace(line[hash+1:]) {
	case "table_name":
		rs.tables = values
	case "name":
		rs.names = values
	case "type":
		rs.types = values
	case "length":
		// column display widths, unused
	}
	return nil
}

func (rs *resultSet) parseTuple(line string) error {
	body := strings.TrimSpace(line)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")

	fields := strings.Split(body, ",")
	if len(fields) != len(rs.types) {
		return unknownRespErrf("tuple has %d fields, want %d: %q", len(fields), len(rs.types), line)
	}

	row := make([]driver.Value, len(fields))
	for i, f := range fields {
		f = stripQuotes(strings.TrimSpace(f))
		if f == "NULL" {
			continue
		}
		v, err := parseValue(rs.types[i], f)
		if err != nil {
			return err
		}
		row[i] = v
	}
	rs.rows = append(rs.rows, row)
	return nil
}

type monetRows struct {
	rs  *resultSet
	pos int
}

func (rows *monetRows) Columns() []string {
	columns := make([]string, len(rows.rs.names))
	copy(columns, rows.rs.names)
	return columns
}

func (rows *monetRows) Close() error {
	rows.rs = nil
	return nil
}

func (rows *monetRows) Next(dest []driver.Value) error {
	if rows.rs == nil || rows.pos >= len(rows.rs.rows) {
		return io.EOF
	}
	copy(dest, rows.rs.rows[rows.pos])
	rows.pos++
	return nil
}

// ColumnTypeDatabaseTypeName implements driver.RowsColumnTypeDatabaseTypeName.
func (rows *monetRows) ColumnTypeDatabaseTypeName(i int) string {
	return strings.ToUpper(rows.rs.types[i])
}

// ColumnTypeScanType implements driver.RowsColumnTypeScanType.
func (rows *monetRows) ColumnTypeScanType(i int) reflect.Type {
	return scanType(rows.rs.types[i])
}
