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
	"fmt"
	"reflect"
	"strconv"
)

// Column type tags as they appear in the '% ... # type' metadata line.
const (
	typeInt    = "int"
	typeDouble = "double"
	typeString = "string"
	typeClob   = "clob"
)

// parseValue converts one textual tuple field to its Go value, driven by
// the column's type tag. Values arrive as 32 bit ints and floats on the
// wire and are widened to fit the driver.Value universe.
func parseValue(tag, field string) (driver.Value, error) {
	switch tag {
	case typeInt:
		n, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed int field %q: %w", field, err)
		}
		return n, nil

	case typeDouble:
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed double field %q: %w", field, err)
		}
		return f, nil

	case typeString, typeClob:
		return field, nil
	}

	return nil, unimplErr(fmt.Sprintf("column type %q", tag))
}

var (
	scanTypeInt64   = reflect.TypeOf(int64(0))
	scanTypeFloat64 = reflect.TypeOf(float64(0))
	scanTypeString  = reflect.TypeOf("")
)

func scanType(tag string) reflect.Type {
	switch tag {
	case typeInt:
		return scanTypeInt64
	case typeDouble:
		return scanTypeFloat64
	}
	return scanTypeString
}
