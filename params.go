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
	"strconv"
	"strings"
)

// bindParams renders a query template, substituting each {} placeholder
// with the quoted literal form of the corresponding argument.
// An empty argument list returns the template unchanged.
func bindParams(query string, args []driver.Value) (string, error) {
	if len(args) == 0 {
		return query, nil
	}
	if strings.Count(query, "{}") != len(args) {
		return "", ErrParamMismatch
	}

	var b strings.Builder
	b.Grow(len(query))

	rest := query
	for _, arg := range args {
		i := strings.Index(rest, "{}")
		b.WriteString(rest[:i])
		literal, err := quote(arg)
		if err != nil {
			return "", err
		}
		b.WriteString(literal)
		rest = rest[i+2:]
	}
	b.WriteString(rest)

	return b.String(), nil
}

// quote renders one argument as a SQL literal. Strings are wrapped in
// single quotes after every single quote in the payload is removed;
// stripping rather than escaping keeps the literal inert.
func quote(arg driver.Value) (string, error) {
	switch v := arg.(type) {
	case nil:
		return "NULL", nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		if v {
			return "'true'", nil
		}
		return "'false'", nil
	case string:
		return quoteString(v), nil
	case []byte:
		return quoteString(string(v)), nil
	}
	return "", fmt.Errorf("unsupported parameter type %T", arg)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "") + "'"
}
