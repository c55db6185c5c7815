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
	"net"
	"strings"
	"time"
	"unicode/utf8"
)

type monetConn struct {
	cfg          *Config
	netConn      net.Conn
	buf          *buffer
	writeTimeout time.Duration
	state        int
	busy         bool
	closed       bool
}

// login drives the challenge/response dance. A merovingian daemon may
// answer with a redirect that restarts the dance on the same socket.
func (mc *monetConn) login(iteration int) error {
	chalMsg, err := mc.readBlock()
	if err != nil {
		return err
	}
	ch, err := parseChallenge(chalMsg)
	if err != nil {
		return err
	}
	response, err := ch.response(mc.cfg)
	if err != nil {
		return err
	}
	if err = mc.writeBlock([]byte(response)); err != nil {
		return err
	}

	reply, err := mc.readBlock()
	if err != nil {
		return err
	}
	kind, _, skip, err := parsePrompt(reply)
	if err != nil {
		return err
	}

	switch kind {
	case promptEmpty, promptOK:
		// Server is happy
		return nil

	case promptError:
		return connErrf("login: server error: %s", reply)

	case promptRedirect:
		// The redirect target looks like <lang>:<scheme>://...
		target := string(reply[skip:])
		fields := strings.Split(target, ":")
		if len(fields) < 2 {
			return unknownRespErrf("login: malformed redirect: %q", target)
		}
		switch fields[1] {
		case "merovingian":
			if iteration >= maxRedirects {
				return connErrf("login: maximal number of redirects reached (%d)", maxRedirects)
			}
			return mc.login(iteration + 1)
		case "monetdb":
			return unimplErr("redirect to a different server")
		default:
			return connErrf("Unknown redirect: %s", target)
		}

	default:
		return unknownRespErrf("login: server responded with a %s prompt", kind)
	}
}

// cmd sends one message and interprets the server's reply. Only one
// command may be in flight on a connection at a time.
func (mc *monetConn) cmd(operation string) (string, error) {
	if mc.state != stateReady {
		return "", connErr("Not connected")
	}
	if mc.busy {
		errLog.Print(ErrBusy)
		return "", ErrBusy
	}
	mc.busy = true
	defer func() { mc.busy = false }()

	return mc.roundTrip(operation)
}

func (mc *monetConn) roundTrip(operation string) (string, error) {
	if err := mc.writeBlock([]byte(operation)); err != nil {
		return "", err
	}
	response, err := mc.readBlock()
	if err != nil {
		return "", err
	}

	kind, q, skip, err := parsePrompt(response)
	if err != nil {
		return "", err
	}

	switch kind {
	case promptEmpty:
		return "", nil

	case promptOK:
		return mc.text(response[skip:])

	case promptMore:
		// Tell the server it's not getting anything more from us
		return mc.roundTrip("")

	case promptQuery:
		text, err := mc.text(response)
		if err != nil {
			return "", err
		}
		if q == queryUpdate {
			for _, line := range strings.Split(text, "\n") {
				if strings.HasPrefix(line, "!") {
					return "", operationErr(line)
				}
			}
		}
		return text, nil

	case promptHeader, promptTuple:
		return mc.text(response)

	case promptError:
		text, err := mc.text(response)
		if err != nil {
			return "", err
		}
		return "", operationErr(text)

	default:
		return "", connErrf("unexpected %s prompt in response", kind)
	}
}

// text decodes a reply as UTF-8.
func (mc *monetConn) text(p []byte) (string, error) {
	if !utf8.Valid(p) {
		return "", serverErr(string(p))
	}
	return string(p), nil
}

// execSQL wraps a rendered statement in the SQL sub-command framing and
// runs it: a leading 's' selects SQL, a trailing "\n;" terminates it.
func (mc *monetConn) execSQL(query string) (string, error) {
	return mc.cmd("s" + query + "\n;")
}

func (mc *monetConn) Prepare(query string) (driver.Stmt, error) {
	if mc.closed {
		errLog.Print(ErrInvalidConn)
		return nil, driver.ErrBadConn
	}
	return &monetStmt{
		mc:     mc,
		query:  query,
		params: strings.Count(query, "{}"),
	}, nil
}

func (mc *monetConn) Begin() (driver.Tx, error) {
	if mc.closed {
		errLog.Print(ErrInvalidConn)
		return nil, driver.ErrBadConn
	}
	if _, err := mc.execSQL("START TRANSACTION"); err != nil {
		return nil, err
	}
	return &monetTx{mc: mc}, nil
}

func (mc *monetConn) Close() error {
	if mc.closed {
		return nil
	}
	mc.cleanup()
	return nil
}

// cleanup shuts the socket down in both directions and marks the
// connection terminally closed.
func (mc *monetConn) cleanup() {
	mc.closed = true
	mc.state = stateInit
	if mc.netConn == nil {
		return
	}
	if tc, ok := mc.netConn.(*net.TCPConn); ok {
		tc.CloseWrite()
	}
	if err := mc.netConn.Close(); err != nil {
		errLog.Print(err)
	}
	mc.netConn = nil
}

// Exec implements the driver.Execer interface.
func (mc *monetConn) Exec(query string, args []driver.Value) (driver.Result, error) {
	if mc.closed {
		errLog.Print(ErrInvalidConn)
		return nil, driver.ErrBadConn
	}
	rendered, err := bindParams(query, args)
	if err != nil {
		return nil, err
	}
	response, err := mc.execSQL(rendered)
	if err != nil {
		return nil, err
	}
	return parseUpdateResult(response), nil
}

// Query implements the driver.Queryer interface.
func (mc *monetConn) Query(query string, args []driver.Value) (driver.Rows, error) {
	if mc.closed {
		errLog.Print(ErrInvalidConn)
		return nil, driver.ErrBadConn
	}
	rendered, err := bindParams(query, args)
	if err != nil {
		return nil, err
	}
	response, err := mc.execSQL(rendered)
	if err != nil {
		return nil, err
	}
	rs, err := parseResultSet(response)
	if err != nil {
		return nil, err
	}
	return &monetRows{rs: rs}, nil
}
