// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"context"
	"database/sql/driver"
	"net"
)

type connector struct {
	cfg *Config
}

// Connect implements driver.Connector interface.
// Connect returns a connection to the database.
func (c connector) Connect(ctx context.Context) (driver.Conn, error) {
	mc := &monetConn{
		cfg:          c.cfg,
		writeTimeout: c.cfg.WriteTimeout,
		state:        stateInit,
	}

	network, addr := c.cfg.network()
	nd := net.Dialer{Timeout: c.cfg.Timeout}
	var err error
	mc.netConn, err = nd.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	if tc, ok := mc.netConn.(*net.TCPConn); ok {
		if err := tc.SetKeepAlive(true); err != nil {
			mc.netConn.Close()
			mc.netConn = nil
			return nil, err
		}
		tc.SetNoDelay(true)
	}

	mc.buf = newBuffer(mc.netConn)
	mc.buf.timeout = c.cfg.ReadTimeout

	// A local server expects a single '0' byte before the handshake,
	// except for control sessions.
	if network == "unix" && c.cfg.Language != LanguageControl {
		if err := mc.writeAll([]byte{'0'}); err != nil {
			mc.cleanup()
			return nil, err
		}
	}

	if err := mc.login(0); err != nil {
		mc.cleanup()
		return nil, err
	}
	mc.state = stateReady

	return mc, nil
}

// Driver implements driver.Connector interface.
// Driver returns &MonetDBDriver{}.
func (c connector) Driver() driver.Driver {
	return &MonetDBDriver{}
}
