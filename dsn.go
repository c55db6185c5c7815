// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	errInvalidDSNScheme     = errors.New("invalid DSN: scheme must be mapi://")
	errInvalidDSNNoDatabase = errors.New("invalid DSN: missing the database name")
)

// Config is a configuration parsed from a DSN string.
type Config struct {
	User     string   // Username, default "monetdb"
	Passwd   string   // Password, default "monetdb"
	Host     string   // Hostname; a leading '/' means a unix socket directory
	Port     int      // TCP port, default 50000
	Database string   // Database name (required)
	Language Language // MAPI sub-language, default sql

	UnixSocket string // Explicit unix socket path, overrides Host/Port

	Timeout      time.Duration // Dial timeout
	ReadTimeout  time.Duration // I/O read timeout
	WriteTimeout time.Duration // I/O write timeout
}

// ParseDSN parses the DSN string to a Config.
// The DSN has the form mapi://[user[:password]@]host[:port]/database.
func ParseDSN(dsn string) (*Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "mapi" {
		return nil, errInvalidDSNScheme
	}

	cfg := &Config{
		Host: u.Hostname(),
	}
	if u.User != nil {
		cfg.User = u.User.Username()
		if passwd, ok := u.User.Password(); ok {
			cfg.Passwd = passwd
		}
	}
	if p := u.Port(); p != "" {
		cfg.Port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid DSN: bad port: %w", err)
		}
	}
	cfg.Database = strings.TrimPrefix(u.Path, "/")
	if cfg.Database == "" {
		return nil, errInvalidDSNNoDatabase
	}

	for param, values := range u.Query() {
		value := values[len(values)-1]
		switch param {
		case "language":
			cfg.Language = Language(value)
		case "socket":
			// An empty value selects the server's default socket directory.
			if value == "" {
				cfg.Host = "/tmp"
			} else {
				cfg.UnixSocket = value
			}
		case "timeout":
			cfg.Timeout, err = time.ParseDuration(value)
		case "readTimeout":
			cfg.ReadTimeout, err = time.ParseDuration(value)
		case "writeTimeout":
			cfg.WriteTimeout, err = time.ParseDuration(value)
		default:
			err = fmt.Errorf("invalid DSN: unknown parameter %q", param)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.normalize()
	return cfg, nil
}

func (cfg *Config) normalize() {
	if cfg.User == "" {
		cfg.User = defaultUsername
	}
	if cfg.Passwd == "" {
		cfg.Passwd = defaultPassword
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Language == "" {
		cfg.Language = LanguageSQL
	}
}

// network resolves the endpoint to a (network, address) pair for net.Dial.
// A hostname starting with '/' is a directory holding the server's unix
// socket; an empty hostname with no explicit socket means localhost.
func (cfg *Config) network() (string, string) {
	if cfg.UnixSocket != "" {
		return "unix", cfg.UnixSocket
	}
	if strings.HasPrefix(cfg.Host, "/") {
		return "unix", fmt.Sprintf("%s/.s.monetdb.%d", cfg.Host, cfg.Port)
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	return "tcp", fmt.Sprintf("%s:%d", host, cfg.Port)
}
