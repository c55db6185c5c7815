// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"encoding/binary"
	"time"
)

// MAPI block framing. A logical message travels as a sequence of blocks,
// each prefixed by a little-endian uint16 header: the payload length
// shifted left by one, with the low bit set on the final block of the
// message.

// readBlock reassembles one complete message from the wire.
func (mc *monetConn) readBlock() ([]byte, error) {
	if mc.cfg.Language == LanguageControl {
		return nil, unimplErr("control sub-language framing")
	}

	var msg []byte
	for {
		head, err := mc.buf.readNext(2)
		if err != nil {
			errLog.Print(err)
			return nil, err
		}

		header := binary.LittleEndian.Uint16(head)
		length := int(header >> 1)
		last := header&1 == 1

		if length > 0 {
			data, err := mc.buf.readNext(length)
			if err != nil {
				errLog.Print(err)
				return nil, err
			}
			msg = append(msg, data...)
		}

		if last {
			return msg, nil
		}
	}
}

// writeBlock frames one message and writes it out. Full blocks are sent
// while at least blockSize bytes remain; the residual bytes always go
// out in a final block with the last flag set, even when there are none.
func (mc *monetConn) writeBlock(msg []byte) error {
	if mc.cfg.Language == LanguageControl {
		return unimplErr("control sub-language framing")
	}

	var head [2]byte
	for len(msg) >= blockSize {
		binary.LittleEndian.PutUint16(head[:], blockSize<<1)
		if err := mc.writeAll(head[:]); err != nil {
			return err
		}
		if err := mc.writeAll(msg[:blockSize]); err != nil {
			return err
		}
		msg = msg[blockSize:]
	}

	binary.LittleEndian.PutUint16(head[:], uint16(len(msg))<<1|1)
	if err := mc.writeAll(head[:]); err != nil {
		return err
	}
	if len(msg) > 0 {
		return mc.writeAll(msg)
	}
	return nil
}

func (mc *monetConn) writeAll(data []byte) error {
	if mc.writeTimeout > 0 {
		if err := mc.netConn.SetWriteDeadline(time.Now().Add(mc.writeTimeout)); err != nil {
			return ioErr(err)
		}
	}

	for len(data) > 0 {
		n, err := mc.netConn.Write(data)
		if err != nil {
			errLog.Print(err)
			return ioErr(err)
		}
		data = data[n:]
	}
	return nil
}
