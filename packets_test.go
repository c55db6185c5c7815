// Go MonetDB Driver - A MonetDB-Driver for Go's database/sql package
//
// Copyright 2024 The Go-MonetDB-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package monetdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

var errConnClosed = errors.New("connection is closed")

// struct to mock a net.Conn for testing purposes
type mockConn struct {
	data    []byte
	written []byte
	closed  bool
}

func (m *mockConn) Read(b []byte) (n int, err error) {
	if m.closed {
		return 0, errConnClosed
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n = copy(b, m.data)
	m.data = m.data[n:]
	return
}

func (m *mockConn) Write(b []byte) (n int, err error) {
	if m.closed {
		return 0, errConnClosed
	}
	m.written = append(m.written, b...)
	return len(b), nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) LocalAddr() net.Addr                { return nil }
func (m *mockConn) RemoteAddr() net.Addr               { return nil }
func (m *mockConn) SetDeadline(t time.Time) error      { return nil }
func (m *mockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *mockConn) SetWriteDeadline(t time.Time) error { return nil }

// frame encodes a payload as a single last block.
func frame(payload string) []byte {
	b := make([]byte, 2+len(payload))
	binary.LittleEndian.PutUint16(b, uint16(len(payload))<<1|1)
	copy(b[2:], payload)
	return b
}

func newTestConn(data []byte) (*monetConn, *mockConn) {
	nc := &mockConn{data: data}
	mc := &monetConn{
		cfg: &Config{
			User:     defaultUsername,
			Passwd:   defaultPassword,
			Database: "demo",
			Language: LanguageSQL,
		},
		netConn: nc,
		buf:     newBuffer(nc),
		state:   stateReady,
	}
	return mc, nc
}

func TestWriteBlockSingle(t *testing.T) {
	mc, nc := newTestConn(nil)

	if err := mc.writeBlock([]byte("hello")); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	want := []byte{0x0b, 0x00, 'h', 'e', 'l', 'l', 'o'}
	if !bytes.Equal(nc.written, want) {
		t.Errorf("written bytes: got % x, want % x", nc.written, want)
	}
}

func TestWriteBlockEmpty(t *testing.T) {
	mc, nc := newTestConn(nil)

	if err := mc.writeBlock(nil); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	// A zero-length last block still terminates the message.
	want := []byte{0x01, 0x00}
	if !bytes.Equal(nc.written, want) {
		t.Errorf("written bytes: got % x, want % x", nc.written, want)
	}
}

func TestWriteBlockSplit(t *testing.T) {
	mc, nc := newTestConn(nil)

	payload := bytes.Repeat([]byte{'x'}, blockSize+1)
	if err := mc.writeBlock(payload); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	if want := 2 + blockSize + 2 + 1; len(nc.written) != want {
		t.Fatalf("written %d bytes, want %d", len(nc.written), want)
	}
	if head := nc.written[:2]; head[0] != 0xfc || head[1] != 0x3f {
		t.Errorf("first header: got % x, want fc 3f", head)
	}
	if head := nc.written[2+blockSize : 4+blockSize]; head[0] != 0x03 || head[1] != 0x00 {
		t.Errorf("last header: got % x, want 03 00", head)
	}
}

func TestWriteBlockExactMultiple(t *testing.T) {
	mc, nc := newTestConn(nil)

	payload := bytes.Repeat([]byte{'x'}, blockSize)
	if err := mc.writeBlock(payload); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	// One full non-last block, then an empty last block to terminate.
	if want := 2 + blockSize + 2; len(nc.written) != want {
		t.Fatalf("written %d bytes, want %d", len(nc.written), want)
	}
	if head := nc.written[len(nc.written)-2:]; head[0] != 0x01 || head[1] != 0x00 {
		t.Errorf("last header: got % x, want 01 00", head)
	}
}

func TestReadBlockReassembly(t *testing.T) {
	var data []byte
	data = append(data, 6, 0, 'h', 'e', 'l') // non-last block
	data = append(data, 5, 0, 'l', 'o')      // last block

	mc, _ := newTestConn(data)
	msg, err := mc.readBlock()
	if err != nil {
		t.Fatalf("readBlock: %v", err)
	}
	if string(msg) != "hello" {
		t.Errorf("message: got %q, want %q", msg, "hello")
	}
}

func TestReadBlockEmptyMessage(t *testing.T) {
	mc, _ := newTestConn([]byte{0x01, 0x00})
	msg, err := mc.readBlock()
	if err != nil {
		t.Fatalf("readBlock: %v", err)
	}
	if len(msg) != 0 {
		t.Errorf("message: got %q, want empty", msg)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefghij"), 2000) // 20000 bytes, 3 blocks

	mc, nc := newTestConn(nil)
	if err := mc.writeBlock(payload); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}

	rd, _ := newTestConn(nc.written)
	msg, err := rd.readBlock()
	if err != nil {
		t.Fatalf("readBlock: %v", err)
	}
	if !bytes.Equal(msg, payload) {
		t.Errorf("round trip mismatch: got %d bytes, want %d", len(msg), len(payload))
	}
}

func TestReadBlockUnexpectedEOF(t *testing.T) {
	// Header promises 5 bytes, stream ends after 2.
	mc, _ := newTestConn([]byte{0x0b, 0x00, 'h', 'e'})

	_, err := mc.readBlock()
	var me *MapiError
	if !errors.As(err, &me) || me.Kind != ErrConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
	if me.Message != "Server closed the connection" {
		t.Errorf("message: got %q", me.Message)
	}
}

func TestWriteBlockControlUnimplemented(t *testing.T) {
	mc, _ := newTestConn(nil)
	mc.cfg.Language = LanguageControl

	err := mc.writeBlock([]byte("status"))
	var me *MapiError
	if !errors.As(err, &me) || me.Kind != ErrUnimplemented {
		t.Fatalf("expected unimplemented error, got %v", err)
	}
}
