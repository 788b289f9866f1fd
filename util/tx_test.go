// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/ash-chain/ashd/daghash"
	"github.com/ash-chain/ashd/util"
	"github.com/ash-chain/ashd/wire"
	"github.com/davecgh/go-spew/spew"
)

var daghashZeroTxID daghash.TxID

func sampleMsgTx() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&daghashZeroTxID, 0xffffffff), []byte{0x01, 0x02}))
	tx.AddTxOut(wire.NewTxOut(5000000000, []byte{0x76, 0xa9}))
	return tx
}

func sampleSecondMsgTx() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&daghashZeroTxID, 0), []byte{0x03}))
	tx.AddTxOut(wire.NewTxOut(1234, []byte{0xac}))
	tx.AddTxOut(wire.NewTxOut(5678, []byte{0xae}))
	return tx
}

// TestTx tests the API for Tx.
func TestTx(t *testing.T) {
	firstTestTx := sampleMsgTx()
	firstTx := util.NewTx(firstTestTx)
	secondTestTx := sampleSecondMsgTx()
	secondTx := util.NewTx(secondTestTx)

	// Ensure we get the same data back out.
	if msgTx := firstTx.MsgTx(); !reflect.DeepEqual(msgTx, firstTestTx) {
		t.Errorf("MsgTx: mismatched MsgTx - got %v, want %v",
			spew.Sdump(msgTx), spew.Sdump(firstTestTx))
	}

	// Ensure transaction index set and get work properly.
	wantIndex := 0
	firstTx.SetIndex(0)
	if gotIndex := firstTx.Index(); gotIndex != wantIndex {
		t.Errorf("Index: mismatched index - got %v, want %v",
			gotIndex, wantIndex)
	}

	wantHash := firstTestTx.TxID()

	// Request the hash multiple times to test generation and caching.
	for i := 0; i < 2; i++ {
		hash := firstTx.ID()
		if !hash.IsEqual(&wantHash) {
			t.Errorf("ID #%d mismatched id - got %v, want %v", i, hash, wantHash)
		}
	}

	wantID := secondTestTx.TxID()
	for i := 0; i < 2; i++ {
		id := secondTx.ID()
		if !id.IsEqual(&wantID) {
			t.Errorf("ID #%d mismatched id - got %v, want %v", i, id, wantID)
		}
	}
}

// TestNewTxFromBytes tests creation of a Tx from serialized bytes.
func TestNewTxFromBytes(t *testing.T) {
	testTx := sampleMsgTx()
	var testTxBuf bytes.Buffer
	if err := testTx.Serialize(&testTxBuf); err != nil {
		t.Errorf("Serialize: %v", err)
	}
	testTxBytes := testTxBuf.Bytes()

	tx, err := util.NewTxFromBytes(testTxBytes)
	if err != nil {
		t.Errorf("NewTxFromBytes: %v", err)
		return
	}

	if msgTx := tx.MsgTx(); !reflect.DeepEqual(msgTx, testTx) {
		t.Errorf("MsgTx: mismatched MsgTx - got %v, want %v",
			spew.Sdump(msgTx), spew.Sdump(testTx))
	}
}

// TestTxErrors tests the error paths for the Tx API.
func TestTxErrors(t *testing.T) {
	testTx := sampleMsgTx()
	var testTxBuf bytes.Buffer
	if err := testTx.Serialize(&testTxBuf); err != nil {
		t.Errorf("Serialize: %v", err)
	}
	testTxBytes := testTxBuf.Bytes()

	shortBytes := testTxBytes[:4]
	_, err := util.NewTxFromBytes(shortBytes)
	if err != io.EOF && err != io.ErrUnexpectedEOF {
		t.Errorf("NewTxFromBytes: did not get expected error - "+
			"got %v, want io.EOF or io.ErrUnexpectedEOF", err)
	}
}
