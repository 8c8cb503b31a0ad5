// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/fixtures"
	"github.com/bitmark-inc/introd/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) {
	fixtures.SetupTestLogger()
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown() {
	storage.Finalise()
	removeFiles()
	fixtures.TeardownTestLogger()
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

func commitElements(t *testing.T, elements []storage.Element) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}
	for _, e := range elements {
		trx.Put(storage.Pool.Slots, e.Key, e.Value)
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestInitialiseTwice(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")
}

func TestNotInitialised(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, trx, "transaction")
	assert.Equal(t, fault.DatabaseIsNotSet, err, "error")
}

func TestCommit(t *testing.T) {
	setup(t)
	defer teardown()

	key := []byte("key")
	value := []byte("value")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "new transaction")
	assert.True(t, trx.InUse(), "in use")

	trx.Put(storage.Pool.Slots, key, value)

	assert.Equal(t, value, trx.Get(storage.Pool.Slots, key), "transaction sees own write")
	assert.True(t, trx.Has(storage.Pool.Slots, key), "transaction has own write")
	assert.Nil(t, storage.Pool.Slots.Get(key), "uncommitted write visible")
	assert.False(t, storage.Pool.Slots.Has(key), "uncommitted write present")

	err = trx.Commit()
	assert.Nil(t, err, "commit")
	assert.False(t, trx.InUse(), "in use after commit")

	assert.Equal(t, value, storage.Pool.Slots.Get(key), "committed value")
	assert.True(t, storage.Pool.Slots.Has(key), "committed key")

	err = trx.Commit()
	assert.Equal(t, fault.TransactionNotStarted, err, "second commit")
}

func TestAbort(t *testing.T) {
	setup(t)
	defer teardown()

	key := []byte("key")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "new transaction")

	trx.Put(storage.Pool.Slots, key, []byte("value"))
	trx.Abort()

	assert.False(t, trx.InUse(), "in use after abort")
	assert.Nil(t, trx.Get(storage.Pool.Slots, key), "aborted write still visible to transaction")
	assert.Nil(t, storage.Pool.Slots.Get(key), "aborted write committed")

	err = trx.Commit()
	assert.Equal(t, fault.TransactionNotStarted, err, "commit after abort")
	assert.Nil(t, storage.Pool.Slots.Get(key), "aborted write committed")
}

func TestDelete(t *testing.T) {
	setup(t)
	defer teardown()

	key := []byte("key")
	commitElements(t, []storage.Element{{Key: key, Value: []byte("value")}})

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "new transaction")

	trx.Delete(storage.Pool.Slots, key)
	assert.False(t, trx.Has(storage.Pool.Slots, key), "deleted key present in transaction")
	assert.Nil(t, trx.Get(storage.Pool.Slots, key), "deleted key readable in transaction")
	assert.True(t, storage.Pool.Slots.Has(key), "uncommitted delete")

	err = trx.Commit()
	assert.Nil(t, err, "commit")
	assert.False(t, storage.Pool.Slots.Has(key), "committed delete")
}

func TestPutCopiesValue(t *testing.T) {
	setup(t)
	defer teardown()

	key := []byte("key")
	value := []byte("value")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "new transaction")

	trx.Put(storage.Pool.Slots, key, value)
	value[0] = 'X'

	assert.Equal(t, []byte("value"), trx.Get(storage.Pool.Slots, key), "overlay value")
	assert.Nil(t, trx.Commit(), "commit")
	assert.Equal(t, []byte("value"), storage.Pool.Slots.Get(key), "committed value")
}

func TestConcurrentTransactions(t *testing.T) {
	setup(t)
	defer teardown()

	trx1, err := storage.NewDBTransaction()
	assert.Nil(t, err, "first transaction")
	trx2, err := storage.NewDBTransaction()
	assert.Nil(t, err, "second transaction")

	trx1.Put(storage.Pool.Slots, []byte("one"), []byte("1"))
	trx2.Put(storage.Pool.Slots, []byte("two"), []byte("2"))

	assert.Nil(t, trx2.Get(storage.Pool.Slots, []byte("one")), "isolated")

	assert.Nil(t, trx2.Commit(), "second commit")
	trx1.Abort()

	assert.Nil(t, storage.Pool.Slots.Get([]byte("one")), "aborted")
	assert.Equal(t, []byte("2"), storage.Pool.Slots.Get([]byte("two")), "committed")
}

func TestFetch(t *testing.T) {
	setup(t)
	defer teardown()

	// insert in a different order
	commitElements(t, []storage.Element{
		expectedElements[5],
		expectedElements[0],
		expectedElements[3],
		expectedElements[1],
		expectedElements[4],
		expectedElements[2],
	})

	cursor := storage.Pool.Slots.NewFetchCursor()

	data, err := cursor.Fetch(4)
	assert.Nil(t, err, "first fetch")
	assert.Equal(t, expectedElements[:4], data, "first fetch")

	data, err = cursor.Fetch(4)
	assert.Nil(t, err, "second fetch")
	assert.Equal(t, expectedElements[4:], data, "second fetch")

	data, err = cursor.Fetch(4)
	assert.Nil(t, err, "third fetch")
	assert.Equal(t, 0, len(data), "third fetch")

	data, err = storage.Pool.Slots.NewFetchCursor().Seek([]byte("key-s")).Fetch(2)
	assert.Nil(t, err, "seek fetch")
	assert.Equal(t, expectedElements[3:5], data, "seek fetch")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")

	var nilCursor *storage.FetchCursor
	_, err = nilCursor.Fetch(1)
	assert.Equal(t, fault.InvalidCursor, err, "nil cursor")
}

func TestFetchDoesNotSkipPrefixedKeys(t *testing.T) {
	setup(t)
	defer teardown()

	elements := []storage.Element{
		{Key: []byte{0x00, 0x01}, Value: []byte("a")},
		{Key: []byte{0x00, 0x01, 0x00}, Value: []byte("b")},
		{Key: []byte{0x00, 0x02}, Value: []byte("c")},
	}
	commitElements(t, elements)

	cursor := storage.Pool.Slots.NewFetchCursor()
	for i, e := range elements {
		data, err := cursor.Fetch(1)
		assert.Nil(t, err, "%d: fetch", i)
		assert.Equal(t, []storage.Element{e}, data, "%d: fetch", i)
	}
}

func TestMap(t *testing.T) {
	setup(t)
	defer teardown()

	commitElements(t, expectedElements)

	seen := make([]storage.Element, 0, len(expectedElements))
	err := storage.Pool.Slots.NewFetchCursor().Map(func(key []byte, value []byte) error {
		seen = append(seen, storage.Element{Key: key, Value: value})
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, expectedElements, seen, "map")

	count := 0
	err = storage.Pool.Slots.NewFetchCursor().Map(func(key []byte, value []byte) error {
		count += 1
		if 2 == count {
			return fault.InvalidCount
		}
		return nil
	})
	assert.Equal(t, fault.InvalidCount, err, "map error")
	assert.Equal(t, 2, count, "map stopped")
}

func TestReadOnly(t *testing.T) {
	setup(t)
	commitElements(t, expectedElements[:1])
	storage.Finalise()
	defer teardown()

	err := storage.Initialise(databaseFileName, storage.ReadOnly)
	assert.Nil(t, err, "read only initialise")

	assert.Equal(t, expectedElements[0].Value, storage.Pool.Slots.Get(expectedElements[0].Key), "read")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ReadOnlyDatabase, err, "transaction")
}

func TestVersionTooNew(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	removeFiles()
	defer removeFiles()

	db, err := leveldb.OpenFile(databaseFileName, nil)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	err = db.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, []byte{0x00, 0x00, 0xff, 0xff}, nil)
	assert.Nil(t, err, "put version")
	db.Close()

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Equal(t, fault.DatabaseVersionTooNew, err, "initialise")

	// database was closed on failure
	err = storage.Initialise(databaseFileName+"-other", storage.ReadWrite)
	assert.Nil(t, err, "initialise other")
	storage.Finalise()
	os.RemoveAll(databaseFileName + "-other")
}
