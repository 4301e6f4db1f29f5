package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"

	"boscoin.io/council/lib/errors"
)

// Snapshot is a read-only `LevelDBCore`; writes return
// `errors.NotImplemented`.
type Snapshot struct {
	*leveldb.Snapshot
}

func (s *Snapshot) Put([]byte, []byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Delete([]byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}
