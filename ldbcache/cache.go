// Package ldbcache keeps solved equilibria in a LevelDB database on disk,
// keyed by a caller-chosen game key. Solving is pure and repeatable, so
// the cache is a plain lookaside: Get before solving, Put after.
package ldbcache

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	nash "github.com/timpalpant/go-nash"
)

const (
	purePrefix     = "pure:"
	mixedPrefix    = "mixed:"
	bayesianPrefix = "bayes:"
)

// Cache is a disk-backed store of equilibrium results.
type Cache struct {
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New wraps an open LevelDB database. The caller retains ownership of db
// unless Close is called.
func New(db *leveldb.DB) *Cache {
	return &Cache{db: db}
}

// Open opens (creating if needed) a cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open cache at %s", path)
	}
	return New(db), nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// PutPure stores a pure-strategy result under the given game key.
func (c *Cache) PutPure(key string, result *nash.PureResult) error {
	return c.put(purePrefix+key, result)
}

// GetPure fetches the pure-strategy result stored under the given game
// key. ok is false when no result is cached.
func (c *Cache) GetPure(key string) (result *nash.PureResult, ok bool, err error) {
	result = &nash.PureResult{}
	ok, err = c.get(purePrefix+key, result)
	if !ok {
		return nil, ok, err
	}
	return result, true, nil
}

// PutMixed stores mixed-strategy equilibria under the given game key.
func (c *Cache) PutMixed(key string, eqs []nash.MixedEquilibrium) error {
	return c.put(mixedPrefix+key, eqs)
}

// GetMixed fetches the mixed-strategy equilibria stored under the given
// game key. ok is false when no result is cached.
func (c *Cache) GetMixed(key string) (eqs []nash.MixedEquilibrium, ok bool, err error) {
	ok, err = c.get(mixedPrefix+key, &eqs)
	if !ok {
		return nil, ok, err
	}
	return eqs, true, nil
}

// PutBayesian stores a Bayesian result under the given game key.
func (c *Cache) PutBayesian(key string, eq *nash.BayesianEquilibrium) error {
	return c.put(bayesianPrefix+key, eq)
}

// GetBayesian fetches the Bayesian result stored under the given game
// key. ok is false when no result is cached.
func (c *Cache) GetBayesian(key string) (eq *nash.BayesianEquilibrium, ok bool, err error) {
	eq = &nash.BayesianEquilibrium{}
	ok, err = c.get(bayesianPrefix+key, eq)
	if !ok {
		return nil, ok, err
	}
	return eq, true, nil
}

func (c *Cache) put(key string, value interface{}) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	if err := c.db.Put([]byte(key), buf.Bytes(), c.wOpts); err != nil {
		return errors.Wrapf(err, "store %s", key)
	}

	glog.V(1).Infof("cached %s (%d bytes)", key, buf.Len())
	return nil
}

func (c *Cache) get(key string, value interface{}) (bool, error) {
	buf, err := c.db.Get([]byte(key), c.rOpts)
	if err == leveldb.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "fetch %s", key)
	}

	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(value); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}
