// Package orm is a thin chainable wrapper over gorm that keeps repository
// code free of *gorm.DB plumbing and adds cache-through reads and
// pagination helpers.
package orm

import (
	"errors"
	"time"

	"autoparts/pkg/cache"
	"autoparts/pkg/database"
	"autoparts/pkg/metrics"
	"gorm.io/gorm"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap adapts an existing *gorm.DB (e.g. a transaction handle) into a Query.
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(name string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(name, args...)}
}

func (q *Query) Select(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

// The finisher methods below feed the db query latency histogram; the
// chainable builders above cost nothing and are not timed.

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	defer metrics.ObserveDBQuery("count", time.Now())
	return q.db.Count(n).Error
}

func (q *Query) Pluck(column string, dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Distinct(column).Pluck(column, dest).Error
}

func (q *Query) Scan(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Scan(dest).Error
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v, conds...).Error
}

// Cache runs Get through the Redis cache: on a hit dest is filled from the
// cached JSON, on a miss the query executes and the result is stored.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	start := time.Now()
	err := q.db.Find(dest).Error
	metrics.ObserveDBQuery("select", start)
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// ── Pagination ───────────────────────────────────────────────────────────────

// Pagination describes one page of a larger result set.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// GetWithPagination fills dest with one page of results and returns the
// paging metadata. page and limit are normalised (page ≥ 1, 1 ≤ limit ≤ 100).
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	defer metrics.ObserveDBQuery("select", time.Now())

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}, nil
}

// ── Transactions ─────────────────────────────────────────────────────────────

// Transaction runs fn inside a database transaction. Returning an error
// rolls everything back.
func Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}
