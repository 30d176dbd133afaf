// Package database opens the PostgreSQL pool that backs the store.
//
// The loader keeps one pool per process. Reference data (classifications,
// equities, options) and quote history live in the same database.
package database
