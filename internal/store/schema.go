package store

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sector_classification (
		hash          UUID PRIMARY KEY,
		sector        TEXT NOT NULL,
		subsector     TEXT NOT NULL,
		segment       TEXT NOT NULL,
		company       TEXT NOT NULL,
		listing_code  TEXT NOT NULL,
		segment_label TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS sector_classification_listing_code_idx
		ON sector_classification (listing_code)`,
	`CREATE TABLE IF NOT EXISTS equities (
		ticker              TEXT PRIMARY KEY,
		internal_id         BIGINT,
		isin                TEXT NOT NULL,
		description         TEXT NOT NULL,
		currency            TEXT NOT NULL,
		market_cap          NUMERIC(20, 2) NOT NULL,
		load_date           DATE NOT NULL,
		classification_hash UUID REFERENCES sector_classification (hash)
	)`,
	`CREATE TABLE IF NOT EXISTS options (
		ticker            TEXT PRIMARY KEY,
		internal_id       BIGINT,
		isin              TEXT NOT NULL,
		description       TEXT NOT NULL,
		strike            NUMERIC(15, 2) NOT NULL,
		strike_currency   TEXT NOT NULL,
		style             TEXT NOT NULL,
		option_type       TEXT NOT NULL,
		expiration        DATE NOT NULL,
		load_date         DATE NOT NULL,
		underlying_ticker TEXT NOT NULL,
		underlying_id     BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS market_data (
		ticker     TEXT NOT NULL,
		trade_date DATE NOT NULL,
		open       NUMERIC(15, 2) NOT NULL,
		high       NUMERIC(15, 2) NOT NULL,
		low        NUMERIC(15, 2) NOT NULL,
		average    NUMERIC(15, 2) NOT NULL,
		close      NUMERIC(15, 2) NOT NULL,
		best_bid   NUMERIC(15, 2) NOT NULL,
		best_ask   NUMERIC(15, 2) NOT NULL,
		trades     BIGINT NOT NULL,
		quantity   BIGINT NOT NULL,
		volume     NUMERIC(20, 2) NOT NULL,
		PRIMARY KEY (ticker, trade_date)
	)`,
	`CREATE TABLE IF NOT EXISTS historic_market_data (
		ticker           TEXT NOT NULL,
		trade_date       DATE NOT NULL,
		bdi_code         TEXT NOT NULL,
		market_type      INTEGER NOT NULL,
		isin             TEXT NOT NULL,
		open             NUMERIC(15, 2) NOT NULL,
		high             NUMERIC(15, 2) NOT NULL,
		low              NUMERIC(15, 2) NOT NULL,
		average          NUMERIC(15, 2) NOT NULL,
		close            NUMERIC(15, 2) NOT NULL,
		best_bid         NUMERIC(15, 2) NOT NULL,
		best_ask         NUMERIC(15, 2) NOT NULL,
		trades           BIGINT NOT NULL,
		quantity         BIGINT NOT NULL,
		volume           NUMERIC(20, 2) NOT NULL,
		strike           NUMERIC(15, 2) NOT NULL,
		expiration       DATE,
		quotation_factor BIGINT NOT NULL,
		PRIMARY KEY (ticker, trade_date)
	)`,
}

// EnsureSchema creates missing tables and indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	s.logger.Debug("schema ready", "statements", len(schema))
	return nil
}
