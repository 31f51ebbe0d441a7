// Package schema embeds the PostgreSQL DDL for the plan tables.
package schema

import _ "embed"

// Plans creates the catalog, week and plan tables when missing.
//
//go:embed 001_plans.sql
var Plans string
