// Package repository defines error types that are reused across multiple
// repositories.  Lookups of ids that do not exist are not errors here: reads
// return nil or an empty slice and writes report zero counts.
package repository

import "github.com/pkg/errors"

// ErrInvalidID is returned when a path or body identifier is not a valid
// ObjectID.  It is never translated into a not-found result.
var ErrInvalidID = errors.New("invalid object id")
