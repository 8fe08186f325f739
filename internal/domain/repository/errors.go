package repository

import "errors"

// ErrNotFound is returned by repositories when no row matches the id and
// owner filter. Callers translate it into their own not-found errors.
var ErrNotFound = errors.New("not found")
