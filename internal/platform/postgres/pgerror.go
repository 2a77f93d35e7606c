package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// insufficientPrivilege is the Postgres error code raised when row-level
// security rejects a statement.
const insufficientPrivilege = "42501"

// IsPermissionDenied reports whether err is a row-level-security or privilege
// denial. Stores use this to translate driver errors into
// sentinel.ErrPermissionDenied, which halts a sync run: once one write is
// denied, every later write in the run will be denied identically.
func IsPermissionDenied(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) == insufficientPrivilege {
		return true
	}
	return strings.Contains(strings.ToLower(pqErr.Message), "row-level security")
}
