package pkg

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// unicodeLower is the SQLite function Search folds case with. The built-in
// LOWER only folds ASCII, so 'CAFÉ' would never match 'café'.
const unicodeLower = "unicode_lower"

// Functions registered on the driver reach only connections opened later,
// so this runs before any database is opened.
func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(unicodeLower, 1, func(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// lowerFunc names the case-folding SQL function for the dialect of db.
func lowerFunc(db *gorm.DB) string {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return unicodeLower
	}
	return "LOWER"
}
