package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for unique index violations.
const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a unique index violation. Uniqueness
// races that slip past application-level pre-checks surface here.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
