package mysql

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
)

// nullString converts a string to sql.NullString.
// Returns NULL if the string is empty.
func nullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

// stringValue converts sql.NullString to string.
// Returns empty string if the value is NULL.
func stringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// isDuplicateError checks if an error is a duplicate key constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}

	if mysqlErr, ok := err.(*mysql.MySQLError); ok {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}

	return false
}
