package sqlite

import "strings"

// modernc.org/sqlite surfaces constraint failures as plain error strings,
// so detection goes by message rather than error code.
func constraintFailed(err error, kind string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), kind+" constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return constraintFailed(err, "FOREIGN KEY")
}

func isUniqueViolation(err error) bool {
	return constraintFailed(err, "UNIQUE")
}
