// Package database classifies driver errors shared by every repository. The
// connection itself lives in the database/database subpackage.
package database
