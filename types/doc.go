// Package types holds the shared data types of tokstat.
package types
