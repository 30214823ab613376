// Package auth issues and verifies the signed session credential that names
// a marketplace identity, builds the HTTP-only cookie carrying it and defines
// the AuthContext and ownership check used by protected endpoints.
package auth
