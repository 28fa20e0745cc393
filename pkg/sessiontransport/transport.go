// Package sessiontransport abstracts where the session token lives on the
// client. Components read and write the token only through [Transport].
package sessiontransport

import "time"

// Transport stores one named value on the client.
type Transport interface {
	// Get returns the value and whether it is present.
	Get(name string) (string, bool)

	// Set stores the value until expiresAt.
	Set(name, value string, expiresAt time.Time)

	// Delete removes the value.
	Delete(name string)
}
