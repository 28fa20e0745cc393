// Package cookie provides HTTP cookie management with shared attributes.
//
// The Manager applies one set of attributes to every cookie it writes.
// Defaults are hardened for session cookies: HttpOnly, Secure and
// SameSite=Strict on path "/".
//
// # Basic Usage
//
//	m := cookie.New(cookie.WithDomain("example.com"))
//	m.SetUntil(w, "todo_session", token, time.Now().Add(24*time.Hour))
//	value, err := m.Get(r, "todo_session")
//	if errors.Is(err, cookie.ErrNotFound) {
//		// anonymous
//	}
//
// Delete expires the cookie immediately:
//
//	m.Delete(w, "todo_session")
//
// # Configuration
//
// Options:
//   - [WithDomain]: Set the cookie domain
//   - [WithPath]: Set the cookie path (default: "/")
//   - [WithSecure]: Set the Secure flag (default: true)
//   - [WithHTTPOnly]: Set the HttpOnly flag (default: true)
//   - [WithSameSite]: Set the SameSite attribute (default: Strict)
//
// [Config] carries the same attributes as environment variables for
// [NewFromConfig].
package cookie
