// Package session manages stateless sessions on top of signed tokens.
//
// The server keeps no session records. [Manager.Start] issues a token and
// hands it to a [sessiontransport.Transport], [Manager.Resume] verifies
// it on every request and silently rotates it near expiry, and
// [Manager.End] deletes it.
//
//	mgr := session.New(tokens, session.WithCookieName("todo_session"))
//	claims, state := mgr.Resume(transport)
//	switch state {
//	case session.Rotated:
//		// a fresh token was written back
//	case session.Anonymous:
//		// no identity
//	}
package session
