// Package token issues stateless session tokens.
//
// Tokens are HMAC-signed JWTs. The service owns three reserved timing
// claims: iat and nbf are set to the creation time, exp to creation time
// plus the configured lifetime. All timestamps are whole seconds.
//
// # Usage
//
//	svc, err := token.New(token.Config{
//		Secret:           os.Getenv("TOKEN_SECRET"),
//		Lifetime:         24 * time.Hour,
//		RefreshThreshold: 4 * time.Hour,
//	})
//	if err != nil {
//		// missing secret: refuse to start
//	}
//
//	tok, err := svc.Create(token.Claims{"sub": userID})
//	claims, ok := svc.Verify(tok)
//	if ok && svc.ShouldRefresh(claims) {
//		tok, err = svc.Refresh(claims)
//	}
//
// Verification never returns an error: malformed, expired, not yet valid
// and tampered tokens all yield (nil, false).
//
// Every time-dependent method has an *At variant taking an explicit time,
// and [WithClock] replaces the default wall clock.
package token
