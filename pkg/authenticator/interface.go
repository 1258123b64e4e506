package authenticator

type TokenEngine[T any] interface {
	// Generate signs a token carrying obj as its payload.
	Generate(sub string, obj T) (string, error)

	// Verify checks the token signature and expiration, then returns the
	// embedded payload.
	Verify(token string) (T, error)
}
