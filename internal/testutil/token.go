package testutil

// FixedTokenGenerator returns the same batch token every call.
//
// Ingest normally tags each run with a fresh UUIDv7; tests substitute
// this generator so records land in a known batch and output is
// byte-identical across runs.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for
// concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed batch token generator.
// If token is empty, Generate returns "test-batch-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-batch-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed batch token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
