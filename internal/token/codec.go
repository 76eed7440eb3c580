package token

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const claimsSchemaURL = "mem://asdos/claims.schema.json"

//go:embed claims.schema.json
var claimsSchema []byte

// Codec decodes session tokens, checks their claims shape and, when a secret is
// configured, verifies the HMAC signature.
type Codec struct {
	secret []byte
	schema *jsonschema.Schema
	parser *jwt.Parser
}

// NewCodec builds a codec. An empty secret keeps decoding advisory only.
func NewCodec(secret string) (*Codec, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(claimsSchemaURL, bytes.NewReader(claimsSchema)); err != nil {
		return nil, fmt.Errorf("load claims schema: %w", err)
	}

	schema, err := compiler.Compile(claimsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile claims schema: %w", err)
	}

	return &Codec{
		secret: []byte(secret),
		schema: schema,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Verifies reports whether the codec checks signatures.
func (c *Codec) Verifies() bool {
	return len(c.secret) > 0
}

// Parse decodes raw, verifies it and validates its claims. Expiry is left to
// the caller.
func (c *Codec) Parse(raw string) (Token, error) {
	tok, err := c.DecodeVerified(raw)
	if err != nil {
		return Token{}, err
	}
	if err := c.CheckClaims(tok); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// DecodeVerified decodes raw and, when a secret is configured, checks its
// signature. Claims are not validated.
func (c *Codec) DecodeVerified(raw string) (Token, error) {
	tok, err := Decode(raw)
	if err != nil {
		return Token{}, err
	}

	if c.Verifies() {
		_, err := c.parser.Parse(tok.Raw, func(*jwt.Token) (interface{}, error) {
			return c.secret, nil
		})
		if err != nil {
			return Token{}, fmt.Errorf("%w: %v", ErrSignature, err)
		}
	}

	return tok, nil
}

// CheckClaims validates the payload of tok against the claims schema.
func (c *Codec) CheckClaims(tok Token) error {
	if err := c.schema.Validate(tok.Payload); err != nil {
		return fmt.Errorf("%w: %v", ErrClaims, err)
	}
	return nil
}
