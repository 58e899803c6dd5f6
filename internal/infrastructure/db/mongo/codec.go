package mongo

import (
	"github.com/rs/zerolog"

	"github.com/elevate-digital/bizdesk/internal/security"
)

// FieldCodec applies the field cipher at the persistence boundary. Every
// enciphered field read in this package goes through dec, which falls back
// to the raw stored value when decryption fails: plaintext legacy data and
// freshly enciphered fields coexist in the store.
type FieldCodec struct {
	cipher *security.FieldCipher
	log    zerolog.Logger
}

func NewFieldCodec(cipher *security.FieldCipher, log zerolog.Logger) FieldCodec {
	return FieldCodec{cipher: cipher, log: log}
}

func (c FieldCodec) enc(plain string) (string, error) {
	return c.cipher.Encrypt(plain)
}

// encGroup enciphers a batch of fields, capturing the first failure so call
// sites stay flat.
type encGroup struct {
	codec FieldCodec
	err   error
}

func (g *encGroup) enc(plain string) string {
	if g.err != nil {
		return ""
	}
	out, err := g.codec.enc(plain)
	if err != nil {
		g.err = err
	}
	return out
}

// dec deciphers a stored value, keeping the raw value on failure. The value
// itself is never logged.
func (c FieldCodec) dec(collection, field, stored string) string {
	fv := c.cipher.DecryptOrRaw(stored)
	if !fv.Decrypted && stored != "" {
		c.log.Warn().
			Str("collection", collection).
			Str("field", field).
			Msg("stored field failed decryption, returning raw value")
	}
	return fv.Value
}
