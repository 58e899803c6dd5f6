package security

import (
	"bytes"
	"strings"
	"testing"
)

func testCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(bytes.Repeat([]byte{0x42}, KeySize))
	if err != nil {
		t.Fatalf("NewFieldCipher: %v", err)
	}
	return c
}

func TestNewFieldCipher_RejectsBadKeySize(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := NewFieldCipher(make([]byte, n)); err == nil {
			t.Errorf("key of %d bytes accepted", n)
		}
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := testCipher(t)

	cases := []string{
		"jane@x.com",
		"+27000000000",
		"1 Main Rd",
		"a",
		strings.Repeat("long address line ", 50),
		"exactly16bytes!!",          // block-aligned plaintext
		"ünïcødé — 株式会社",            // multibyte
		"with\nnewlines\tand tabs", // control characters
	}
	for _, plain := range cases {
		enc, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plain, err)
		}
		if enc == plain {
			t.Errorf("Encrypt(%q) returned the plaintext", plain)
		}
		got, err := c.Decrypt(enc)
		if err != nil {
			t.Fatalf("Decrypt(Encrypt(%q)): %v", plain, err)
		}
		if got != plain {
			t.Errorf("round trip mismatch: got %q want %q", got, plain)
		}
	}
}

func TestEncryptDecrypt_EmptyPassesThrough(t *testing.T) {
	c := testCipher(t)

	enc, err := c.Encrypt("")
	if err != nil || enc != "" {
		t.Fatalf("Encrypt(\"\") = (%q, %v), want (\"\", nil)", enc, err)
	}
	dec, err := c.Decrypt("")
	if err != nil || dec != "" {
		t.Fatalf("Decrypt(\"\") = (%q, %v), want (\"\", nil)", dec, err)
	}
}

func TestEncrypt_FreshIVPerCall(t *testing.T) {
	c := testCipher(t)

	a, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical ciphertexts")
	}
}

func TestDecrypt_RejectsMalformedInput(t *testing.T) {
	c := testCipher(t)

	cases := map[string]string{
		"not base64":      "hello world!",
		"plaintext email": "jane@x.com",
		"too short":       "QUJDREVGRw==",                                     // 7 bytes
		"iv only":         "AAAAAAAAAAAAAAAAAAAAAA==",                         // 16 bytes
		"not block sized": "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA==", // 34 bytes
	}
	for name, in := range cases {
		if _, err := c.Decrypt(in); err == nil {
			t.Errorf("%s: Decrypt(%q) succeeded, want error", name, in)
		}
	}
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	c := testCipher(t)
	other, err := NewFieldCipher(bytes.Repeat([]byte{0x17}, KeySize))
	if err != nil {
		t.Fatal(err)
	}

	enc, err := c.Encrypt("secret value")
	if err != nil {
		t.Fatal(err)
	}
	if got, err := other.Decrypt(enc); err == nil && got == "secret value" {
		t.Error("decryption under a different key recovered the plaintext")
	}
}

func TestDecryptOrRaw(t *testing.T) {
	c := testCipher(t)

	enc, err := c.Encrypt("Jane")
	if err != nil {
		t.Fatal(err)
	}

	if fv := c.DecryptOrRaw(enc); !fv.Decrypted || fv.Value != "Jane" {
		t.Errorf("enciphered value: got %+v", fv)
	}
	// Legacy plaintext survives the read untouched, flagged as raw.
	if fv := c.DecryptOrRaw("plain legacy value"); fv.Decrypted || fv.Value != "plain legacy value" {
		t.Errorf("legacy value: got %+v", fv)
	}
}
