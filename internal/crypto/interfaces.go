// Package crypto implements the password-based cipher used for every
// persisted vault artifact.
//
// Callers hand a raw password to each call; key stretching happens inside.
// Every ciphertext is self-contained: it embeds the KDF parameters, salt and
// nonce, so the password alone is enough to decrypt it.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_engine_mock.go -package=mock

// CipherEngine encrypts and decrypts opaque payloads under a password.
type CipherEngine interface {
	// Encrypt seals plaintext under password. Repeated calls with the same
	// input return different ciphertexts.
	Encrypt(plaintext []byte, password string) (string, error)

	// Decrypt opens a ciphertext produced by Encrypt. Any malformed input or
	// wrong password yields an error wrapping [ErrDecryption]; garbage is
	// never returned.
	Decrypt(ciphertext string, password string) ([]byte, error)

	// MakeVerifier encrypts the fixed [Sentinel] under password.
	MakeVerifier(password string) (string, error)

	// Verify reports whether verifier decrypts to [Sentinel] under password.
	// Decryption failures map to false.
	Verify(password, verifier string) bool
}
