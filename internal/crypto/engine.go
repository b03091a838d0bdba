// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Sentinel is the plaintext sealed into every verifier.
const Sentinel = "VERIFIED_OK"

const (
	formatVersion byte = 0x01

	saltSize  = 16
	nonceSize = 12
	keySize   = 32 // AES-256

	// version(1) | time(4) | memory(4) | threads(1) | salt(16)
	headerSize = 1 + 4 + 4 + 1 + saltSize

	// Upper bounds accepted from a ciphertext header. A forged header must
	// not be able to make Decrypt allocate unbounded memory.
	maxArgonTime      = 32
	maxArgonMemoryKiB = 1 << 20 // 1 GiB
)

// ErrDecryption is the single failure signal of [CipherEngine.Decrypt].
var ErrDecryption = errors.New("decryption failed")

// Params are the Argon2id cost parameters applied by Encrypt.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultParams returns the OWASP (2024) Argon2id recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultParams() Params {
	return Params{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

type engine struct {
	params Params
	rand   io.Reader
}

// NewEngine constructs a [CipherEngine]. Zero fields of params fall back to
// [DefaultParams].
func NewEngine(params Params) CipherEngine {
	def := DefaultParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = def.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}

	return &engine{params: params, rand: rand.Reader}
}

// Encrypt implements [CipherEngine]. The output is the standard Base64
// encoding of header ‖ nonce ‖ AES-256-GCM(plaintext). The header is bound
// to the ciphertext as additional authenticated data.
func (e *engine) Encrypt(plaintext []byte, password string) (string, error) {
	header := make([]byte, headerSize)
	header[0] = formatVersion
	binary.BigEndian.PutUint32(header[1:5], e.params.Time)
	binary.BigEndian.PutUint32(header[5:9], e.params.MemoryKiB)
	header[9] = e.params.Threads

	salt := header[10:]
	if _, err := io.ReadFull(e.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(password, salt, e.params)
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err = io.ReadFull(e.rand, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, headerSize+nonceSize+len(plaintext)+gcm.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, header)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CipherEngine].
func (e *engine) Decrypt(ciphertext string, password string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrDecryption, err)
	}
	if len(blob) < headerSize+nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	header := blob[:headerSize]
	if header[0] != formatVersion {
		return nil, fmt.Errorf("%w: unknown format version %d", ErrDecryption, header[0])
	}

	params := Params{
		Time:      binary.BigEndian.Uint32(header[1:5]),
		MemoryKiB: binary.BigEndian.Uint32(header[5:9]),
		Threads:   header[9],
	}
	if params.Time == 0 || params.Time > maxArgonTime ||
		params.MemoryKiB == 0 || params.MemoryKiB > maxArgonMemoryKiB ||
		params.Threads == 0 {
		return nil, fmt.Errorf("%w: invalid kdf parameters", ErrDecryption)
	}

	key := deriveKey(password, header[10:], params)
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := blob[headerSize : headerSize+nonceSize]
	sealed := blob[headerSize+nonceSize:]

	// An auth-tag mismatch almost always means a wrong password.
	plaintext, err := gcm.Open(nil, nonce, sealed, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	return plaintext, nil
}

// MakeVerifier implements [CipherEngine].
func (e *engine) MakeVerifier(password string) (string, error) {
	return e.Encrypt([]byte(Sentinel), password)
}

// Verify implements [CipherEngine].
func (e *engine) Verify(password, verifier string) bool {
	if verifier == "" {
		return false
	}

	plaintext, err := e.Decrypt(verifier, password)
	if err != nil {
		return false
	}
	defer ClearBytes(plaintext)

	return subtle.ConstantTimeCompare(plaintext, []byte(Sentinel)) == 1
}

func deriveKey(password string, salt []byte, p Params) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// ClearBytes overwrites b with zeros.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
