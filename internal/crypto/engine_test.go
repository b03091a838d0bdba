package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
)

func newTestEngine() CipherEngine {
	return NewEngine(Params{Time: 1, MemoryKiB: 64, Threads: 1})
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := newTestEngine()

	plain := []byte(`[{"id":"1","title":"mail"}]`)
	ct, err := e.Encrypt(plain, "pw123456")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := e.Decrypt(ct, "pw123456")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("plaintext mismatch: got %q, want %q", got, plain)
	}
}

func TestEncryptDecrypt_EmptyPlaintext(t *testing.T) {
	e := newTestEngine()

	ct, err := e.Encrypt(nil, "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	got, err := e.Decrypt(ct, "pw")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty plaintext, got %d bytes", len(got))
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	e := newTestEngine()

	ct1, err := e.Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	ct2, err := e.Encrypt([]byte("same"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if ct1 == ct2 {
		t.Fatalf("expected different ciphertexts for two encryptions")
	}

	b1, _ := base64.StdEncoding.DecodeString(ct1)
	b2, _ := base64.StdEncoding.DecodeString(ct2)
	if bytes.Equal(b1[10:headerSize], b2[10:headerSize]) {
		t.Fatalf("expected different salts")
	}
	if bytes.Equal(b1[headerSize:headerSize+nonceSize], b2[headerSize:headerSize+nonceSize]) {
		t.Fatalf("expected different nonces")
	}
}

func TestEncrypt_HeaderCarriesParams(t *testing.T) {
	e := NewEngine(Params{Time: 2, MemoryKiB: 128, Threads: 1})

	ct, err := e.Encrypt([]byte("x"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob, err := base64.StdEncoding.DecodeString(ct)
	if err != nil {
		t.Fatalf("output is not standard base64: %v", err)
	}

	if blob[0] != formatVersion {
		t.Fatalf("version = %d, want %d", blob[0], formatVersion)
	}
	if got := binary.BigEndian.Uint32(blob[1:5]); got != 2 {
		t.Fatalf("time = %d, want 2", got)
	}
	if got := binary.BigEndian.Uint32(blob[5:9]); got != 128 {
		t.Fatalf("memory = %d, want 128", got)
	}
	if blob[9] != 1 {
		t.Fatalf("threads = %d, want 1", blob[9])
	}

	// A different engine configuration must still open it.
	if _, err = newTestEngine().Decrypt(ct, "pw"); err != nil {
		t.Fatalf("Decrypt with other params error: %v", err)
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	e := newTestEngine()

	ct, err := e.Encrypt([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := e.Decrypt(ct, "wrong")
	if !errors.Is(err, ErrDecryption) {
		t.Fatalf("expected ErrDecryption, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil plaintext on failure, got %q", got)
	}
}

func TestDecrypt_MalformedInput(t *testing.T) {
	e := newTestEngine()

	valid, err := e.Encrypt([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob, _ := base64.StdEncoding.DecodeString(valid)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xFF

	badVersion := append([]byte(nil), blob...)
	badVersion[0] = 0x7F

	hugeMemory := append([]byte(nil), blob...)
	binary.BigEndian.PutUint32(hugeMemory[5:9], maxArgonMemoryKiB+1)

	zeroThreads := append([]byte(nil), blob...)
	zeroThreads[9] = 0

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"too short", base64.StdEncoding.EncodeToString([]byte{0x01, 0x02})},
		{"tampered tag", base64.StdEncoding.EncodeToString(tampered)},
		{"unknown version", base64.StdEncoding.EncodeToString(badVersion)},
		{"memory over cap", base64.StdEncoding.EncodeToString(hugeMemory)},
		{"zero threads", base64.StdEncoding.EncodeToString(zeroThreads)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Decrypt(tt.in, "pw")
			if !errors.Is(err, ErrDecryption) {
				t.Fatalf("expected ErrDecryption, got %v", err)
			}
		})
	}
}

func TestVerifier(t *testing.T) {
	e := newTestEngine()

	v, err := e.MakeVerifier("master")
	if err != nil {
		t.Fatalf("MakeVerifier error: %v", err)
	}

	if !e.Verify("master", v) {
		t.Fatalf("expected verifier to accept its own password")
	}
	if e.Verify("Master", v) {
		t.Fatalf("expected verifier to reject a different password")
	}
	if e.Verify("master", "") {
		t.Fatalf("expected empty verifier to be rejected")
	}
	if e.Verify("master", "garbage") {
		t.Fatalf("expected garbage verifier to be rejected")
	}

	plain, err := e.Decrypt(v, "master")
	if err != nil {
		t.Fatalf("Decrypt verifier error: %v", err)
	}
	if string(plain) != Sentinel {
		t.Fatalf("verifier plaintext = %q, want %q", plain, Sentinel)
	}
}

func TestVerify_RejectsNonSentinelPayload(t *testing.T) {
	e := newTestEngine()

	ct, err := e.Encrypt([]byte("NOT_THE_SENTINEL"), "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if e.Verify("pw", ct) {
		t.Fatalf("expected non-sentinel payload to fail verification")
	}
}

func TestNewEngine_ZeroParamsUseDefaults(t *testing.T) {
	e := NewEngine(Params{}).(*engine)
	if e.params != DefaultParams() {
		t.Fatalf("params = %+v, want %+v", e.params, DefaultParams())
	}
}

func TestClearBytes(t *testing.T) {
	b := []byte("sensitive")
	ClearBytes(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, c)
		}
	}
	ClearBytes(nil)
}
