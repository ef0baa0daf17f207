package util

import (
	"strings"
	"testing"
)

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"

	testCases := []string{
		"Hello World",
		"가계부 테스트",
		"",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plaintext := range testCases {
		encrypted, err := EncryptAES(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		decrypted, err := DecryptAES(key, encrypted)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}

		if string(decrypted) != plaintext {
			t.Errorf("round trip mismatch\nwant: %s\ngot:  %s", plaintext, string(decrypted))
		}
	}
}

func TestEncryptAES_DifferentKeys(t *testing.T) {
	plaintext := []byte("Secret Data")

	encrypted1, _ := EncryptAES("key1", plaintext)
	encrypted2, _ := EncryptAES("key2", plaintext)

	if string(encrypted1) == string(encrypted2) {
		t.Error("different keys should give different ciphertexts")
	}
}

func TestDecryptAES_WrongKey(t *testing.T) {
	encrypted, _ := EncryptAES("correct-key", []byte("Data"))

	if _, err := DecryptAES("wrong-key", encrypted); err == nil {
		t.Error("wrong key should fail to decrypt")
	}
}

func TestDecryptAES_InvalidData(t *testing.T) {
	key := "test-key"

	if _, err := DecryptAES(key, []byte{1, 2, 3}); err == nil {
		t.Error("short data should fail")
	}
	if _, err := DecryptAES(key, []byte{}); err == nil {
		t.Error("empty data should fail")
	}
}

func TestEncryptField(t *testing.T) {
	enc, err := EncryptField("k", "PATCH /api/account-books/1")
	if err != nil {
		t.Fatalf("encrypt field: %v", err)
	}
	if enc == "PATCH /api/account-books/1" {
		t.Fatal("field was not encrypted")
	}
	if got := DecryptField("k", enc); got != "PATCH /api/account-books/1" {
		t.Errorf("DecryptField = %q", got)
	}

	// pass-through cases
	if got, _ := EncryptField("", "plain"); got != "plain" {
		t.Errorf("empty key should pass through, got %q", got)
	}
	if got := DecryptField("k", "not base64!"); got != "not base64!" {
		t.Errorf("undecodable input should be returned as is, got %q", got)
	}
	if got := DecryptField("other", enc); got != enc {
		t.Errorf("wrong key should return cipher text, got %q", got)
	}
}

func BenchmarkEncryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncryptAES(key, data)
	}
}

func BenchmarkDecryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	encrypted, _ := EncryptAES(key, data)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecryptAES(key, encrypted)
	}
}
