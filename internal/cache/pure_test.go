package cache

import "testing"

func TestHashIP(t *testing.T) {
	if hashIP("192.168.1.100") != hashIP("192.168.1.100") {
		t.Error("same IP should hash identically")
	}

	if hashIP("192.168.1.1") == hashIP("192.168.1.2") {
		t.Error("different IPs should hash differently")
	}

	// Truncated SHA-256: first 8 bytes as hex.
	for _, ip := range []string{"127.0.0.1", "::1", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", ""} {
		if got := len(hashIP(ip)); got != 16 {
			t.Errorf("hashIP(%q) length = %d, want 16", ip, got)
		}
	}
}
