package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	digest, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest == "" || digest == "correct horse battery staple" {
		t.Fatal("digest must be a non-empty hash, not the plaintext")
	}

	if !Verify("correct horse battery staple", digest) {
		t.Error("expected matching password to verify")
	}
	if Verify("wrong password", digest) {
		t.Error("expected non-matching password to fail")
	}
}

// TestHash_Salted verifies that hashing is salted: two hashes of the same
// password differ but both verify.
func TestHash_Salted(t *testing.T) {
	t.Parallel()

	d1, err := Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d1 == d2 {
		t.Error("expected distinct digests for the same password")
	}
	if !Verify("password123", d1) || !Verify("password123", d2) {
		t.Error("expected both digests to verify")
	}
}

// TestVerify_MalformedDigest verifies that garbage digests return false
// instead of failing.
func TestVerify_MalformedDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		digest string
	}{
		{"empty digest", ""},
		{"not a hash", "definitely-not-bcrypt"},
		{"truncated hash", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify("anything", tt.digest) {
				t.Error("expected malformed digest to fail verification")
			}
		})
	}
}
