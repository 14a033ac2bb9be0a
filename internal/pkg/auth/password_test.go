package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("password stored in plain text")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password are identical")
	}
}
