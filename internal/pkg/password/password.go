package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum accepted password length
	MinLength = 8
)

// dummyHash is compared against when no account matches, so verification
// takes the same time whether or not the email exists. It must carry the
// same cost as real hashes or the comparison time itself leaks the miss.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("novacapital-dummy"), DefaultCost)

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyDummy burns a bcrypt comparison against a throwaway hash
func VerifyDummy(password string) {
	bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Validate checks if password meets requirements
func Validate(password string) bool {
	return len(password) >= MinLength
}
