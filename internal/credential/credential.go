// Package credential turns plaintext secrets into stored credentials and
// verifies secrets against them. bcrypt embeds a per-credential salt and is
// deliberately slow; comparison is constant-time.
package credential

import "golang.org/x/crypto/bcrypt"

// MinSecretLength is the minimum accepted plaintext length.
const MinSecretLength = 6

// Derive hashes a plaintext secret with the given bcrypt cost.
func Derive(secret string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext secret matches the stored credential.
func Verify(secret, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(secret)) == nil
}
