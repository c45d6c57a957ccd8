package service

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	perrs "inkwell/internal/platform/errors"

	"golang.org/x/crypto/argon2"
)

// phcParams is a decoded argon2id PHC string
type phcParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// parsePHC decodes a $argon2id$v=19$m=..,t=..,p=..$salt$hash string
// a stored hash that fails to parse is data corruption, not bad credentials
func parsePHC(phc string) (phcParams, error) {
	var p phcParams

	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, perrs.Internalf("password hash has %d segments, want 6", len(parts))
	}
	if parts[1] != "argon2id" {
		return p, perrs.Internalf("password hash algorithm %q is not argon2id", parts[1])
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, perrs.Internalf("password hash version %q is unsupported", parts[2])
	}
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &threads); err != nil {
		return p, perrs.Internalf("password hash params %q are malformed", parts[3])
	}
	if threads == 0 || threads > 255 {
		return p, perrs.Internalf("password hash parallelism %d is out of range", threads)
	}
	p.threads = uint8(threads)

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, perrs.Internalf("password hash salt is not base64")
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, perrs.Internalf("password hash digest is not base64")
	}
	if len(p.salt) == 0 || len(p.hash) == 0 {
		return p, perrs.Internalf("password hash salt or digest is empty")
	}
	return p, nil
}

// verifyPHC recomputes the digest for candidate under the stored params
// and compares in constant time
func verifyPHC(phc, candidate string) (bool, error) {
	p, err := parsePHC(phc)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(candidate), p.salt, p.time, p.memory, p.threads, uint32(len(p.hash)))
	return subtle.ConstantTimeCompare(got, p.hash) == 1, nil
}

// HashPassword produces a PHC string for password with the service's
// standard cost. Used by seeding and tests, never on the request path
func HashPassword(password string, salt []byte) string {
	const (
		mem     = 15000
		passes  = 2
		threads = 1
		keyLen  = 32
	)
	digest := argon2.IDKey([]byte(password), salt, passes, mem, threads, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, mem, passes, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
}
