package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Hard bounds on KDF work factors accepted from an envelope header.
const (
	MinArgon2Time      = 1
	MaxArgon2Time      = 10
	MinArgon2MemoryKiB = 1024
	MaxArgon2MemoryKiB = 256 * 1024
	MinArgon2Threads   = 1
	MaxArgon2Threads   = 16
	MinPBKDF2Iter      = 1000
	MaxPBKDF2Iter      = 10_000_000
)

// KDFParams describes how the per-envelope key is derived from the Level-1 secret.
// Argon2id uses Time, MemoryKiB and Threads; PBKDF2-SHA256 uses Iterations.
type KDFParams struct {
	KDF        KDF
	Time       uint32
	MemoryKiB  uint32
	Threads    uint8
	Iterations uint32
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id baseline.
func DefaultArgon2Params() KDFParams {
	return KDFParams{KDF: Argon2id, Time: 2, MemoryKiB: 19456, Threads: 1}
}

// DefaultPBKDF2Params returns the OWASP-recommended PBKDF2-HMAC-SHA256 baseline.
func DefaultPBKDF2Params() KDFParams {
	return KDFParams{KDF: PBKDF2SHA256, Iterations: 600000}
}

// Validate checks the params against the hard bounds.
func (p KDFParams) Validate() error {
	switch p.KDF {
	case Argon2id:
		if p.Time < MinArgon2Time || p.Time > MaxArgon2Time {
			return fmt.Errorf("%w: argon2 time %d out of range", ErrInvalidKDFParams, p.Time)
		}
		if p.MemoryKiB < MinArgon2MemoryKiB || p.MemoryKiB > MaxArgon2MemoryKiB {
			return fmt.Errorf("%w: argon2 memory %d out of range", ErrInvalidKDFParams, p.MemoryKiB)
		}
		if p.Threads < MinArgon2Threads || p.Threads > MaxArgon2Threads {
			return fmt.Errorf("%w: argon2 threads %d out of range", ErrInvalidKDFParams, p.Threads)
		}
		if p.Iterations != 0 {
			return fmt.Errorf("%w: iterations not used by argon2id", ErrInvalidKDFParams)
		}
		return nil
	case PBKDF2SHA256:
		if p.Iterations < MinPBKDF2Iter || p.Iterations > MaxPBKDF2Iter {
			return fmt.Errorf("%w: pbkdf2 iterations %d out of range", ErrInvalidKDFParams, p.Iterations)
		}
		if p.Time != 0 || p.MemoryKiB != 0 || p.Threads != 0 {
			return fmt.Errorf("%w: argon2 params not used by pbkdf2", ErrInvalidKDFParams)
		}
		return nil
	default:
		return ErrUnsupportedKDF
	}
}

// String renders the params in their canonical header form, e.g. "t=2,m=19456,p=1" or "i=600000".
func (p KDFParams) String() string {
	switch p.KDF {
	case Argon2id:
		return fmt.Sprintf("t=%d,m=%d,p=%d", p.Time, p.MemoryKiB, p.Threads)
	case PBKDF2SHA256:
		return fmt.Sprintf("i=%d", p.Iterations)
	default:
		return ""
	}
}

// ParseKDFParams parses the canonical header form produced by String. Any non-canonical
// spelling (leading zeros, reordered or repeated keys, whitespace) is rejected.
func ParseKDFParams(kdf KDF, s string) (KDFParams, error) {
	p := KDFParams{KDF: kdf}

	switch kdf {
	case Argon2id:
		fields := strings.Split(s, ",")
		if len(fields) != 3 {
			return KDFParams{}, ErrInvalidKDFParams
		}
		t, err := parseParam(fields[0], "t", 32)
		if err != nil {
			return KDFParams{}, err
		}
		m, err := parseParam(fields[1], "m", 32)
		if err != nil {
			return KDFParams{}, err
		}
		threads, err := parseParam(fields[2], "p", 8)
		if err != nil {
			return KDFParams{}, err
		}
		p.Time, p.MemoryKiB, p.Threads = uint32(t), uint32(m), uint8(threads)
	case PBKDF2SHA256:
		i, err := parseParam(s, "i", 32)
		if err != nil {
			return KDFParams{}, err
		}
		p.Iterations = uint32(i)
	default:
		return KDFParams{}, ErrUnsupportedKDF
	}

	if p.String() != s {
		return KDFParams{}, ErrInvalidKDFParams
	}
	if err := p.Validate(); err != nil {
		return KDFParams{}, err
	}
	return p, nil
}

func parseParam(field, name string, bitSize int) (uint64, error) {
	value, ok := strings.CutPrefix(field, name+"=")
	if !ok {
		return 0, ErrInvalidKDFParams
	}
	n, err := strconv.ParseUint(value, 10, bitSize)
	if err != nil {
		return 0, ErrInvalidKDFParams
	}
	return n, nil
}
