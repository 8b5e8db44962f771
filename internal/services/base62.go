package services

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base62Base     = uint64(len(base62Alphabet))
)

// EncodeBase62 кодирует число в base62, старший разряд первым. Ноль кодируется как "0".
func EncodeBase62(n uint64) string {
	if n == 0 {
		return base62Alphabet[:1]
	}
	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base62Alphabet[n%base62Base]
		n /= base62Base
	}
	return string(buf[i:])
}

// DecodeBase62 обратное к EncodeBase62 преобразование.
func DecodeBase62(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty base62 string")
	}
	var n uint64
	for _, r := range s {
		digit := strings.IndexRune(base62Alphabet, r)
		if digit < 0 {
			return 0, errors.Errorf("invalid base62 symbol %q", r)
		}
		if n > (math.MaxUint64-uint64(digit))/base62Base {
			return 0, errors.Errorf("base62 value %q overflows uint64", s)
		}
		n = n*base62Base + uint64(digit)
	}
	return n, nil
}
