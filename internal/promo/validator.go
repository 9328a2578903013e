package promo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Promo codes are 8-10 characters; anything outside that range is
// rejected before any lookup.
const (
	minCodeLength = 8
	maxCodeLength = 10
)

const falsePositiveRate = 0.01

// Validator validates promo codes against a set loaded from a codes file.
// A bloom filter front-ends the exact set so clearly bogus codes are
// rejected without a map lookup; the map settles filter false positives.
type Validator struct {
	filter *bloom.BloomFilter
	codes  map[string]struct{}
}

// NewValidator creates a validator with no codes loaded. Until a load
// succeeds, every code is invalid.
func NewValidator() *Validator {
	return &Validator{}
}

// LoadFromFile reads promo codes from a file, one code per line.
// Blank lines and surrounding whitespace are ignored.
func (v *Validator) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open promo codes: %w", err)
	}
	defer f.Close()

	return v.load(f)
}

func (v *Validator) load(r io.Reader) error {
	codes := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			codes[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read promo codes: %w", err)
	}

	filter := bloom.NewWithEstimates(uint(max(len(codes), 1)), falsePositiveRate)
	for code := range codes {
		filter.AddString(code)
	}

	v.codes = codes
	v.filter = filter
	return nil
}

// IsValid checks if a promo code is redeemable
func (v *Validator) IsValid(code string) bool {
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		return false
	}
	if v.filter == nil || !v.filter.TestString(code) {
		return false
	}
	_, ok := v.codes[code]
	return ok
}

// Count returns how many codes are loaded
func (v *Validator) Count() int {
	return len(v.codes)
}
