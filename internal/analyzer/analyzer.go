package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ==========================================
// PROPERTY COMPUTER
// ==========================================

// Properties holds everything we derive from a submitted value.
// All of it is a pure function of the raw text: compute it twice,
// get the same answer twice.
type Properties struct {
	ID                    string         `json:"id"` // hex SHA-256 of the raw UTF-8 bytes
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// Compute derives all properties for a value. No side effects, no state.
func Compute(value string) Properties {
	return Properties{
		ID:                    HashID(value),
		Length:                Length(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      UniqueCharacters(value),
		WordCount:             WordCount(value),
		CharacterFrequencyMap: CharacterFrequency(value),
	}
}

// HashID returns the content address of a value: the hex-encoded SHA-256
// digest of its raw UTF-8 bytes. Always the raw value, never the
// normalized palindrome form, so "Panama" and "panama" get distinct ids.
func HashID(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Length counts Unicode code points, not bytes.
func Length(value string) int {
	return len([]rune(value))
}

// stripMarks removes combining marks left behind by NFD decomposition,
// so "café" normalizes through "café" down to "cafe".
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeForPalindrome produces the lower-cased, diacritic-stripped,
// ASCII-alphanumeric-only rendering used solely for the palindrome test.
func normalizeForPalindrome(value string) string {
	decomposed, _, err := transform.String(stripMarks, value)
	if err != nil {
		// transform only fails on malformed input; fall back to the raw text
		decomposed = value
	}

	var b strings.Builder
	for _, r := range strings.ToLower(decomposed) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPalindrome reports whether the normalized form is non-empty and reads
// the same forwards and backwards. Pure punctuation/whitespace normalizes
// to "" and is therefore not a palindrome.
func IsPalindrome(value string) bool {
	normalized := normalizeForPalindrome(value)
	if normalized == "" {
		return false
	}

	r := []rune(normalized)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		if r[i] != r[j] {
			return false
		}
	}
	return true
}

// UniqueCharacters counts distinct code points in the raw value.
// Case-sensitive: "Aa" has 2 unique characters.
func UniqueCharacters(value string) int {
	seen := make(map[rune]struct{})
	for _, r := range value {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// WordCount counts maximal whitespace-delimited tokens in the raw value.
// A blank or whitespace-only value has 0 words.
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// CharacterFrequency tallies every code point in the raw value,
// case-sensitive, whitespace and punctuation included.
func CharacterFrequency(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
