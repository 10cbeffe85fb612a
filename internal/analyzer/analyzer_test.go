package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIsDeterministic(t *testing.T) {
	first := Compute("listen")
	second := Compute("listen")
	assert.Equal(t, first, second)
}

func TestHashID(t *testing.T) {
	// Known SHA-256 vectors over UTF-8 bytes.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashID(""))
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		HashID("hello"))

	// Distinct values get distinct ids; equal values share one.
	assert.Equal(t, HashID("listen"), HashID("listen"))
	assert.NotEqual(t, HashID("listen"), HashID("silent"))

	require.Len(t, HashID("anything"), 64)
}

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"A man, a plan, a canal: Panama", true},
		{"racecar", true},
		{"RaceCar", true},
		{"Ésé", true}, // diacritics stripped before comparison
		{"hello", false},
		{"...", false},  // normalizes to empty
		{"    ", false}, // whitespace only
		{"", false},
		{"12321", true},
		{"12345", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPalindrome(tt.value), "value=%q", tt.value)
	}
}

func TestLengthCountsCodePoints(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 5, Length("hello"))
	assert.Equal(t, 4, Length("café")) // 4 code points, 5 bytes
	assert.Equal(t, 2, Length("日本"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("one two  three"))
}

func TestWordCountWhitespaceVariants(t *testing.T) {
	assert.Equal(t, 3, WordCount("  leading and\ttrailing  "))
	assert.Equal(t, 1, WordCount("single"))
	assert.Equal(t, 2, WordCount("a\nb"))
}

func TestUniqueCharactersIsCaseSensitive(t *testing.T) {
	assert.Equal(t, 3, UniqueCharacters("aabbcc"))
	assert.Equal(t, 2, UniqueCharacters("Aa"))
	assert.Equal(t, 0, UniqueCharacters(""))
	assert.Equal(t, 2, UniqueCharacters("日本"))
}

func TestCharacterFrequency(t *testing.T) {
	freq := CharacterFrequency("aA b!")
	assert.Equal(t, map[string]int{
		"a": 1,
		"A": 1,
		" ": 1,
		"b": 1,
		"!": 1,
	}, freq)

	assert.Empty(t, CharacterFrequency(""))
	assert.Equal(t, map[string]int{"a": 3}, CharacterFrequency("aaa"))
}

func TestComputeWiresEverything(t *testing.T) {
	p := Compute("A man, a plan, a canal: Panama")
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 30, p.Length)
	assert.Equal(t, 7, p.WordCount)
	assert.Equal(t, HashID("A man, a plan, a canal: Panama"), p.ID)
	assert.Equal(t, 2, p.CharacterFrequencyMap[","])
	assert.Equal(t, 1, p.CharacterFrequencyMap["A"]) // capital A counted apart from 'a'
}
