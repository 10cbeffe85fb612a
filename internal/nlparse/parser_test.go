package nlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleWordPalindromic(t *testing.T) {
	res := Parse("single word palindromic strings")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.WordCount)
	assert.Equal(t, 1, *res.Filters.WordCount)
	require.NotNil(t, res.Filters.IsPalindrome)
	assert.True(t, *res.Filters.IsPalindrome)
	assert.Nil(t, res.Filters.MinLength)
	assert.Nil(t, res.Filters.ContainsCharacter)
}

func TestParseLongerThan(t *testing.T) {
	res := Parse("strings longer than 10")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.MinLength)
	assert.Equal(t, 11, *res.Filters.MinLength) // "longer than" is exclusive
}

func TestParsePalindromeVariants(t *testing.T) {
	for _, q := range []string{
		"palindrome",
		"palindromes please",
		"all Palindromic values",
		"PALINDROME",
	} {
		res := Parse(q)
		require.Equal(t, Success, res.Outcome, "query=%q", q)
		require.NotNil(t, res.Filters.IsPalindrome, "query=%q", q)
		assert.True(t, *res.Filters.IsPalindrome)
	}
}

func TestParseContainsLetter(t *testing.T) {
	res := Parse("strings containing the letter z")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.ContainsCharacter)
	assert.Equal(t, "z", *res.Filters.ContainsCharacter)

	res = Parse("must contain letter q")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.ContainsCharacter)
	assert.Equal(t, "q", *res.Filters.ContainsCharacter)

	res = Parse("contains the character x")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.ContainsCharacter)
	assert.Equal(t, "x", *res.Filters.ContainsCharacter)
}

func TestParseFirstVowel(t *testing.T) {
	res := Parse("strings with the first vowel")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.ContainsCharacter)
	assert.Equal(t, "a", *res.Filters.ContainsCharacter)
}

func TestParseFirstVowelAgreesWithLetterA(t *testing.T) {
	// Both phrases assign 'a'; equal assignments never conflict.
	res := Parse("first vowel and containing the letter a")
	require.Equal(t, Success, res.Outcome, res.Message)
	require.NotNil(t, res.Filters.ContainsCharacter)
	assert.Equal(t, "a", *res.Filters.ContainsCharacter)
}

func TestParseUnparsed(t *testing.T) {
	for _, q := range []string{
		"asdkjasd",
		"show me everything",
		"longer than ten", // N must be an integer literal
	} {
		res := Parse(q)
		assert.Equal(t, Unparsed, res.Outcome, "query=%q", q)
		assert.NotEmpty(t, res.Message)
	}
}

func TestParseBlankIsUnparsed(t *testing.T) {
	assert.Equal(t, Unparsed, Parse("").Outcome)
	assert.Equal(t, Unparsed, Parse("   \t\n").Outcome)
}

func TestParseConflictingCharacters(t *testing.T) {
	res := Parse("containing the letter a and containing the letter b")
	assert.Equal(t, Conflict, res.Outcome)
	assert.Contains(t, res.Message, "contains_character")
}

func TestParseConflictingLengths(t *testing.T) {
	res := Parse("longer than 5 but also longer than 10")
	assert.Equal(t, Conflict, res.Outcome)
	assert.Contains(t, res.Message, "min_length")
}

func TestParseFirstVowelConflictsWithOtherLetter(t *testing.T) {
	res := Parse("first vowel words containing the letter b")
	assert.Equal(t, Conflict, res.Outcome)
}

func TestParseIsOrderInsensitive(t *testing.T) {
	a := Parse("single word palindromic")
	b := Parse("palindromic single word")
	assert.Equal(t, a.Outcome, b.Outcome)
	assert.Equal(t, a.Filters, b.Filters)
}

func TestParseCombinesManyPhrases(t *testing.T) {
	res := Parse("single word palindromes longer than 3 containing the letter a")
	require.Equal(t, Success, res.Outcome, res.Message)
	assert.Equal(t, 1, *res.Filters.WordCount)
	assert.True(t, *res.Filters.IsPalindrome)
	assert.Equal(t, 4, *res.Filters.MinLength)
	assert.Equal(t, "a", *res.Filters.ContainsCharacter)
}
