package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagDetection(t *testing.T) {
	tagger := NewLexicalTagger()

	t.Run("Depression Cues", func(t *testing.T) {
		tags := tagger.Tag("I've been feeling really down lately and I lost interest in everything")
		assert.True(t, tags["depression"])
	})

	t.Run("Anxiety Cues", func(t *testing.T) {
		tags := tagger.Tag("I'm constantly worried and on edge at work")
		assert.True(t, tags["anxiety"])
	})

	t.Run("Self Harm Cues", func(t *testing.T) {
		tags := tagger.Tag("sometimes I think everyone would be better off dead without me around")
		assert.True(t, tags["self-harm"])
	})

	t.Run("Sleep Cues", func(t *testing.T) {
		tags := tagger.Tag("I can't sleep and keep having nightmares")
		assert.True(t, tags["sleep"])
	})

	t.Run("Multiple Categories In One Utterance", func(t *testing.T) {
		tags := tagger.Tag("I feel hopeless, I can't sleep, and I've been drinking too much")
		assert.True(t, tags["depression"])
		assert.True(t, tags["sleep"])
		assert.True(t, tags["alcohol"])
	})

	t.Run("Neutral Utterance Yields No Tags", func(t *testing.T) {
		tags := tagger.Tag("I moved to a new city last month for a job")
		assert.Empty(t, tags)
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Empty(t, tagger.Tag("   "))
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		tags := tagger.Tag("LATELY EVERYTHING MAKES ME ANXIOUS")
		assert.True(t, tags["anxiety"])
	})
}

func TestTagIsPure(t *testing.T) {
	tagger := NewLexicalTagger()
	input := "I feel hopeless and I can't sleep"
	first := tagger.Tag(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tagger.Tag(input))
	}
}

func TestRulesVersion(t *testing.T) {
	assert.NotEmpty(t, NewLexicalTagger().RulesVersion())
}
