package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBcrypt(t *testing.T) {
	b, err := NewBcrypt("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogRounds, b.LogRounds())

	for _, rounds := range []int{-1, 1, 3, 32, 100} {
		_, err := NewBcrypt("", rounds)
		assert.ErrorIs(t, err, ErrInvalidParameter, "rounds=%d", rounds)
	}
	for _, rounds := range []int{4, 31} {
		_, err := NewBcrypt("", rounds)
		assert.NoError(t, err, "rounds=%d", rounds)
	}
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	b, err := NewBcrypt("pepper", MinLogRounds)
	require.NoError(t, err)

	first, err := b.Hash("mepasswd")
	require.NoError(t, err)
	second, err := b.Hash("mepasswd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash should embed a fresh salt")
	assert.True(t, strings.HasPrefix(first, "$2a$04$"), "unexpected format %q", first)

	for _, h := range []string{first, second} {
		ok, err := b.Verify("mepasswd", h)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = b.Verify("wrong", h)
		assert.NoError(t, err)
		assert.False(t, ok)
	}

	t.Run("salt is part of the input", func(t *testing.T) {
		unsalted, err := NewBcrypt("", MinLogRounds)
		require.NoError(t, err)
		ok, err := unsalted.Verify("mepasswd", first)
		assert.NoError(t, err)
		assert.False(t, ok)
		ok, err = unsalted.Verify("mepasswdpepper", first)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("cost is read from the stored hash", func(t *testing.T) {
		other, err := NewBcrypt("pepper", 5)
		require.NoError(t, err)
		ok, err := other.Verify("mepasswd", first)
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestBcrypt_LongPassword(t *testing.T) {
	b, err := NewBcrypt("", MinLogRounds)
	require.NoError(t, err)

	long := strings.Repeat("a", 100)
	h, err := b.Hash(long)
	require.NoError(t, err)

	ok, err := b.Verify(long, h)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Verify(strings.Repeat("a", 72)+"different tail", h)
	assert.NoError(t, err)
	assert.True(t, ok, "only the first 72 bytes are significant")
}

func TestBcrypt_MalformedHash(t *testing.T) {
	b, err := NewBcrypt("", MinLogRounds)
	require.NoError(t, err)

	for _, stored := range []string{"", "plain", "A85B7600AFB37AD9D8BD6D0F3903C33DCA54ADAE99CCAB1E8870F1D985D5B0D3", "$2a$99$abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123"} {
		ok, err := b.Verify("mepasswd", stored)
		assert.ErrorIs(t, err, ErrInvalidInput, "stored=%q", stored)
		assert.False(t, ok)
	}
}
