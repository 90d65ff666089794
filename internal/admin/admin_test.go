package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenFromFragment(t *testing.T) {
	assert.Equal(t, "1234", TokenFromFragment("#admin=1234"))
	assert.Equal(t, "1234", TokenFromFragment("admin=1234"))
	assert.Equal(t, "1234", TokenFromFragment("https://mapa.example/#admin=1234"))
	assert.Equal(t, "1234", TokenFromFragment("#foo=bar&admin=1234&baz=1"))
	assert.Equal(t, "1234", TokenFromFragment("#ADMIN=1234"), "key is case-insensitive")
	assert.Equal(t, "tajný klíč", TokenFromFragment("#admin=tajn%C3%BD%20kl%C3%AD%C4%8D"))
}

func TestTokenFromFragmentMissing(t *testing.T) {
	assert.Empty(t, TokenFromFragment(""))
	assert.Empty(t, TokenFromFragment("#"))
	assert.Empty(t, TokenFromFragment("#admin="))
	assert.Empty(t, TokenFromFragment("https://mapa.example/"))
	assert.Empty(t, TokenFromFragment("#administrace"))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("#admin="+Token))
	assert.False(t, IsAdmin("#admin="+Token+"x"))
	assert.False(t, IsAdmin(""))
}
