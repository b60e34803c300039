package ident

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		prefix Prefix
		name   string
		want   string
	}{
		{nil, "", "opack_"},
		{nil, "hello.txt", "opack_hello_txt"},
		{Prefix{"static"}, "", "opack_static"},
		{Prefix{"static"}, "jquery.min.js", "opack_static_jquery_min_js"},
		{Prefix{"static", "img"}, "", "opack_static_img"},
		{Prefix{"static", "img"}, "logo.png", "opack_static_img_logo_png"},
		{Prefix{""}, "x", "opack_x"},
		{nil, "ñ", "opack___"},
		{nil, "a-b c", "opack_a_b_c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Derive(tt.prefix, tt.name), "%q %q", tt.prefix, tt.name)
	}
}

func TestDeriveAlphabetAndMarker(t *testing.T) {
	valid := regexp.MustCompile(`^opack_[A-Za-z0-9_]*$`)
	rng := rand.New(rand.NewSource(1))
	randString := func() string {
		b := make([]byte, rng.Intn(12))
		rng.Read(b)
		return string(b)
	}
	for i := 0; i < 1000; i++ {
		var p Prefix
		for j := rng.Intn(4); j > 0; j-- {
			p = append(p, randString())
		}
		name := randString()
		id := Derive(p, name)
		require.Regexp(t, valid, id)
		require.Equal(t, id, Derive(p, name))
	}
}

func TestFoldIdempotent(t *testing.T) {
	s := "opack_a/b.c~d"
	assert.Equal(t, Fold(s), Fold(Fold(s)))
}

func TestPrefixAppendDoesNotAlias(t *testing.T) {
	base := make(Prefix, 1, 8)
	base[0] = "root"
	a := base.Append("a")
	b := base.Append("b")
	assert.Equal(t, Prefix{"root", "a"}, a)
	assert.Equal(t, Prefix{"root", "b"}, b)
	assert.Equal(t, Prefix{"root"}, base)
}

func TestRegistryDetectsFoldingCollision(t *testing.T) {
	var r Registry
	require.NoError(t, r.Claim(Derive(nil, "a.b"), "a.b"))
	require.NoError(t, r.Claim(Derive(nil, "a.b"), "a.b"))

	err := r.Claim(Derive(nil, "a_b"), "a_b")
	require.Error(t, err)
	ce, ok := err.(*CollisionError)
	require.True(t, ok)
	assert.Equal(t, "opack_a_b", ce.Ident)
	assert.Equal(t, "a.b", ce.First)
	assert.Equal(t, "a_b", ce.Second)
	assert.Equal(t, 1, r.Len())
}
