package common_test

import (
	"os"
	"testing"

	. "github.com/andrew-torda/jsd/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProg(t *testing.T) {
	p := NewProg("/usr/local/bin/jsd")
	assert.Equal(t, "jsd", p.Name)
	assert.Equal(t, "jsd V"+Version, p.String())
	assert.Equal(t, "jsd", NewProg("jsd").Name)
}

func TestWrtTemp(t *testing.T) {
	const s = "AAC 3\nACG 4\n"
	fname, err := WrtTemp(s)
	require.NoError(t, err)
	defer os.Remove(fname)
	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, s, string(b))
}
