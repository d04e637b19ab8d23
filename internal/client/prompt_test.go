package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Note(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Shopping\n  eggs and milk  \n\n"), &out)

	in := p.Note()
	assert.Equal(t, "Shopping", in.Title)
	assert.Equal(t, "eggs and milk", in.Description)
	assert.Empty(t, in.Tag)
	assert.Contains(t, out.String(), "Title: ")
	assert.Contains(t, out.String(), "Description: ")
}

func TestPrompter_TodoPatch(t *testing.T) {
	p := NewPrompter(strings.NewReader("\nnew description\ny\n"), &bytes.Buffer{})

	patch := p.TodoPatch()
	assert.Nil(t, patch.Title)
	require.NotNil(t, patch.Description)
	assert.Equal(t, "new description", *patch.Description)
	require.NotNil(t, patch.IsCompleted)
	assert.True(t, *patch.IsCompleted)
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	in := p.Login()
	assert.Empty(t, in.Email)
	assert.Empty(t, in.Password)
}
