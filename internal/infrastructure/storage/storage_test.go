package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UploadOpenDelete(t *testing.T) {
	s := NewMemoryStore("http://local/media")
	ctx := context.Background()

	obj, err := s.Upload(ctx, "properties", "p1", "Front.JPG", "image/jpeg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Path, "properties/p1/"))
	assert.True(t, strings.HasSuffix(obj.Path, ".jpg"))
	assert.Equal(t, "http://local/media/"+obj.Path, obj.URL)

	r, ok := s.Open(obj.Path)
	require.True(t, ok)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "img", string(b))

	require.NoError(t, s.Delete(ctx, obj.Path))
	require.NoError(t, s.Delete(ctx, obj.Path))
	_, ok = s.Open(obj.Path)
	assert.False(t, ok)
}
