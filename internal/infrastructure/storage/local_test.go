package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/pkg/config"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "restaurants/r1/logo.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/restaurants/r1/logo.png", url)

	raw, err := os.ReadFile(filepath.Join(dir, "restaurants", "r1", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(raw))

	require.NoError(t, s.Delete(ctx, "restaurants/r1/logo.png"))
	require.NoError(t, s.Delete(ctx, "restaurants/r1/logo.png"), "borrar dos veces no falla")
}

func TestLocalStorage_KeysStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, "text/plain")
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
