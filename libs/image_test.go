package libs

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestValidateImage(t *testing.T) {
	ext, err := ValidateImage(fileHeader(t, "Photo.PNG", []byte("png")), 10)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = ValidateImage(fileHeader(t, "notes.txt", []byte("x")), 10)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = ValidateImage(fileHeader(t, "big.jpg", bytes.Repeat([]byte("x"), 11)), 10)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = ValidateImage(nil, 10)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestLocalImageStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalImageStore(dir, 1024)

	url, err := store.Save(context.Background(), fileHeader(t, "shoe.jpg", []byte("jpeg-bytes")), "products")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	saved, err := os.ReadFile(filepath.Join(dir, "products", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(saved))
}
