package media

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, nil
}

func pngReader(t *testing.T, w, h int) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return &buf
}

func TestUploadImage_StoresWebPUnderFolder(t *testing.T) {
	putter := &fakePutter{}
	u := &Uploader{client: putter, bucket: "salon-media", baseURL: "https://cdn.example.com"}

	url, err := u.UploadImage(context.Background(), pngReader(t, 64, 64), "products")
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "salon-media", *putter.input.Bucket)
	assert.Equal(t, "image/webp", *putter.input.ContentType)
	assert.True(t, strings.HasPrefix(*putter.input.Key, "products/"))
	assert.True(t, strings.HasSuffix(*putter.input.Key, ".webp"))
	assert.Equal(t, "https://cdn.example.com/"+*putter.input.Key, url)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	putter := &fakePutter{}
	u := &Uploader{client: putter, bucket: "b", baseURL: "https://x"}

	_, err := u.UploadImage(context.Background(), strings.NewReader("not an image"), "products")
	require.Error(t, err)
	assert.Nil(t, putter.input, "nothing must reach the bucket")
}

func TestDownscale_CapsWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2048, 1024))

	out := downscale(src)
	assert.Equal(t, maxWidth, out.Bounds().Dx())
	assert.Equal(t, 512, out.Bounds().Dy(), "aspect ratio preserved")
}

func TestDownscale_SmallImagesUntouched(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 200))
	assert.Equal(t, src, downscale(src))
}
