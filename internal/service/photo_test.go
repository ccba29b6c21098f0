package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, f.err
}

func newTestPhotoStore(putter ObjectPutter) *S3PhotoStore {
	return &S3PhotoStore{
		client: putter,
		bucket: "larder-photos",
		urlFor: func(key string) string { return "https://cdn.test/" + key },
	}
}

func TestUploadPhoto(t *testing.T) {
	putter := &fakePutter{}
	store := newTestPhotoStore(putter)

	url, err := store.Upload(context.Background(), "Soup.JPG", "image/jpeg", bytes.NewReader([]byte("jpeg")), 4)
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	key := *putter.input.Key
	assert.True(t, strings.HasPrefix(key, "recipes/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "larder-photos", *putter.input.Bucket)
	assert.Equal(t, "image/jpeg", *putter.input.ContentType)
	assert.Equal(t, "https://cdn.test/"+key, url)
}

func TestUploadPhotoRejectsNonImages(t *testing.T) {
	putter := &fakePutter{}
	store := newTestPhotoStore(putter)

	_, err := store.Upload(context.Background(), "notes.txt", "text/plain", strings.NewReader("hi"), 2)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidRequest))
	assert.Nil(t, putter.input)

	err = ValidatePhoto("image/png", MaxPhotoSize+1)
	require.Error(t, err)
	assert.Contains(t, err.(*apperror.Error).Fields, "photo")
}

func TestUploadPhotoStorageFailure(t *testing.T) {
	store := newTestPhotoStore(&fakePutter{err: errors.New("access denied")})

	_, err := store.Upload(context.Background(), "a.png", "image/png", strings.NewReader("png"), 3)
	assert.True(t, apperror.Is(err, apperror.CodeInternal))
}
