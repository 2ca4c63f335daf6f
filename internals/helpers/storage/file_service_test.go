package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDataURI(t *testing.T) {
	mime, payload, ok := splitDataURI("data:image/png;base64,aGFsbG8=")
	require.True(t, ok)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, "aGFsbG8=", payload)

	_, _, ok = splitDataURI("bukan data uri")
	assert.False(t, ok)

	_, _, ok = splitDataURI("data:image/png,tanpa-base64")
	assert.False(t, ok)

	_, _, ok = splitDataURI("data:;base64,aGFsbG8=")
	assert.False(t, ok)

	_, _, ok = splitDataURI("data:image/png;base64,")
	assert.False(t, ok)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "png", extensionFor("image/png"))
	assert.Equal(t, "pdf", extensionFor("application/pdf"))
	assert.Equal(t, "bin", extensionFor("tanpa-garis-miring"))
}

func TestParseObjectURL(t *testing.T) {
	bucket, object, ok := ParseObjectURL("http://localhost:9000/payments/uid/bukti.webp")
	require.True(t, ok)
	assert.Equal(t, "payments", bucket)
	assert.Equal(t, "uid/bukti.webp", object)

	// object dengan path bertingkat tetap utuh
	bucket, object, ok = ParseObjectURL("https://minio.example.com:9000/faces/a/b/c.webp")
	require.True(t, ok)
	assert.Equal(t, "faces", bucket)
	assert.Equal(t, "a/b/c.webp", object)

	_, _, ok = ParseObjectURL("http://localhost:9000/")
	assert.False(t, ok)

	_, _, ok = ParseObjectURL("http://localhost:9000/hanya-bucket")
	assert.False(t, ok)
}

func TestObjectURLBolakBalik(t *testing.T) {
	raw := ObjectURL(BucketAttendance, "uid/absen.webp")
	bucket, object, ok := ParseObjectURL(raw)
	require.True(t, ok)
	assert.Equal(t, BucketAttendance, bucket)
	assert.Equal(t, "uid/absen.webp", object)
}
