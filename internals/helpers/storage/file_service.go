package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"golang.org/x/image/draw"

	"praktikum_backend/internals/configs"
)

const (
	maxUploadSize = 5 * 1024 * 1024

	// batas resize keep-aspect sebelum re-encode WebP
	webpMaxW    = 1600
	webpMaxH    = 1600
	webpQuality = 80
)

// UploadBase64 menerima data URI (data:<mime>;base64,<payload>), menyimpan ke
// bucket dan mengembalikan URL publik. Gambar jpeg/png dikompres ulang ke WebP.
func UploadBase64(ctx context.Context, base64Data, bucket, prefix string) (string, error) {
	mime, payload, ok := splitDataURI(base64Data)
	if !ok {
		return "", fmt.Errorf("format base64 tidak valid")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode base64 gagal: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("file kosong")
	}
	if len(raw) > maxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi batas 5MB")
	}

	ext := extensionFor(mime)
	body := raw

	// Gambar di-transcode ke WebP biar hemat storage; selain gambar disimpan apa adanya.
	if img, derr := decodeImage(raw, mime); derr == nil {
		if converted, cerr := encodeWebP(img); cerr == nil {
			body = converted
			mime = "image/webp"
			ext = "webp"
		}
	}

	object := fmt.Sprintf("%s-%d-%s.%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	cli, err := Client()
	if err != nil {
		return "", err
	}
	if _, err := cli.PutObject(ctx, bucket, object, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: mime,
	}); err != nil {
		return "", fmt.Errorf("upload ke storage gagal: %w", err)
	}

	return ObjectURL(bucket, object), nil
}

// Delete best-effort: gagal hapus cuma dicatat, tidak mengganggu alur utama.
func Delete(ctx context.Context, bucket, object string) bool {
	cli, err := Client()
	if err != nil {
		log.Printf("[WARNING] storage client: %v", err)
		return false
	}
	if err := cli.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("[WARNING] gagal hapus %s/%s: %v", bucket, object, err)
		return false
	}
	return true
}

// DeleteByURL parse URL lama lalu hapus objeknya (dipakai saat replace proof).
func DeleteByURL(ctx context.Context, rawURL string) bool {
	bucket, object, ok := ParseObjectURL(rawURL)
	if !ok {
		return false
	}
	return Delete(ctx, bucket, object)
}

// ObjectURL membentuk URL publik mengikuti endpoint MinIO.
func ObjectURL(bucket, object string) string {
	endpoint := configs.GetEnvDefault("MINIO_ENDPOINT", "localhost")
	port := configs.GetEnvDefault("MINIO_PORT", "9000")
	scheme := "http"
	if configs.GetEnv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%s/%s/%s", scheme, endpoint, port, bucket, object)
}

// ParseObjectURL membalikkan ObjectURL menjadi (bucket, object).
func ParseObjectURL(raw string) (string, string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], "/"), true
}

/* =======================================================================
   Data URI & transcoding
======================================================================= */

func splitDataURI(s string) (mime, payload string, ok bool) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", false
	}
	rest := s[len("data:"):]
	idx := strings.Index(rest, ";base64,")
	if idx < 0 {
		return "", "", false
	}
	mime = rest[:idx]
	payload = rest[idx+len(";base64,"):]
	if mime == "" || payload == "" {
		return "", "", false
	}
	return mime, payload, true
}

func extensionFor(mime string) string {
	if i := strings.Index(mime, "/"); i >= 0 && i+1 < len(mime) {
		return mime[i+1:]
	}
	return "bin"
}

func decodeImage(raw []byte, declaredMime string) (image.Image, error) {
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		ct = declaredMime
	}

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(raw))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(raw))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("bukan gambar: %s", ct)
	}
}

func encodeWebP(img image.Image) ([]byte, error) {
	img = resizeToFit(img, webpMaxW, webpMaxH)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
