package storage

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"praktikum_backend/internals/configs"
)

// Bucket untuk tiap jenis berkas
const (
	BucketPayments    = "payments"
	BucketPermissions = "permissions"
	BucketFaces       = "faces"
	BucketAttendance  = "attendance"
)

var allBuckets = []string{BucketPayments, BucketPermissions, BucketFaces, BucketAttendance}

var (
	clientOnce sync.Once
	client     *minio.Client
	clientErr  error
)

// Client mengembalikan singleton MinIO client dari env.
func Client() (*minio.Client, error) {
	clientOnce.Do(func() {
		endpoint := configs.GetEnvDefault("MINIO_ENDPOINT", "localhost")
		port := configs.GetEnvDefault("MINIO_PORT", "9000")
		useSSL, _ := strconv.ParseBool(configs.GetEnv("MINIO_USE_SSL"))

		client, clientErr = minio.New(fmt.Sprintf("%s:%s", endpoint, port), &minio.Options{
			Creds:  credentials.NewStaticV4(configs.GetEnv("MINIO_ACCESS_KEY"), configs.GetEnv("MINIO_SECRET_KEY"), ""),
			Secure: useSSL,
		})
	})
	return client, clientErr
}

// InitBuckets memastikan semua bucket ada saat boot.
func InitBuckets(ctx context.Context) error {
	cli, err := Client()
	if err != nil {
		return err
	}
	for _, bucket := range allBuckets {
		exists, err := cli.BucketExists(ctx, bucket)
		if err != nil {
			return err
		}
		if !exists {
			if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
				return err
			}
			log.Printf("✅ Bucket MinIO dibuat: %s", bucket)
		}
	}
	return nil
}
