// file: internals/helpers/oss/oss_client.go
package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSSService: cliente fino sobre o bucket configurado por ENV.
   Prefixos lógicos ("uploads", "avatars") separam os dois espaços de
   objetos; a URL pública é derivada deterministicamente da chave.
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// fullKey prefixa a chave com o namespace lógico do serviço.
func (s *OSSService) fullKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

// PutObject grava bytes na chave. Com overwrite=false a gravação falha se a
// chave já existir (x-oss-forbid-overwrite), em vez de sobrescrever.
func (s *OSSService) PutObject(ctx context.Context, key string, r io.Reader, contentType string, overwrite bool) error {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000"),
	}
	if !overwrite {
		opts = append(opts, oss.ForbidOverWrite(true))
	}
	return s.Bucket.PutObject(s.fullKey(key), r, opts...)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(s.fullKey(key), oss.WithContext(ctx))
}

// ListObjectsOlderThan enumera chaves do namespace com LastModified anterior
// ao limite. Usado pelo reaper de objetos órfãos.
func (s *OSSService) ListObjectsOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	var keys []string
	marker := ""
	prefix := ""
	if s.Prefix != "" {
		prefix = s.Prefix + "/"
	}
	for {
		lor, err := s.Bucket.ListObjects(
			oss.WithContext(ctx),
			oss.Prefix(prefix),
			oss.Marker(marker),
			oss.MaxKeys(1000),
		)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range lor.Objects {
			if obj.LastModified.Before(cutoff) {
				keys = append(keys, strings.TrimPrefix(obj.Key, prefix))
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = lor.NextMarker
	}
	return keys, nil
}

// PublicURL deriva a URL pública de uma chave (sem consultar o serviço).
func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	full := s.fullKey(key)
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + full
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, full)
}

// ExtractKeyFromPublicURL faz o caminho inverso de PublicURL.
func (s *OSSService) ExtractKeyFromPublicURL(publicURL string) (string, error) {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	trimBase := func(base string) (string, bool) {
		base = strings.TrimRight(base, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), true
		}
		return "", false
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		if k, ok := trimBase(base); ok {
			return s.trimPrefix(k), nil
		}
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	if k, ok := trimBase(fmt.Sprintf("https://%s.%s", s.BucketName, end)); ok {
		return s.trimPrefix(k), nil
	}
	return "", fmt.Errorf("url fora do bucket configurado: %s", publicURL)
}

func (s *OSSService) trimPrefix(key string) string {
	if s.Prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, s.Prefix+"/")
}

func isNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404
	}
	return false
}

// IsAlreadyExists detecta a recusa de sobrescrita (x-oss-forbid-overwrite).
func IsAlreadyExists(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 409 && se.Code == "FileAlreadyExists"
	}
	return false
}

func init() {
	// aviso único na subida quando storage não está configurado
	if getEnv("ALI_OSS_BUCKET") == "" {
		log.Println("[WARN] ALI_OSS_BUCKET vazio, uploads indisponíveis")
	}
}
