// Package storage 提供对象存储的封装
// 作物图片存放在 S3 兼容的对象存储中（AWS S3 / MinIO 等）
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Dakshesh8090/Agri-All-round/internal/config"
)

// ObjectStore 对象存储接口
// 上层代码只依赖这个接口，便于在测试中替换为内存实现
type ObjectStore interface {
	// Upload 上传对象，返回存储路径（即传入的 key）
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// PublicURL 根据存储路径生成公开访问地址
	PublicURL(key string) string
}

// S3Store 基于 AWS SDK 的对象存储实现
type S3Store struct {
	client  *s3.Client // S3 客户端
	bucket  string     // 存储桶名称
	baseURL string     // 公开访问地址前缀，不含末尾斜杠
}

// NewS3Store 创建 S3Store 实例
// 凭证走 AWS SDK 默认链（环境变量 / 共享配置文件 / IAM 角色）
// 参数:
//   - ctx: 上下文
//   - cfg: 应用配置（包含存储桶、区域、Endpoint 等）
//
// 返回:
//   - *S3Store: 存储实例
//   - error: SDK 配置加载错误
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	opts := s3.Options{
		Region:       cfg.Storage.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		UsePathStyle: cfg.Storage.UsePathStyle,
	}
	// 自定义 Endpoint（MinIO 等 S3 兼容存储需要）
	if cfg.Storage.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
	}

	return &S3Store{
		client:  s3.New(opts),
		bucket:  cfg.Storage.Bucket,
		baseURL: resolveBaseURL(cfg),
	}, nil
}

// resolveBaseURL 推导公开访问地址前缀
// 优先使用显式配置；否则根据 Endpoint 或 AWS 默认域名拼接
func resolveBaseURL(cfg *config.Config) string {
	if cfg.Storage.PublicBaseURL != "" {
		return strings.TrimRight(cfg.Storage.PublicBaseURL, "/")
	}
	if cfg.Storage.Endpoint != "" {
		// Path-Style: <endpoint>/<bucket>
		return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Storage.Endpoint, "/"), cfg.Storage.Bucket)
	}
	// AWS 默认的 Virtual-Hosted-Style 域名
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Storage.Bucket, cfg.Storage.Region)
}

// Upload 上传对象到存储桶
// 参数:
//   - ctx: 上下文
//   - key: 对象 Key，形如 "<userID>/<时间戳>-<文件名>"
//   - data: 文件内容
//   - contentType: MIME 类型，如 "image/jpeg"
//
// 返回:
//   - string: 存储路径（即 key）
//   - error: 上传错误
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		// 图片需要能被前端直接展示
		ACL: types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return key, nil
}

// PublicURL 根据存储路径生成公开访问地址
func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}
