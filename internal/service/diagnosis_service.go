// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/internal/storage"
	"github.com/Dakshesh8090/Agri-All-round/pkg/util"
)

// ImageClassifier 图片分类器接口
// 输入一张作物图片，输出病害、置信度和防治建议
// 当前接入的是占位实现 RandomClassifier；将来接入真实模型时
// 只需要换一个实现，整条诊断流水线不用动
type ImageClassifier interface {
	Classify(ctx context.Context, filename string, data []byte) (*model.DiagnosisResult, error)
}

// diseaseCandidates 候选病害集合
// 占位分类器从中等概率随机选取一条
var diseaseCandidates = []model.DiagnosisResult{
	{
		Disease:    "Late Blight",
		Confidence: 0.92,
		Treatment:  "Apply copper-based fungicide and ensure good air circulation between plants. Remove and destroy infected parts immediately.",
	},
	{
		Disease:    "Powdery Mildew",
		Confidence: 0.87,
		Treatment:  "Apply neem oil or potassium bicarbonate spray. Improve air circulation and avoid overhead watering.",
	},
	{
		Disease:    "Bacterial Leaf Spot",
		Confidence: 0.78,
		Treatment:  "Remove infected leaves, avoid overhead watering, and apply copper-based bactericide as a preventive measure.",
	},
}

// RandomClassifier 占位图片分类器
// 不读取图片内容，从固定候选集中均匀随机选取一条结果
// TODO: 接入真实的病害识别模型后替换（保持 ImageClassifier 接口不变）
type RandomClassifier struct{}

// NewRandomClassifier 创建 RandomClassifier 实例
func NewRandomClassifier() *RandomClassifier {
	return &RandomClassifier{}
}

// Classify 从候选集中均匀随机选取一条诊断结果
// 返回的是候选项的副本，调用方可以安全持有
func (c *RandomClassifier) Classify(_ context.Context, _ string, _ []byte) (*model.DiagnosisResult, error) {
	picked := diseaseCandidates[rand.Intn(len(diseaseCandidates))]
	return &picked, nil
}

// DiagnosisService 病害诊断服务
// 串起整条诊断流水线: 上传图片 -> 分类 -> 落库 -> 组装回复
type DiagnosisService struct {
	userRepo      *repository.UserRepository      // 用户数据访问层
	diagnosisRepo *repository.DiagnosisRepository // 诊断记录数据访问层
	store         storage.ObjectStore             // 对象存储
	classifier    ImageClassifier                 // 图片分类器
}

// NewDiagnosisService 创建 DiagnosisService 实例
func NewDiagnosisService(
	userRepo *repository.UserRepository,
	diagnosisRepo *repository.DiagnosisRepository,
	store storage.ObjectStore,
	classifier ImageClassifier,
) *DiagnosisService {
	return &DiagnosisService{
		userRepo:      userRepo,
		diagnosisRepo: diagnosisRepo,
		store:         store,
		classifier:    classifier,
	}
}

// DiagnosisReply 一次图片诊断的处理结果
type DiagnosisReply struct {
	Diagnosis *model.Diagnosis   // 落库的诊断记录
	Reply     *model.ChatMessage // 组装好的助手回复（内嵌诊断结果）
}

// Analyze 处理一次图片诊断
// 流程: 上传 -> 分类 -> 落库 -> 组装回复
// 各外部调用在一次请求内顺序执行，没有并发扇出
// 参数:
//   - ctx: 上下文
//   - userID: 提问用户ID
//   - filename: 客户端上传的文件名
//   - data: 图片内容
//   - contentType: 图片 MIME 类型
//
// 返回:
//   - *DiagnosisReply: 处理结果
//   - error: 业务错误
func (s *DiagnosisService) Analyze(ctx context.Context, userID int64, filename string, data []byte, contentType string) (*DiagnosisReply, error) {
	// 1. 参数校验
	// 提示语与前端约定一致
	if len(data) == 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: Image and userId are required", ErrValidation)
	}

	// 2. 校验用户存在
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	// 3. 上传图片到对象存储
	if contentType == "" {
		contentType = guessContentType(filename)
	}
	key, err := s.store.Upload(ctx, util.ObjectKey(userID, filename), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	imageURL := s.store.PublicURL(key)

	// 4. 图片分类
	result, err := s.classifier.Classify(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 5. 诊断结果落库
	diagnosis, err := s.SaveDiagnosis(ctx, userID, imageURL, result.Disease, result.Treatment, result.Confidence)
	if err != nil {
		return nil, err
	}

	// 6. 组装助手回复
	return &DiagnosisReply{
		Diagnosis: diagnosis,
		Reply:     BuildBotReply(DiagnosisSummary(result), imageURL, result),
	}, nil
}

// SaveDiagnosis 持久化一条诊断记录
// 每次调用插入一条新记录（没有幂等键，重试会产生重复记录）
// 成功时返回带服务端 ID 和时间戳的完整记录
// 参数:
//   - ctx: 上下文
//   - userID: 所属用户ID，必须是已知用户
//   - imagePath: 图片访问地址
//   - disease: 病害名称
//   - solution: 防治建议
//   - confidence: 置信度，必须在 [0, 1] 内
//
// 返回:
//   - *model.Diagnosis: 落库后的诊断记录
//   - error: 校验错误或持久化错误
func (s *DiagnosisService) SaveDiagnosis(ctx context.Context, userID int64, imagePath, disease, solution string, confidence float64) (*model.Diagnosis, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence must be within [0, 1]", ErrValidation)
	}

	diagnosis := &model.Diagnosis{
		UserID:          userID,
		ImagePath:       imagePath,
		DiseaseDetected: disease,
		Solution:        solution,
		Confidence:      confidence,
	}
	if err := s.diagnosisRepo.Create(ctx, diagnosis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return diagnosis, nil
}

// History 获取用户的诊断历史
// 按诊断时间倒序排列
func (s *DiagnosisService) History(ctx context.Context, userID int64) ([]model.Diagnosis, error) {
	diagnoses, err := s.diagnosisRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return diagnoses, nil
}

// Delete 删除一条诊断记录
// 只有记录的所有者可以删除
func (s *DiagnosisService) Delete(ctx context.Context, userID, diagnosisID int64) error {
	diagnosis, err := s.diagnosisRepo.GetByID(ctx, diagnosisID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if diagnosis == nil {
		return ErrDiagnosisNotFound
	}
	if diagnosis.UserID != userID {
		return ErrNoPermission
	}
	if err := s.diagnosisRepo.Delete(ctx, diagnosisID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// guessContentType 根据文件扩展名推断 MIME 类型
// 客户端没有携带 Content-Type 时使用
func guessContentType(filename string) string {
	lowered := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lowered, ".png"):
		return "image/png"
	case strings.HasSuffix(lowered, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lowered, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
