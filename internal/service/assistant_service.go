// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
	"github.com/Dakshesh8090/Agri-All-round/pkg/util"
)

// Rule 一条问答规则
// 消息中出现任意一个关键词即视为命中
type Rule struct {
	Keywords []string // 关键词列表（小写）
	Response string   // 命中后返回的建议文本
}

// adviceRules 规则表
// 按声明顺序匹配，排在前面的规则优先级更高
// 注意: 顺序是对外承诺的一部分，同时命中多条规则时
// 永远返回最靠前的那条（有测试覆盖这个约定），调整顺序前先想清楚
var adviceRules = []Rule{
	{
		Keywords: []string{"plant", "sow", "seed"},
		Response: "The best time to plant depends on your local climate and the specific crop. Make sure to check soil temperature and moisture levels before planting.",
	},
	{
		Keywords: []string{"water", "irrigation", "moisture"},
		Response: "Water your crops early in the morning to reduce evaporation. Use mulch to retain moisture and prevent weed growth.",
	},
	{
		Keywords: []string{"pest", "insect", "bug"},
		Response: "Consider using natural pest control methods like companion planting or introducing beneficial insects. Monitor your crops regularly for early detection.",
	},
	{
		Keywords: []string{"fertilizer", "nutrient", "feed"},
		Response: "Choose organic fertilizers for sustainable farming. Apply them during the growing season, following recommended rates for your specific crops.",
	},
}

// FallbackResponse 没有命中任何规则时的兜底回复
const FallbackResponse = "I apologize, but I need more specific information to provide accurate advice. Could you please provide more details about your farming question?"

// AssistantService 问答助手服务
// 负责文字咨询的分类应答和咨询日志写入
type AssistantService struct {
	userRepo  *repository.UserRepository  // 用户数据访问层
	queryRepo *repository.QueryRepository // 咨询日志数据访问层
}

// NewAssistantService 创建 AssistantService 实例
func NewAssistantService(
	userRepo *repository.UserRepository,
	queryRepo *repository.QueryRepository,
) *AssistantService {
	return &AssistantService{
		userRepo:  userRepo,
		queryRepo: queryRepo,
	}
}

// Classify 对用户消息做规则分类，返回应答文本
// 纯函数: 没有任何副作用，相同输入必然得到相同输出
// 匹配规则:
//  1. 消息统一转小写
//  2. 按声明顺序扫描规则表
//  3. 规则的任意关键词是消息的子串即命中，返回第一条命中规则的应答
//  4. 全部未命中时返回兜底回复
func (s *AssistantService) Classify(message string) string {
	lowered := strings.ToLower(message)
	for _, rule := range adviceRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Response
			}
		}
	}
	return FallbackResponse
}

// ChatResult 一次文字咨询的处理结果
type ChatResult struct {
	Query *model.Query       // 写入的咨询日志，写入失败时为 nil
	Reply *model.ChatMessage // 构造好的助手回复
}

// HandleMessage 处理一次文字咨询
// 流程: 校验 -> 分类 -> 写咨询日志 -> 组装回复
// 日志写入失败不会阻断应答（降级处理），只是响应中拿不到日志 ID
// 参数:
//   - ctx: 上下文
//   - userID: 提问用户ID
//   - message: 提问内容
//
// 返回:
//   - *ChatResult: 处理结果
//   - error: 业务错误（参数缺失 / 用户不存在）
func (s *AssistantService) HandleMessage(ctx context.Context, userID int64, message string) (*ChatResult, error) {
	// 1. 参数校验
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	// 2. 校验用户存在
	// 咨询日志必须归属于一个有效用户
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	// 3. 规则分类
	responseText := s.Classify(message)

	// 4. 写咨询日志
	// 写入失败时降级: 记一条错误日志，应答照常返回
	query := &model.Query{
		UserID:       userID,
		QueryText:    message,
		QueryType:    model.QueryTypeText,
		ResponseText: responseText,
	}
	if err := s.queryRepo.Create(ctx, query); err != nil {
		log.Printf("[WARN] failed to log query for user %d: %v", userID, err)
		query = nil
	}

	// 5. 组装助手回复
	return &ChatResult{
		Query: query,
		Reply: BuildBotReply(responseText, "", nil),
	}, nil
}

// BuildBotReply 组装一条助手侧的对话消息
// 生成新的消息 ID 和当前时间戳
// 参数:
//   - content: 消息文本
//   - imageURL: 图片地址，无图传空串
//   - result: 诊断结果，纯文字应答传 nil
//
// 返回:
//   - *model.ChatMessage: 组装好的消息
func BuildBotReply(content, imageURL string, result *model.DiagnosisResult) *model.ChatMessage {
	return &model.ChatMessage{
		ID:              util.GenerateUUID(),
		Content:         content,
		Sender:          model.ChatSenderBot,
		Timestamp:       util.FormatTimestamp(time.Now()),
		HasImage:        imageURL != "",
		ImageURL:        imageURL,
		DiagnosisResult: result,
	}
}

// DiagnosisSummary 生成图片诊断的人类可读摘要
// 置信度换算为百分数并保留一位小数，如 "92.0% confidence"
// 参数:
//   - result: 诊断结果
//
// 返回:
//   - string: 摘要文本
func DiagnosisSummary(result *model.DiagnosisResult) string {
	return fmt.Sprintf("I've analyzed your crop image and detected %s with %.1f%% confidence.",
		result.Disease, result.Confidence*100)
}
