// Package handler 提供 HTTP 请求的处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// ChatHandler 文字咨询处理器
type ChatHandler struct {
	assistantService *service.AssistantService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(assistantService *service.AssistantService) *ChatHandler {
	return &ChatHandler{assistantService: assistantService}
}

// ChatRequest 文字咨询请求
type ChatRequest struct {
	Message string `json:"message"` // 提问内容
	UserID  int64  `json:"userId"`  // 提问用户ID
}

// ChatResponse 文字咨询响应
// 字段名与前端约定保持 camelCase
type ChatResponse struct {
	ID        string `json:"id"`        // 消息ID（优先使用咨询日志ID）
	Content   string `json:"content"`   // 应答文本
	Timestamp string `json:"timestamp"` // ISO-8601 时间戳
}

// Chat 处理文字咨询
// POST /chat
// 请求体: {"message": "...", "userId": 1}
// 响应: {"id": "...", "content": "...", "timestamp": "..."}
func (h *ChatHandler) Chat(c *gin.Context) {
	// 1. 绑定请求参数
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Message and userId are required")
		return
	}

	// 2. 调用业务逻辑
	result, err := h.assistantService.HandleMessage(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 3. 组装响应
	// 日志写入成功时用日志 ID 作为消息 ID，客户端可以据此关联历史
	// 写入失败（降级）时退回到消息自带的 UUID
	resp := ChatResponse{
		ID:        result.Reply.ID,
		Content:   result.Reply.Content,
		Timestamp: result.Reply.Timestamp,
	}
	if result.Query != nil {
		resp.ID = strconv.FormatInt(result.Query.ID, 10)
	}

	response.Success(c, resp)
}
