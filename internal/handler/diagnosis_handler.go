// Package handler 提供 HTTP 请求的处理器
package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dakshesh8090/Agri-All-round/internal/middleware"
	"github.com/Dakshesh8090/Agri-All-round/internal/model"
	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// maxImageSize 上传图片的大小上限（10MB）
const maxImageSize = 10 << 20

// DiagnosisHandler 病害诊断处理器
type DiagnosisHandler struct {
	diagnosisService *service.DiagnosisService
}

// NewDiagnosisHandler 创建 DiagnosisHandler 实例
func NewDiagnosisHandler(diagnosisService *service.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosisService: diagnosisService}
}

// DiagnosisResponse 图片诊断响应
// 字段名与前端约定保持 camelCase
type DiagnosisResponse struct {
	ID              string                 `json:"id"`              // 诊断记录ID
	Content         string                 `json:"content"`         // 诊断摘要文本
	ImageURL        string                 `json:"imageUrl"`        // 图片访问地址
	DiagnosisResult *model.DiagnosisResult `json:"diagnosisResult"` // 结构化诊断结果
	Timestamp       string                 `json:"timestamp"`       // ISO-8601 时间戳
}

// Diagnose 处理图片诊断
// POST /diagnosis
// 请求: multipart/form-data，字段 image（文件）和 userId
// 响应: {"id": "...", "content": "...", "imageUrl": "...", "diagnosisResult": {...}, "timestamp": "..."}
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	// 1. 解析 multipart 表单
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image and userId are required")
		return
	}
	userID, err := strconv.ParseInt(c.PostForm("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "Image and userId are required")
		return
	}

	// 2. 限制图片大小，防止超大文件耗尽内存
	if fileHeader.Size > maxImageSize {
		response.BadRequest(c, "image too large (max 10MB)")
		return
	}

	// 3. 读取图片内容
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read uploaded image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "failed to read uploaded image")
		return
	}

	// 4. 调用诊断流水线
	contentType := fileHeader.Header.Get("Content-Type")
	reply, err := h.diagnosisService.Analyze(c.Request.Context(), userID, fileHeader.Filename, data, contentType)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 5. 组装响应
	response.Success(c, DiagnosisResponse{
		ID:              strconv.FormatInt(reply.Diagnosis.ID, 10),
		Content:         reply.Reply.Content,
		ImageURL:        reply.Reply.ImageURL,
		DiagnosisResult: reply.Reply.DiagnosisResult,
		Timestamp:       reply.Reply.Timestamp,
	})
}

// History 获取当前用户的诊断历史
// GET /api/v1/diagnoses
// 需要认证，按诊断时间倒序返回
func (h *DiagnosisHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)

	diagnoses, err := h.diagnosisService.History(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"diagnoses": diagnoses,
		"total":     len(diagnoses),
	})
}

// Delete 删除一条诊断记录
// DELETE /api/v1/diagnoses/:id
// 需要认证，只能删除自己的记录
func (h *DiagnosisHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	diagnosisID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || diagnosisID <= 0 {
		response.BadRequest(c, "invalid diagnosis id")
		return
	}

	if err := h.diagnosisService.Delete(c.Request.Context(), userID, diagnosisID); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
