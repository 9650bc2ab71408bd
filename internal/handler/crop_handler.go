// Package handler 提供 HTTP 请求的处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dakshesh8090/Agri-All-round/internal/middleware"
	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// CropHandler 作物记录处理器
type CropHandler struct {
	cropService *service.CropService
}

// NewCropHandler 创建 CropHandler 实例
func NewCropHandler(cropService *service.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// List 获取当前用户的作物列表
// GET /api/v1/crops
// 需要认证
func (h *CropHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	crops, err := h.cropService.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"crops": crops,
		"total": len(crops),
	})
}

// Create 创建作物记录
// POST /api/v1/crops
// 需要认证
func (h *CropHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	crop, err := h.cropService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, crop)
}

// Update 修改作物记录
// PUT /api/v1/crops/:id
// 需要认证，只能修改自己的记录
func (h *CropHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	cropID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || cropID <= 0 {
		response.BadRequest(c, "invalid crop id")
		return
	}

	var req service.CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	crop, err := h.cropService.Update(c.Request.Context(), userID, cropID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, crop)
}

// Delete 删除作物记录
// DELETE /api/v1/crops/:id
// 需要认证，只能删除自己的记录
func (h *CropHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	cropID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || cropID <= 0 {
		response.BadRequest(c, "invalid crop id")
		return
	}

	if err := h.cropService.Delete(c.Request.Context(), userID, cropID); err != nil {
		writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
