// Package handler 提供 HTTP 请求的处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dakshesh8090/Agri-All-round/internal/service"
	"github.com/Dakshesh8090/Agri-All-round/pkg/response"
)

// WeatherHandler 天气查询处理器
type WeatherHandler struct {
	weatherService *service.WeatherService
}

// NewWeatherHandler 创建 WeatherHandler 实例
func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// Current 获取实时天气
// GET /weather?location=London
// location 缺省时使用配置的默认地点
func (h *WeatherHandler) Current(c *gin.Context) {
	location := c.Query("location")

	data, err := h.weatherService.CurrentWeather(c.Request.Context(), location)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, data)
}

// Forecast 获取天气预报
// GET /weather/forecast?location=London
// 返回未来 5 天和未来 24 小时的预报数据
func (h *WeatherHandler) Forecast(c *gin.Context) {
	location := c.Query("location")

	forecast, err := h.weatherService.Forecast(c.Request.Context(), location)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, forecast)
}
