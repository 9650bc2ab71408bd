// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/Dakshesh8090/Agri-All-round/internal/cache"
	"github.com/Dakshesh8090/Agri-All-round/internal/config"
	"github.com/Dakshesh8090/Agri-All-round/pkg/util"
)

// WeatherData 对外返回的天气数据
// 字段名与前端约定保持 camelCase
type WeatherData struct {
	Location    string  `json:"location"`    // 地点名称（上游返回的规范名）
	Temperature int     `json:"temperature"` // 气温，摄氏度，四舍五入取整
	Humidity    int     `json:"humidity"`    // 相对湿度，百分数
	Rainfall    float64 `json:"rainfall"`    // 近一小时降雨量，毫米
	WindSpeed   int     `json:"windSpeed"`   // 风速，km/h，取整
	Description string  `json:"description"` // 天气描述
	Icon        string  `json:"icon"`        // 天气图标代码
	Date        string  `json:"date"`        // ISO-8601 时间戳
	IsFavorable bool    `json:"isFavorable"` // 是否适宜农事作业
}

// WeatherForecast 预报数据
// 上游只接了实时天气，预报是用当前天气按日期/小时平移生成的占位数据
type WeatherForecast struct {
	Daily  []WeatherData `json:"daily"`  // 未来 5 天
	Hourly []WeatherData `json:"hourly"` // 未来 24 小时
}

// openWeatherResponse OpenWeatherMap current weather API 的响应结构
// 只声明用到的字段
type openWeatherResponse struct {
	Name string `json:"name"` // 地点规范名
	Main struct {
		Temp     float64 `json:"temp"`     // 气温（摄氏度，units=metric）
		Humidity int     `json:"humidity"` // 相对湿度
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // 风速（m/s）
	} `json:"wind"`
	Rain map[string]float64 `json:"rain"` // 降雨量，键为 "1h"/"3h"
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// WeatherService 天气服务
// 封装对 OpenWeatherMap 的调用，带 Redis 缓存和超时控制
type WeatherService struct {
	config *config.Config
	cache  *cache.RedisCache
	client *http.Client
}

// NewWeatherService 创建 WeatherService 实例
func NewWeatherService(cfg *config.Config, redisCache *cache.RedisCache) *WeatherService {
	timeout := cfg.Weather.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherService{
		config: cfg,
		cache:  redisCache,
		client: &http.Client{
			Timeout: timeout, // 设置超时，上游挂掉时不能拖死请求
		},
	}
}

// CurrentWeather 获取指定地点的实时天气
// 先查 Redis 缓存，未命中再调上游并回填缓存
// 参数:
//   - ctx: 上下文
//   - location: 地点名称，空串使用配置的默认地点
//
// 返回:
//   - *WeatherData: 转换后的天气数据
//   - error: 上游调用失败返回 ErrUpstream
func (s *WeatherService) CurrentWeather(ctx context.Context, location string) (*WeatherData, error) {
	if location == "" {
		location = s.config.Weather.DefaultLocation
	}

	// 1. 查缓存
	if s.cache != nil {
		if cached, ok := s.cache.GetWeather(ctx, location); ok {
			var data WeatherData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return &data, nil
			}
			// 缓存内容损坏时忽略，走上游重新获取
		}
	}

	// 2. 调上游
	data, err := s.fetchCurrent(ctx, location)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	// 缓存失败只记日志，不影响响应
	if s.cache != nil {
		if payload, err := json.Marshal(data); err == nil {
			if err := s.cache.SetWeather(ctx, location, string(payload), s.config.Weather.CacheTTL); err != nil {
				log.Printf("[WARN] failed to cache weather for %s: %v", location, err)
			}
		}
	}

	return data, nil
}

// Forecast 获取指定地点的预报数据
// 基于当前天气生成 5 天 / 24 小时的占位预报
// 参数:
//   - ctx: 上下文
//   - location: 地点名称
//
// 返回:
//   - *WeatherForecast: 预报数据
//   - error: 上游调用失败返回 ErrUpstream
func (s *WeatherService) Forecast(ctx context.Context, location string) (*WeatherForecast, error) {
	current, err := s.CurrentWeather(ctx, location)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	forecast := &WeatherForecast{
		Daily:  make([]WeatherData, 0, 5),
		Hourly: make([]WeatherData, 0, 24),
	}

	for i := 0; i < 5; i++ {
		entry := *current
		entry.Date = util.FormatTimestamp(now.AddDate(0, 0, i))
		forecast.Daily = append(forecast.Daily, entry)
	}
	for i := 0; i < 24; i++ {
		entry := *current
		entry.Date = util.FormatTimestamp(now.Add(time.Duration(i) * time.Hour))
		forecast.Hourly = append(forecast.Hourly, entry)
	}

	return forecast, nil
}

// fetchCurrent 调用 OpenWeatherMap current weather API 并转换结果
func (s *WeatherService) fetchCurrent(ctx context.Context, location string) (*WeatherData, error) {
	if s.config.Weather.APIKey == "" {
		return nil, fmt.Errorf("%w: weather service not configured (missing API Key)", ErrUpstream)
	}

	// 构造请求 URL
	// units=metric 让上游直接返回摄氏度
	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		s.config.Weather.BaseURL,
		url.QueryEscape(location),
		s.config.Weather.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch weather data: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weather provider returned status %d", ErrUpstream, resp.StatusCode)
	}

	var raw openWeatherResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse weather response: %v", ErrUpstream, err)
	}

	return transformWeather(&raw), nil
}

// transformWeather 把上游响应转换为对外的数据结构
// 转换规则:
//   - 气温四舍五入取整
//   - 风速 m/s -> km/h 后取整
//   - 降雨量取 rain["1h"]，缺失时为 0
//   - 适宜性在取整前的原始气温上判定
func transformWeather(raw *openWeatherResponse) *WeatherData {
	data := &WeatherData{
		Location:    raw.Name,
		Temperature: int(math.Round(raw.Main.Temp)),
		Humidity:    raw.Main.Humidity,
		Rainfall:    raw.Rain["1h"],
		WindSpeed:   int(math.Round(raw.Wind.Speed * 3.6)), // m/s 转 km/h
		Date:        util.FormatTimestamp(time.Now()),
		IsFavorable: isFavorable(raw.Main.Temp, raw.Main.Humidity),
	}
	if len(raw.Weather) > 0 {
		data.Description = raw.Weather[0].Description
		data.Icon = raw.Weather[0].Icon
	}
	return data
}

// isFavorable 判断天气是否适宜农事作业
// 约定: 气温在 [15, 30] 摄氏度之间，且相对湿度不低于 40%
func isFavorable(tempC float64, humidity int) bool {
	return tempC >= 15 && tempC <= 30 && humidity >= 40
}
