// Package model 定义了与数据库表对应的数据结构
package model

// ChatSender 消息发送方常量
const (
	ChatSenderUser = "user" // 用户消息
	ChatSenderBot  = "bot"  // 助手回复
)

// DiagnosisResult 一次图片分析的即时结果
// 只在回复消息中内嵌返回，不单独持久化
// （持久化的是 Diagnosis 实体）
type DiagnosisResult struct {
	// Disease 病害名称
	Disease string `json:"disease"`

	// Confidence 置信度，取值范围 [0, 1]
	Confidence float64 `json:"confidence"`

	// Treatment 防治建议
	Treatment string `json:"treatment"`
}

// ChatMessage 对话消息
// 对话本身不落库，消息列表只存在于客户端内存中
// 服务端负责构造 bot 侧的消息；user 侧的消息由客户端自行构造
// 消息一旦创建即不可变
type ChatMessage struct {
	// ID 消息标识，服务端生成的 UUID
	ID string `json:"id"`

	// Content 消息文本内容
	Content string `json:"content"`

	// Sender 发送方，见 ChatSender* 常量
	// 发送方决定哪些可选字段有意义:
	// hasImage/diagnosisResult 只出现在 bot 回复或带图的用户消息上
	Sender string `json:"sender"`

	// Timestamp ISO-8601 格式的创建时间
	Timestamp string `json:"timestamp"`

	// HasImage 是否携带图片
	HasImage bool `json:"hasImage,omitempty"`

	// ImageURL 图片的公开访问地址，可选
	ImageURL string `json:"imageUrl,omitempty"`

	// DiagnosisResult 图片诊断结果，可选
	DiagnosisResult *DiagnosisResult `json:"diagnosisResult,omitempty"`
}
