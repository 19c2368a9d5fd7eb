package cst

const (
	// Assistant is the role of an assistant, means the message is returned by ChatModel.
	Assistant = "assistant"
	// User is the role of a user, means the message is a user message.
	User = "user"
	// System is the role of a system, means the message is a system message.
	System = "system"
)

// 上下文与内容的硬性边界, 超出按调用方错误处理
const (
	// MaxContextMessages 单次上游调用的消息总数上限, 含system
	MaxContextMessages = 100
	// MaxMessageChars 单条消息内容的字符数上限
	MaxMessageChars = 100_000
)

// 标题相关
const (
	// DefaultBrief 新对话的默认标题, 等于默认值视为未自定义
	DefaultBrief = "گفتگوی جدید"
	// TitleMaxChars 智能标题展示上限
	TitleMaxChars = 50
	// TitleFallbackChars 上游失败时, 取用户消息前若干字符作为标题
	TitleFallbackChars = 30
	// Ellipsis 截断标记
	Ellipsis = "..."
	// TitleTriggerCount 对话内消息数不超过该值时触发标题生成
	TitleTriggerCount = 2
)

// 上游provider
const (
	ProviderOpenRouter = "openrouter"
	// DoneSentinel 上游事件流的结束哨兵
	DoneSentinel = "[DONE]"
)

// 附件类型
const (
	AttachmentTypeImage = "image"
	// MaxUploadBytes 单个附件体积上限
	MaxUploadBytes = 10 << 20
)

// mapper层字段枚举
const (
	Id             = "_id"
	ConversationId = "conversation_id"
	MessageId      = "message_id"
	UserId         = "user_id"
	FolderId       = "folder_id"
	ExternalId     = "external_id"
	Provider       = "provider"
	CreateTime     = "create_time"
	UpdateTime     = "update_time"
	LoginTime      = "login_time"
	DeleteTime     = "delete_time"
	Brief          = "brief"
	Model          = "model"
	SystemPrompt   = "system_prompt"
	Pinned         = "pinned"
	Archived       = "archived"
	Name           = "name"
	Email          = "email"
	Avatar         = "avatar"
	Color          = "color"
	Emoji          = "emoji"
	Key            = "key"
	Active         = "active"
	Admin          = "admin"
	Index          = "index"
	Role           = "role"

	Status        = "status"
	NormalStatus  = 0
	DeletedStatus = -1

	NE          = "$ne"
	LT          = "$lt"
	In          = "$in"
	Set         = "$set"
	Unset       = "$unset"
	SetOnInsert = "$setOnInsert"
	Inc         = "$inc"
	Regex       = "$regex"
	Options     = "$options"
	Exists      = "$exists"
)
