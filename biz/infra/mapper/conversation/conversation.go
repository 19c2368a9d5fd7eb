package conversation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Conversation struct {
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"_id"`
	UserId         primitive.ObjectID `json:"user_id" bson:"user_id"`
	FolderId       primitive.ObjectID `json:"folder_id,omitempty" bson:"folder_id,omitempty"` // 归属文件夹, 可为空
	Brief          string             `json:"brief" bson:"brief"`                             // 标题, 首轮对话后自动生成
	Model          string             `json:"model" bson:"model"`                             // 上游模型标识
	SystemPrompt   string             `json:"system_prompt,omitempty" bson:"system_prompt,omitempty"`
	Pinned         bool               `json:"pinned" bson:"pinned"`
	Archived       bool               `json:"archived" bson:"archived"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`
	DeleteTime     time.Time          `json:"delete_time,omitempty" bson:"delete_time,omitempty"`
	Status         int                `json:"status" bson:"status"`
}
