package message

import (
	"time"

	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	RoleStoI = map[string]int32{cst.System: 0, cst.Assistant: 1, cst.User: 2}
	RoleItoS = map[int32]string{0: cst.System, 1: cst.Assistant, 2: cst.User}
)

// Message 一条消息, 可能归属于用户或模型
type Message struct {
	MessageId      primitive.ObjectID `json:"message_id" bson:"_id"`                              // 主键
	ConversationId primitive.ObjectID `json:"conversation_id" bson:"conversation_id"`             // 归属的对话id
	UserId         primitive.ObjectID `json:"user_id" bson:"user_id"`                             // 用户id
	Index          int32              `json:"index" bson:"index"`                                 // 对话内消息索引
	Content        string             `json:"content" bson:"content"`                             // 消息内容
	Model          string             `json:"model,omitempty" bson:"model,omitempty"`             // 产生该消息的模型, 只有模型消息有
	Role           int32              `json:"role" bson:"role"`                                   // 角色, system/assistant/user, 依次为0,1,2
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`                     // 创建时间
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`                     // 更新时间
	DeleteTime     time.Time          `json:"delete_time,omitempty" bson:"delete_time,omitempty"` // 删除时间
	Status         int32              `json:"status" bson:"status"`                               // 状态
}
