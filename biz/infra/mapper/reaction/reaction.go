package reaction

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction 用户对单条消息的表情反馈, 每人每条消息至多一条
type Reaction struct {
	ReactionId primitive.ObjectID `json:"reaction_id" bson:"_id"`
	MessageId  primitive.ObjectID `json:"message_id" bson:"message_id"`
	UserId     primitive.ObjectID `json:"user_id" bson:"user_id"`
	Emoji      string             `json:"emoji" bson:"emoji"`
	CreateTime time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime time.Time          `json:"update_time" bson:"update_time"`
}
