package attachment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment 挂在消息上的附件, 目前只有图片
type Attachment struct {
	AttachmentId primitive.ObjectID `json:"attachment_id" bson:"_id"`
	MessageId    primitive.ObjectID `json:"message_id" bson:"message_id"`
	UserId       primitive.ObjectID `json:"user_id" bson:"user_id"`
	Type         string             `json:"type" bson:"type"`
	Url          string             `json:"url" bson:"url"`
	Filename     string             `json:"filename,omitempty" bson:"filename,omitempty"`
	Size         int64              `json:"size,omitempty" bson:"size,omitempty"`
	MimeType     string             `json:"mime_type,omitempty" bson:"mime_type,omitempty"`
	CreateTime   time.Time          `json:"create_time" bson:"create_time"`
}
