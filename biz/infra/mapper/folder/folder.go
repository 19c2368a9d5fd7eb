package folder

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Folder 用户自建的会话分组
type Folder struct {
	FolderId   primitive.ObjectID `json:"folder_id" bson:"_id"`
	UserId     primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name       string             `json:"name" bson:"name"`
	Color      string             `json:"color,omitempty" bson:"color,omitempty"`
	CreateTime time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime time.Time          `json:"update_time" bson:"update_time"`
	DeleteTime time.Time          `json:"delete_time,omitempty" bson:"delete_time,omitempty"`
	Status     int32              `json:"status" bson:"status"`
}
