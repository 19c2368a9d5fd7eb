package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 外部身份登录的用户
type User struct {
	UserId     primitive.ObjectID `json:"user_id" bson:"_id"`
	ExternalId string             `json:"external_id" bson:"external_id"` // 外部认证系统中的唯一标识
	Email      string             `json:"email,omitempty" bson:"email,omitempty"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Avatar     string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Admin      bool               `json:"admin" bson:"admin"`
	CreateTime time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime time.Time          `json:"update_time" bson:"update_time"`
	LoginTime  time.Time          `json:"login_time" bson:"login_time"`
	Status     int32              `json:"status" bson:"status"`
}
