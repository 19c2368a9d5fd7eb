package apikey

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApiKey 上游provider的凭证, 管理端录入, 优先于配置文件
type ApiKey struct {
	KeyId      primitive.ObjectID `json:"key_id" bson:"_id"`
	Provider   string             `json:"provider" bson:"provider"`
	Key        string             `json:"key" bson:"key"`
	Active     bool               `json:"active" bson:"active"`
	CreateTime time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime time.Time          `json:"update_time" bson:"update_time"`
}
