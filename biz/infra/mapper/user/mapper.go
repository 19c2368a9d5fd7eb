package user

import (
	"context"
	"time"

	"github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "user"
	cacheKeyPrefix = "cache:user:"
)

type MongoMapper interface {
	FindOrCreateUser(ctx context.Context, externalId, email, name, avatar string) (*User, error) // 按外部身份查找或创建一个用户
	FindById(ctx context.Context, id string) (*User, error)
	SetAdmin(ctx context.Context, id string, admin bool) (*User, error)
	ListUser(ctx context.Context, page *basic.Page) (int64, []*User, error)
	CountUser(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewUserMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// FindOrCreateUser 外部认证通过后按external_id落库, 已存在则刷新档案和登录时间
func (m *mongoMapper) FindOrCreateUser(ctx context.Context, externalId, email, name, avatar string) (*User, error) {
	filter := bson.M{cst.ExternalId: externalId}
	update := bson.M{
		cst.SetOnInsert: bson.M{
			cst.Id:         primitive.NewObjectID(),
			cst.ExternalId: externalId,
			cst.CreateTime: time.Now(),
			cst.Status:     cst.NormalStatus,
		},
		cst.Set: bson.M{
			cst.Email:      email,
			cst.Name:       name,
			cst.Avatar:     avatar,
			cst.LoginTime:  time.Now(),
			cst.UpdateTime: time.Now(),
		},
	}
	var u User
	err := m.conn.FindOneAndUpdateNoCache(ctx, &u, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	if err != nil {
		logs.Errorf("[mapper] [user] [FindOrCreateUser] err:%v", err)
		return nil, err
	}
	return &u, nil
}

func (m *mongoMapper) FindById(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	key := cacheKeyPrefix + id
	var u User
	err = m.conn.FindOne(ctx, key, &u, bson.M{cst.Id: oid})
	return &u, err
}

// SetAdmin 授予或回收管理员
func (m *mongoMapper) SetAdmin(ctx context.Context, id string, admin bool) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	key := cacheKeyPrefix + id
	if _, err = m.conn.UpdateOne(ctx, key, bson.M{cst.Id: oid},
		bson.M{cst.Set: bson.M{cst.Admin: admin, cst.UpdateTime: time.Now()}}); err != nil {
		return nil, err
	}
	return m.FindById(ctx, id)
}

func (m *mongoMapper) ListUser(ctx context.Context, page *basic.Page) (int64, []*User, error) {
	var users []*User
	filter := bson.M{cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	opts := util.BuildFindOption(page).SetSort(bson.M{cst.CreateTime: -1})
	if err := m.conn.Find(ctx, &users, filter, opts); err != nil {
		return 0, nil, err
	}
	total, err := m.conn.CountDocuments(ctx, filter)
	return total, users, err
}

func (m *mongoMapper) CountUser(ctx context.Context) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{cst.Status: bson.M{cst.NE: cst.DeletedStatus}})
}

func (m *mongoMapper) CountAdmins(ctx context.Context) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{cst.Admin: true, cst.Status: bson.M{cst.NE: cst.DeletedStatus}})
}
