package apikey

import (
	"context"
	"time"

	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mapper 模型工厂在请求路径上取凭证, 依赖provider的初始化来设置全局变量, 不是很好
var Mapper MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "apikey"
	cacheKeyPrefix = "cache:apikey:"
)

type MongoMapper interface {
	FindActiveByProvider(ctx context.Context, provider string) (k *ApiKey, err error)
	UpsertByProvider(ctx context.Context, provider, key string) (k *ApiKey, err error)
	UpdateById(ctx context.Context, id string, set bson.M) (err error)
	DeleteById(ctx context.Context, id string) (err error)
	ListAll(ctx context.Context) (ks []*ApiKey, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewApiKeyMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	m := &mongoMapper{conn: conn}
	Mapper = m
	return m
}

// FindActiveByProvider 取该provider当前启用的凭证
func (m *mongoMapper) FindActiveByProvider(ctx context.Context, provider string) (k *ApiKey, err error) {
	var one ApiKey
	key := cacheKeyPrefix + provider
	if err = m.conn.FindOne(ctx, key, &one, bson.M{cst.Provider: provider, cst.Active: true}); err != nil {
		return nil, err
	}
	return &one, nil
}

// UpsertByProvider 每个provider只保留一条记录, 录入即启用
func (m *mongoMapper) UpsertByProvider(ctx context.Context, provider, key string) (k *ApiKey, err error) {
	filter := bson.M{cst.Provider: provider}
	update := bson.M{
		cst.SetOnInsert: bson.M{
			cst.Id:         primitive.NewObjectID(),
			cst.CreateTime: time.Now(),
		},
		cst.Set: bson.M{cst.Key: key, cst.Active: true, cst.UpdateTime: time.Now()},
	}
	var one ApiKey
	if err = m.conn.FindOneAndUpdateNoCache(ctx, &one, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)); err != nil {
		return nil, err
	}
	// 凭证变更后按provider失效缓存
	_ = m.conn.DelCache(ctx, cacheKeyPrefix+provider)
	return &one, nil
}

func (m *mongoMapper) UpdateById(ctx context.Context, id string, set bson.M) (err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	var one ApiKey
	if err = m.conn.FindOneNoCache(ctx, &one, bson.M{cst.Id: oid}); err != nil {
		return err
	}
	set[cst.UpdateTime] = time.Now()
	if _, err = m.conn.UpdateOneNoCache(ctx, bson.M{cst.Id: oid}, bson.M{cst.Set: set}); err != nil {
		return err
	}
	_ = m.conn.DelCache(ctx, cacheKeyPrefix+one.Provider)
	return nil
}

func (m *mongoMapper) DeleteById(ctx context.Context, id string) (err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	var one ApiKey
	if err = m.conn.FindOneNoCache(ctx, &one, bson.M{cst.Id: oid}); err != nil {
		return err
	}
	if _, err = m.conn.DeleteOneNoCache(ctx, bson.M{cst.Id: oid}); err != nil {
		return err
	}
	_ = m.conn.DelCache(ctx, cacheKeyPrefix+one.Provider)
	return nil
}

func (m *mongoMapper) ListAll(ctx context.Context) (ks []*ApiKey, err error) {
	opts := options.Find().SetSort(bson.M{cst.CreateTime: -1})
	if err = m.conn.Find(ctx, &ks, bson.M{}, opts); err != nil {
		return nil, err
	}
	return ks, nil
}
