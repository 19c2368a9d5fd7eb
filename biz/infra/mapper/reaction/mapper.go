package reaction

import (
	"context"
	"time"

	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const collection = "reaction"

type MongoMapper interface {
	UpsertReaction(ctx context.Context, uid, mid, emoji string) (r *Reaction, err error)
	DeleteReaction(ctx context.Context, uid, mid string) (err error)
	ListByMessageIds(ctx context.Context, mids []primitive.ObjectID) (rs []*Reaction, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewReactionMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// UpsertReaction 同一用户对同一消息的反馈只保留最新一条
func (m *mongoMapper) UpsertReaction(ctx context.Context, uid, mid, emoji string) (r *Reaction, err error) {
	oids, err := util.ObjectIDsFromHex(uid, mid)
	if err != nil {
		return nil, err
	}
	ouid, omid := oids[0], oids[1]
	filter := bson.M{cst.MessageId: omid, cst.UserId: ouid}
	update := bson.M{
		cst.SetOnInsert: bson.M{
			cst.Id:         primitive.NewObjectID(),
			cst.CreateTime: time.Now(),
		},
		cst.Set: bson.M{cst.Emoji: emoji, cst.UpdateTime: time.Now()},
	}
	var one Reaction
	if err = m.conn.FindOneAndUpdateNoCache(ctx, &one, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)); err != nil {
		return nil, err
	}
	return &one, nil
}

func (m *mongoMapper) DeleteReaction(ctx context.Context, uid, mid string) (err error) {
	oids, err := util.ObjectIDsFromHex(uid, mid)
	if err != nil {
		return err
	}
	ouid, omid := oids[0], oids[1]
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{cst.MessageId: omid, cst.UserId: ouid})
	return err
}

// ListByMessageIds 批量取消息的反馈, 用于详情页聚合
func (m *mongoMapper) ListByMessageIds(ctx context.Context, mids []primitive.ObjectID) (rs []*Reaction, err error) {
	if len(mids) == 0 {
		return nil, nil
	}
	if err = m.conn.Find(ctx, &rs, bson.M{cst.MessageId: bson.M{cst.In: mids}}); err != nil {
		return nil, err
	}
	return rs, nil
}
