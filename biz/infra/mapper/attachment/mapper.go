package attachment

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

var _ MongoMapper = (*mongoMapper)(nil)

const collection = "attachment"

type MongoMapper interface {
	InsertOne(ctx context.Context, a *Attachment) (err error)
	ListByMessage(ctx context.Context, mid string) (as []*Attachment, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewAttachmentMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) InsertOne(ctx context.Context, a *Attachment) (err error) {
	if a.AttachmentId.IsZero() {
		a.AttachmentId = primitive.NewObjectID()
	}
	if a.CreateTime.IsZero() {
		a.CreateTime = time.Now()
	}
	_, err = m.conn.InsertOneNoCache(ctx, a)
	return err
}

func (m *mongoMapper) ListByMessage(ctx context.Context, mid string) (as []*Attachment, err error) {
	oid, err := primitive.ObjectIDFromHex(mid)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.M{cst.CreateTime: 1})
	if err = m.conn.Find(ctx, &as, bson.M{cst.MessageId: oid}, opts); err != nil {
		return nil, err
	}
	return as, nil
}
