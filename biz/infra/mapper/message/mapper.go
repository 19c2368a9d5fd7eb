package message

import (
	"context"
	"errors"

	"github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "message"
	cacheKeyPrefix = "cache:message:"
)

type MongoMapper interface {
	RetrieveMessages(ctx context.Context, conversation string, size int) (msgs []*Message, err error)
	InsertOne(ctx context.Context, msg *Message) error
	ListMessage(ctx context.Context, conversation string, page *basic.Page) (msgs []*Message, hasMore bool, err error)
	FindById(ctx context.Context, mid string) (msg *Message, err error)
	CountMessage(ctx context.Context, conversation string) (total int64, err error)
	CountAll(ctx context.Context) (total int64, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// RetrieveMessages 按索引顺序取出size条msg记录, 为0则取出所有的
func (m *mongoMapper) RetrieveMessages(ctx context.Context, conversation string, size int) (msgs []*Message, err error) {
	oid, err := primitive.ObjectIDFromHex(conversation)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.M{cst.Index: 1})
	if size > 0 {
		opts.SetLimit(int64(size))
	}
	if err = m.conn.Find(ctx, &msgs, bson.M{cst.ConversationId: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}},
		opts); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[message mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return msgs, nil
}

// InsertOne 插入一条msg
func (m *mongoMapper) InsertOne(ctx context.Context, msg *Message) error {
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return err
}

// ListMessage 游标分页获取Message, 新的在前
func (m *mongoMapper) ListMessage(ctx context.Context, conversation string, page *basic.Page) (msgs []*Message, hasMore bool, err error) {
	ocid, err := primitive.ObjectIDFromHex(conversation)
	if err != nil {
		return nil, false, err
	}
	opts := options.Find().SetSort(bson.M{cst.Id: -1}).SetLimit(page.GetSize() + 1)
	filter := bson.M{cst.ConversationId: ocid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	if page != nil && page.Cursor != nil { // 创建时间更小的
		cursor, err := primitive.ObjectIDFromHex(*page.Cursor)
		if err != nil {
			return nil, false, err
		}
		filter[cst.Id] = bson.M{cst.LT: cursor}
	}
	if err = m.conn.Find(ctx, &msgs, filter, opts); err != nil {
		logs.Errorf("[message mapper] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, false, err
	}
	msgs, hasMore = util.SplitAndHasMore(msgs, page)
	return msgs, hasMore, err
}

func (m *mongoMapper) FindById(ctx context.Context, mid string) (msg *Message, err error) {
	oid, err := primitive.ObjectIDFromHex(mid)
	if err != nil {
		return nil, err
	}
	var one Message
	if err = m.conn.FindOne(ctx, cacheKeyPrefix+mid, &one, bson.M{cst.Id: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}); err != nil {
		return nil, err
	}
	return &one, nil
}

// CountMessage 统计对话内未删除的消息数
func (m *mongoMapper) CountMessage(ctx context.Context, conversation string) (total int64, err error) {
	ocid, err := primitive.ObjectIDFromHex(conversation)
	if err != nil {
		return 0, err
	}
	return m.conn.CountDocuments(ctx, bson.M{cst.ConversationId: ocid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}})
}

func (m *mongoMapper) CountAll(ctx context.Context) (total int64, err error) {
	return m.conn.CountDocuments(ctx, bson.M{cst.Status: bson.M{cst.NE: cst.DeletedStatus}})
}
