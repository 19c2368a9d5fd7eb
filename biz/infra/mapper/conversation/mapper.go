package conversation

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
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "conversation"
	cacheKeyPrefix = "cache:conversation:"
)

type MongoMapper interface {
	CreateNewConversation(ctx context.Context, uid, folderId, model, systemPrompt string) (c *Conversation, err error)
	FindById(ctx context.Context, cid string) (c *Conversation, err error)
	ListConversations(ctx context.Context, uid string, folderId *string, archived bool, page *basic.Page) (cs []*Conversation, hasMore bool, err error)
	SearchConversations(ctx context.Context, uid, key string, page *basic.Page) (cs []*Conversation, hasMore bool, err error)
	UpdateConversation(ctx context.Context, uid, cid string, set bson.M) (err error)
	SetFolder(ctx context.Context, uid, cid, folderId string) (err error)
	UpdateConversationBrief(ctx context.Context, cid, brief string) (err error)
	Touch(ctx context.Context, cid string) (err error)
	DeleteConversation(ctx context.Context, uid, cid string) (err error)
	ClearFolder(ctx context.Context, uid, folderId string) (err error)
	CountAll(ctx context.Context) (total int64, err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewConversationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// CreateNewConversation 创建并缓存一个新的对话
func (m *mongoMapper) CreateNewConversation(ctx context.Context, uid, folderId, model, systemPrompt string) (c *Conversation, err error) {
	// 转换成ObjectID
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [CreateNewConversation] from hex err:%v", err)
		return nil, err
	}

	// 创建新Conversation
	now := time.Now()
	c = &Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         oid,
		Brief:          cst.DefaultBrief,
		Model:          model,
		SystemPrompt:   systemPrompt,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if folderId != "" {
		fid, err := primitive.ObjectIDFromHex(folderId)
		if err != nil {
			logs.Errorf("[mapper] [conversation] [CreateNewConversation] folder from hex err:%v", err)
			return nil, err
		}
		c.FolderId = fid
	}

	// 插入
	_, err = m.conn.InsertOne(ctx, cacheKeyPrefix+c.ConversationId.Hex(), c)
	return c, err
}

func (m *mongoMapper) FindById(ctx context.Context, cid string) (c *Conversation, err error) {
	oid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [FindById] from hex err:%v", err)
		return nil, err
	}
	var one Conversation
	filter := bson.M{cst.Id: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	if err = m.conn.FindOne(ctx, cacheKeyPrefix+cid, &one, filter); err != nil {
		return nil, err
	}
	return &one, nil
}

// ListConversations 分页查询用户对话列表, 置顶优先, 按最近活跃倒序
// folderId为空指针检索全部, 为空串仅检索未归入文件夹的会话
func (m *mongoMapper) ListConversations(ctx context.Context, uid string, folderId *string, archived bool, page *basic.Page) (cs []*Conversation, hasMore bool, err error) {
	// 转换为ObjectID
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [ListConversations] from hex err:%v", err)
		return nil, false, err
	}

	filter := bson.M{
		cst.UserId:   oid,
		cst.Status:   bson.M{cst.NE: cst.DeletedStatus},
		cst.Archived: archived,
	}
	if folderId != nil {
		if *folderId == "" {
			filter[cst.FolderId] = bson.M{cst.Exists: false}
		} else {
			fid, err := primitive.ObjectIDFromHex(*folderId)
			if err != nil {
				logs.Errorf("[mapper] [conversation] [ListConversations] folder from hex err:%v", err)
				return nil, false, err
			}
			filter[cst.FolderId] = fid
		}
	}

	var total int64
	opts := util.BuildFindOption(page).SetSort(bson.D{{Key: cst.Pinned, Value: -1}, {Key: cst.UpdateTime, Value: -1}})
	if err = m.conn.Find(ctx, &cs, filter, opts); err != nil {
		return nil, false, err
	}
	if total, err = m.conn.CountDocuments(ctx, filter); err != nil {
		return nil, false, err
	}
	return cs, util.HasMore(total, page), err
}

func (m *mongoMapper) SearchConversations(ctx context.Context, uid, key string, page *basic.Page) (cs []*Conversation, hasMore bool, err error) {
	// 转换为ObjectID
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [SearchConversations] from hex err:%v", err)
		return nil, false, err
	}

	var total int64
	// 标题模糊匹配
	filter := bson.M{cst.UserId: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}, cst.Brief: bson.M{cst.Regex: key, cst.Options: "i"}}
	// 分页, 最近活跃倒序
	opts := util.BuildFindOption(page).SetSort(bson.M{cst.UpdateTime: -1})
	if err = m.conn.Find(ctx, &cs, filter, opts); err != nil {
		return nil, false, err
	}
	if total, err = m.conn.CountDocuments(ctx, filter); err != nil {
		return nil, false, err
	}
	return cs, util.HasMore(total, page), err
}

// UpdateConversation 更新对应uid,cid且未删除对话的给定字段
func (m *mongoMapper) UpdateConversation(ctx context.Context, uid, cid string, set bson.M) (err error) {
	oids, err := util.ObjectIDsFromHex(uid, cid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [UpdateConversation] from hex err:%v", err)
		return err
	}
	ouid, ocid := oids[0], oids[1]
	set[cst.UpdateTime] = time.Now()
	filter := bson.M{cst.Id: ocid, cst.UserId: ouid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, filter, bson.M{cst.Set: set})
	return err
}

// SetFolder 移动会话到文件夹, folderId为空串时移出
func (m *mongoMapper) SetFolder(ctx context.Context, uid, cid, folderId string) (err error) {
	oids, err := util.ObjectIDsFromHex(uid, cid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [SetFolder] from hex err:%v", err)
		return err
	}
	ouid, ocid := oids[0], oids[1]
	filter := bson.M{cst.Id: ocid, cst.UserId: ouid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	update := bson.M{cst.Set: bson.M{cst.UpdateTime: time.Now()}}
	if folderId == "" {
		update[cst.Unset] = bson.M{cst.FolderId: ""}
	} else {
		ofid, err := primitive.ObjectIDFromHex(folderId)
		if err != nil {
			return err
		}
		update[cst.Set].(bson.M)[cst.FolderId] = ofid
	}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, filter, update)
	return err
}

// UpdateConversationBrief 更新对话标题, 标题生成方持有的不是请求上下文, 不做归属过滤
func (m *mongoMapper) UpdateConversationBrief(ctx context.Context, cid, brief string) (err error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [UpdateConversationBrief] from hex err:%v", err)
		return err
	}
	filter := bson.M{cst.Id: ocid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, filter,
		bson.M{cst.Set: bson.M{cst.UpdateTime: time.Now(), cst.Brief: brief}})
	return err
}

// Touch 消息落库后刷新会话活跃时间
func (m *mongoMapper) Touch(ctx context.Context, cid string) (err error) {
	ocid, err := primitive.ObjectIDFromHex(cid)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [Touch] from hex err:%v", err)
		return err
	}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, bson.M{cst.Id: ocid},
		bson.M{cst.Set: bson.M{cst.UpdateTime: time.Now()}})
	return err
}

func (m *mongoMapper) DeleteConversation(ctx context.Context, uid, cid string) (err error) {
	return m.UpdateConversation(ctx, uid, cid, bson.M{cst.DeleteTime: time.Now(), cst.Status: cst.DeletedStatus})
}

// ClearFolder 删除文件夹时摘除其下会话的归属, 逐条更新以保证缓存一致
func (m *mongoMapper) ClearFolder(ctx context.Context, uid, folderId string) (err error) {
	oids, err := util.ObjectIDsFromHex(uid, folderId)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [ClearFolder] from hex err:%v", err)
		return err
	}
	ouid, ofid := oids[0], oids[1]
	var cs []*Conversation
	filter := bson.M{cst.UserId: ouid, cst.FolderId: ofid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	if err = m.conn.Find(ctx, &cs, filter); err != nil {
		return err
	}
	for _, c := range cs {
		cid := c.ConversationId.Hex()
		if _, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+cid, bson.M{cst.Id: c.ConversationId},
			bson.M{cst.Unset: bson.M{cst.FolderId: ""}, cst.Set: bson.M{cst.UpdateTime: time.Now()}}); err != nil {
			return err
		}
	}
	return nil
}

func (m *mongoMapper) CountAll(ctx context.Context) (total int64, err error) {
	return m.conn.CountDocuments(ctx, bson.M{cst.Status: bson.M{cst.NE: cst.DeletedStatus}})
}
