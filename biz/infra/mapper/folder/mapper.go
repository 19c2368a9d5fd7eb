package folder

import (
	"context"
	"time"

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
	collection     = "folder"
	cacheKeyPrefix = "cache:folder:"
)

type MongoMapper interface {
	CreateFolder(ctx context.Context, uid, name, color string) (f *Folder, err error)
	FindById(ctx context.Context, fid string) (f *Folder, err error)
	ListFolders(ctx context.Context, uid string) (fs []*Folder, err error)
	UpdateFolder(ctx context.Context, uid, fid string, set bson.M) (err error)
	DeleteFolder(ctx context.Context, uid, fid string) (err error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewFolderMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) CreateFolder(ctx context.Context, uid, name, color string) (f *Folder, err error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		logs.Errorf("[mapper] [folder] [CreateFolder] from hex err:%v", err)
		return nil, err
	}
	now := time.Now()
	f = &Folder{
		FolderId:   primitive.NewObjectID(),
		UserId:     oid,
		Name:       name,
		Color:      color,
		CreateTime: now,
		UpdateTime: now,
	}
	_, err = m.conn.InsertOne(ctx, cacheKeyPrefix+f.FolderId.Hex(), f)
	return f, err
}

func (m *mongoMapper) FindById(ctx context.Context, fid string) (f *Folder, err error) {
	oid, err := primitive.ObjectIDFromHex(fid)
	if err != nil {
		return nil, err
	}
	var one Folder
	if err = m.conn.FindOne(ctx, cacheKeyPrefix+fid, &one, bson.M{cst.Id: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}); err != nil {
		return nil, err
	}
	return &one, nil
}

// ListFolders 文件夹数量有限, 不分页
func (m *mongoMapper) ListFolders(ctx context.Context, uid string) (fs []*Folder, err error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.M{cst.CreateTime: 1})
	filter := bson.M{cst.UserId: oid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	if err = m.conn.Find(ctx, &fs, filter, opts); err != nil {
		return nil, err
	}
	return fs, nil
}

func (m *mongoMapper) UpdateFolder(ctx context.Context, uid, fid string, set bson.M) (err error) {
	oids, err := util.ObjectIDsFromHex(uid, fid)
	if err != nil {
		logs.Errorf("[mapper] [folder] [UpdateFolder] from hex err:%v", err)
		return err
	}
	ouid, ofid := oids[0], oids[1]
	set[cst.UpdateTime] = time.Now()
	filter := bson.M{cst.Id: ofid, cst.UserId: ouid, cst.Status: bson.M{cst.NE: cst.DeletedStatus}}
	_, err = m.conn.UpdateOne(ctx, cacheKeyPrefix+fid, filter, bson.M{cst.Set: set})
	return err
}

func (m *mongoMapper) DeleteFolder(ctx context.Context, uid, fid string) (err error) {
	return m.UpdateFolder(ctx, uid, fid, bson.M{cst.DeleteTime: time.Now(), cst.Status: cst.DeletedStatus})
}
