package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoOptions MongoDB 属性源选项
type MongoOptions struct {
	Uri        string        // 连接字符串
	Database   string        // 数据库名
	Collection string        // 集合名（默认 properties）
	Timeout    time.Duration // 读取超时时间（默认 5 秒）
}

// MongoSource MongoDB 属性源。集合中每个文档存放一条属性：
//
//	{ "key": "server.port", "value": "8080" }
type MongoSource struct {
	Options MongoOptions
}

type mongoProperty struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

func (s *MongoSource) Name() string {
	return fmt.Sprintf("Mongo(%s/%s)", s.Options.Database, s.collection())
}

func (s *MongoSource) collection() string {
	if s.Options.Collection == "" {
		return "properties"
	}
	return s.Options.Collection
}

func (s *MongoSource) Load() (map[string]string, error) {
	opts := s.Options
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo source requires a database name")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(opts.Uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()
	defer client.Disconnect(context.Background())

	cursor, err := client.Database(opts.Database).Collection(s.collection()).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query mongo properties: %w", err)
	}

	var docs []mongoProperty
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode mongo properties: %w", err)
	}

	result := make(map[string]string, len(docs))
	for _, doc := range docs {
		if doc.Key == "" {
			continue
		}
		result[doc.Key] = doc.Value
	}
	return result, nil
}
