package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"campus-board/config"
	"campus-board/internal/model"
)

// PostDocument Post 在索引中的文档结构
type PostDocument struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	PostedAs  string    `json:"posted_as"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPostDocument 由 Post 构造索引文档
func NewPostDocument(p *model.Post) PostDocument {
	doc := PostDocument{ID: p.ID, PostedAs: string(p.PostedAs), CreatedAt: p.CreatedAt}
	if p.Title != nil {
		doc.Title = *p.Title
	}
	if p.Summary != nil {
		doc.Summary = *p.Summary
	}
	return doc
}

// Elastic Elasticsearch 中的 Post 镜像索引
type Elastic struct {
	client *elasticsearch.Client
	index  string
}

// NewElastic 创建 Elasticsearch 客户端
func NewElastic(cfg *config.SearchConfig) (*Elastic, error) {
	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}
	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("创建 Elasticsearch 客户端失败: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "posts"
	}
	return &Elastic{client: client, index: index}, nil
}

// EnsureIndex 索引不存在时按映射创建
func (e *Elastic) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":         map[string]string{"type": "long"},
				"title":      map[string]string{"type": "text"},
				"summary":    map[string]string{"type": "text"},
				"posted_as":  map[string]string{"type": "keyword"},
				"created_at": map[string]string{"type": "date"},
			},
		},
	}
	b, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	createRes, err := e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return err
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		return fmt.Errorf("创建索引失败: %s", createRes.String())
	}
	return nil
}

// IndexPost 写入或覆盖 Post 文档
func (e *Elastic) IndexPost(ctx context.Context, p *model.Post) error {
	b, err := json.Marshal(NewPostDocument(p))
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: strconv.FormatUint(uint64(p.ID), 10),
		Body:       bytes.NewReader(b),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("写入索引失败: %s", res.String())
	}
	return nil
}

// DeletePost 删除 Post 文档，文档不存在不视为错误
func (e *Elastic) DeletePost(ctx context.Context, id uint) error {
	req := esapi.DeleteRequest{
		Index:      e.index,
		DocumentID: strconv.FormatUint(uint64(id), 10),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("删除索引文档失败: %s", res.String())
	}
	return nil
}

// SearchPosts 在标题与摘要上做全文检索
func (e *Elastic) SearchPosts(ctx context.Context, query string, size int) ([]PostDocument, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^2", "summary", "posted_as"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(b)),
		e.client.Search.WithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("检索失败: %s", res.String())
	}

	return decodeHits(res.Body)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source PostDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeHits(r io.Reader) ([]PostDocument, error) {
	var parsed searchResponse
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("解析检索结果失败: %w", err)
	}

	docs := make([]PostDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}
