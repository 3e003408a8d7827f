package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// searchableAttributes in relevance order. MeiliSearch ranks earlier
// attributes higher, so the strongest signals come first and the article
// body last.
var searchableAttributes = []string{"title", "keywords", "description", "tags", "content"}

type meiliClient struct {
	host      string
	apiKey    string
	indexName string
}

func newMeiliClient(host, apiKey, indexName string) *meiliClient {
	if host == "" {
		host = "http://localhost:7700"
	}
	if indexName == "" {
		indexName = "articles"
	}
	return &meiliClient{host: host, apiKey: apiKey, indexName: indexName}
}

// EnsureSettings pushes the searchable-attribute ranking to the index.
// MeiliSearch creates the index on first document push, so this is safe to
// call before any document exists.
func (m *meiliClient) EnsureSettings() error {
	body, _ := json.Marshal(map[string]interface{}{
		"searchableAttributes": searchableAttributes,
	})
	_, err := m.do("PATCH", fmt.Sprintf("/indexes/%s/settings", m.indexName), body)
	return err
}

func (m *meiliClient) Search(q string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	body, _ := json.Marshal(map[string]interface{}{"q": q, "limit": limit})
	data, err := m.do("POST", fmt.Sprintf("/indexes/%s/search", m.indexName), body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []map[string]interface{} `json:"hits"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	var results []Result
	for _, hit := range resp.Hits {
		r := Result{}
		if v, _ := hit["id"].(string); v != "" {
			r.ID = v
		}
		if v, _ := hit["title"].(string); v != "" {
			r.Title = v
		}
		if v, _ := hit["description"].(string); v != "" {
			r.Description = v
		}
		if v, _ := hit["slug"].(string); v != "" {
			r.Slug = v
		}
		if v, _ := hit["publish_year"].(float64); v > 0 {
			r.PublishYear = int(v)
		}
		results = append(results, r)
	}
	return results, nil
}

func (m *meiliClient) AddDocuments(docs []map[string]interface{}) error {
	body, _ := json.Marshal(docs)
	_, err := m.do("POST", fmt.Sprintf("/indexes/%s/documents", m.indexName), body)
	return err
}

func (m *meiliClient) DeleteDocument(id string) error {
	_, err := m.do("DELETE", fmt.Sprintf("/indexes/%s/documents/%s", m.indexName, id), nil)
	return err
}

func (m *meiliClient) do(method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, m.host+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("meili error %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
