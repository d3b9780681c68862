package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

// SearchAdminService covers the provisioning-time surface: index schema, blob
// data source, enrichment skillset, and indexer definitions. Invoked by the
// provision-index command, never on the request path.
type SearchAdminService interface {
	CreateIndex(ctx context.Context, index Index) error
	CreateDataSource(ctx context.Context, ds DataSource) error
	CreateSkillset(ctx context.Context, ss Skillset) error
	CreateIndexer(ctx context.Context, ix Indexer) error
}

type IndexField struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Key  bool   `json:"key,omitempty"`
}

type Index struct {
	Name   string       `json:"name"`
	Fields []IndexField `json:"fields"`
}

type DataSourceCredentials struct {
	ConnectionString string `json:"connectionString"`
}

type DataSourceContainer struct {
	Name string `json:"name"`
}

type DataSource struct {
	Name        string                `json:"name"`
	Type        string                `json:"type"`
	Credentials DataSourceCredentials `json:"credentials"`
	Container   DataSourceContainer   `json:"container"`
}

// SkillMapping is an input or output binding of a skill: inputs carry a
// source path, outputs a target name.
type SkillMapping struct {
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	TargetName string `json:"targetName,omitempty"`
}

type Skill struct {
	ODataType   string         `json:"@odata.type"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Context     string         `json:"context,omitempty"`
	Inputs      []SkillMapping `json:"inputs"`
	Outputs     []SkillMapping `json:"outputs"`
}

type CognitiveServicesKey struct {
	ODataType string `json:"@odata.type"`
	Key       string `json:"key"`
}

type Skillset struct {
	Name              string                `json:"name"`
	Skills            []Skill               `json:"skills"`
	CognitiveServices *CognitiveServicesKey `json:"cognitiveServices,omitempty"`
}

type FieldMapping struct {
	SourceFieldName string `json:"sourceFieldName"`
	TargetFieldName string `json:"targetFieldName"`
}

type Indexer struct {
	Name                string         `json:"name"`
	DataSourceName      string         `json:"dataSourceName"`
	TargetIndexName     string         `json:"targetIndexName"`
	SkillsetName        string         `json:"skillsetName,omitempty"`
	FieldMappings       []FieldMapping `json:"fieldMappings,omitempty"`
	OutputFieldMappings []FieldMapping `json:"outputFieldMappings,omitempty"`
}

func NewSearchAdminService(log *logger.Logger, cfg SearchConfig) (SearchAdminService, error) {
	return newSearchClient(log, cfg)
}

func (c *searchClient) CreateIndex(ctx context.Context, index Index) error {
	return c.putResource(ctx, "/indexes/"+url.PathEscape(index.Name), index, "index", index.Name)
}

func (c *searchClient) CreateDataSource(ctx context.Context, ds DataSource) error {
	return c.putResource(ctx, "/datasources/"+url.PathEscape(ds.Name), ds, "datasource", ds.Name)
}

func (c *searchClient) CreateSkillset(ctx context.Context, ss Skillset) error {
	return c.putResource(ctx, "/skillsets/"+url.PathEscape(ss.Name), ss, "skillset", ss.Name)
}

func (c *searchClient) CreateIndexer(ctx context.Context, ix Indexer) error {
	return c.putResource(ctx, "/indexers/"+url.PathEscape(ix.Name), ix, "indexer", ix.Name)
}

// putResource upserts a control-plane definition so provisioning can be
// re-run safely.
func (c *searchClient) putResource(ctx context.Context, path string, body any, kind, name string) error {
	u := c.url(path, nil)
	raw, status, err := c.do(ctx, http.MethodPut, u, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("search create_%s %q http %d: %s", kind, name, status, string(raw))
	}
	c.log.Info("search resource provisioned", "kind", kind, "name", name)
	return nil
}
