// Command provision-index creates the search pipeline for RFP documents:
// the index schema, the blob data source, the enrichment skillset, and the
// indexer tying them together. One-time setup, safe to re-run.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/clients/azure"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/envutil"
	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

const (
	indexName      = "rfp-index"
	dataSourceName = "rfp-datasource"
	skillsetName   = "rfp-skillset"
	indexerName    = "rfp-indexer"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	admin, err := azure.NewSearchAdminService(log, azure.SearchConfig{
		Endpoint: envutil.Str("AZURE_SEARCH_SERVICE_ENDPOINT", ""),
		APIKey:   envutil.Str("AZURE_SEARCH_API_KEY", ""),
	})
	if err != nil {
		log.Fatal("Could not init search admin client", "error", err)
	}

	blobConnection := envutil.Str("AZURE_STORAGE_CONNECTION_STRING", "")
	blobContainer := envutil.Str("AZURE_STORAGE_CONTAINER_NAME", "rfp-documents")
	cognitiveKey := envutil.Str("AZURE_COGNITIVE_SERVICES_KEY", "")
	if blobConnection == "" {
		log.Fatal("Missing env var AZURE_STORAGE_CONNECTION_STRING")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := admin.CreateIndex(ctx, rfpIndex()); err != nil {
		log.Fatal("Create index failed", "error", err)
	}
	if err := admin.CreateDataSource(ctx, azure.DataSource{
		Name:        dataSourceName,
		Type:        "azureblob",
		Credentials: azure.DataSourceCredentials{ConnectionString: blobConnection},
		Container:   azure.DataSourceContainer{Name: blobContainer},
	}); err != nil {
		log.Fatal("Create data source failed", "error", err)
	}
	if err := admin.CreateSkillset(ctx, rfpSkillset(cognitiveKey)); err != nil {
		log.Fatal("Create skillset failed", "error", err)
	}
	if err := admin.CreateIndexer(ctx, rfpIndexer()); err != nil {
		log.Fatal("Create indexer failed", "error", err)
	}

	log.Info("Indexer pipeline setup complete",
		"index", indexName, "datasource", dataSourceName, "skillset", skillsetName, "indexer", indexerName)
}

func rfpIndex() azure.Index {
	return azure.Index{
		Name: indexName,
		Fields: []azure.IndexField{
			{Name: "id", Type: "Edm.String", Key: true},
			{Name: "content", Type: "Edm.String"},
			{Name: "fileName", Type: "Edm.String"},
			{Name: "uploadDate", Type: "Edm.String"},
			{Name: "guid", Type: "Edm.String"},
			{Name: "keyPhrases", Type: "Collection(Edm.String)"},
			{Name: "languageCode", Type: "Edm.String"},
			{Name: "sentimentScore", Type: "Edm.Double"},
			{Name: "persons", Type: "Collection(Edm.String)"},
			{Name: "organizations", Type: "Collection(Edm.String)"},
			{Name: "locations", Type: "Collection(Edm.String)"},
			{Name: "metadata_storage_path", Type: "Edm.String"},
			{Name: "metadata_storage_name", Type: "Edm.String"},
			{Name: "metadata_storage_last_modified", Type: "Edm.DateTimeOffset"},
			{Name: "metadata_storage_content_type", Type: "Edm.String"},
			{Name: "metadata_storage_size", Type: "Edm.Int32"},
		},
	}
}

func rfpSkillset(cognitiveKey string) azure.Skillset {
	ss := azure.Skillset{
		Name: skillsetName,
		Skills: []azure.Skill{
			{
				ODataType:   "#Microsoft.Skills.Vision.OcrSkill",
				Name:        "ocr-skill",
				Description: "Extract text from images",
				Context:     "/document",
				Inputs:      []azure.SkillMapping{{Name: "image", Source: "/document/content"}},
				Outputs:     []azure.SkillMapping{{Name: "text", TargetName: "text"}},
			},
			{
				ODataType:   "#Microsoft.Skills.Text.KeyPhraseExtractionSkill",
				Name:        "keyphrase-skill",
				Description: "Extract key phrases",
				Context:     "/document",
				Inputs:      []azure.SkillMapping{{Name: "text", Source: "/document/text"}},
				Outputs:     []azure.SkillMapping{{Name: "keyPhrases", TargetName: "keyPhrases"}},
			},
			{
				ODataType:   "#Microsoft.Skills.Text.V3.EntityRecognitionSkill",
				Name:        "entity-skill",
				Description: "Extract entities",
				Context:     "/document",
				Inputs:      []azure.SkillMapping{{Name: "text", Source: "/document/text"}},
				Outputs: []azure.SkillMapping{
					{Name: "persons", TargetName: "persons"},
					{Name: "organizations", TargetName: "organizations"},
					{Name: "locations", TargetName: "locations"},
				},
			},
			{
				ODataType:   "#Microsoft.Skills.Text.V3.SentimentSkill",
				Name:        "sentiment-skill",
				Description: "Analyze sentiment",
				Context:     "/document",
				Inputs:      []azure.SkillMapping{{Name: "text", Source: "/document/text"}},
				Outputs:     []azure.SkillMapping{{Name: "sentiment", TargetName: "sentimentScore"}},
			},
			{
				ODataType:   "#Microsoft.Skills.Text.LanguageDetectionSkill",
				Name:        "language-skill",
				Description: "Detect language",
				Context:     "/document",
				Inputs:      []azure.SkillMapping{{Name: "text", Source: "/document/text"}},
				Outputs:     []azure.SkillMapping{{Name: "languageCode", TargetName: "languageCode"}},
			},
		},
	}
	if cognitiveKey != "" {
		ss.CognitiveServices = &azure.CognitiveServicesKey{
			ODataType: "#Microsoft.Azure.Search.CognitiveServicesByKey",
			Key:       cognitiveKey,
		}
	}
	return ss
}

func rfpIndexer() azure.Indexer {
	return azure.Indexer{
		Name:            indexerName,
		DataSourceName:  dataSourceName,
		TargetIndexName: indexName,
		SkillsetName:    skillsetName,
		// The blob is stored under its GUID, so the storage name doubles as
		// the document key; keying on the storage path would break the
		// lookup-by-GUID poll after upload.
		FieldMappings: []azure.FieldMapping{
			{SourceFieldName: "metadata_storage_name", TargetFieldName: "id"},
			{SourceFieldName: "metadata_storage_name", TargetFieldName: "fileName"},
			{SourceFieldName: "metadata_storage_last_modified", TargetFieldName: "uploadDate"},
			{SourceFieldName: "metadata_storage_name", TargetFieldName: "guid"},
		},
		OutputFieldMappings: []azure.FieldMapping{
			{SourceFieldName: "/document/text", TargetFieldName: "content"},
			{SourceFieldName: "/document/keyPhrases", TargetFieldName: "keyPhrases"},
			{SourceFieldName: "/document/languageCode", TargetFieldName: "languageCode"},
			{SourceFieldName: "/document/sentimentScore", TargetFieldName: "sentimentScore"},
			{SourceFieldName: "/document/persons", TargetFieldName: "persons"},
			{SourceFieldName: "/document/organizations", TargetFieldName: "organizations"},
			{SourceFieldName: "/document/locations", TargetFieldName: "locations"},
		},
	}
}
