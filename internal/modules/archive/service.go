// Package archive dumps the query ledger, the audit trail and the chunk
// corpus into dated zip archives holding one BSON document stream per
// table, keeps them locally and optionally ships them to an S3 bucket.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appcfg "github.com/bankbot/core/internal/config"
)

const defaultPrefix = "archives"

// tableNames lists the tables included in every archive.
var tableNames = []string{"document_chunks", "query_history", "audit_logs"}

type manifestTable struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

type manifest struct {
	Format    string          `json:"format"`
	Database  string          `json:"database"`
	CreatedAt time.Time       `json:"created_at"`
	Tables    []manifestTable `json:"tables"`
}

// Artifact describes one finished archive run.
type Artifact struct {
	Filename string          `json:"filename"`
	Path     string          `json:"path"`
	Location string          `json:"location"`
	Tables   []manifestTable `json:"tables"`
}

type Service struct {
	db       *gorm.DB
	cfg      appcfg.ArchiveConfig
	database string
	logger   *zap.Logger
}

func NewService(db *gorm.DB, cfg appcfg.ArchiveConfig, dsn string, logger *zap.Logger) *Service {
	database := "bankbot"
	if parsed, err := mysqldriver.ParseDSN(dsn); err == nil && parsed.DBName != "" {
		database = parsed.DBName
	}
	return &Service{
		db:       db,
		cfg:      cfg,
		database: database,
		logger:   logger.Named("archive"),
	}
}

// Run builds one archive, writes it under the configured directory and
// uploads it when the S3 target is configured. The local copy is kept
// either way.
func (s *Service) Run(ctx context.Context) (*Artifact, error) {
	now := time.Now()
	buf, m, err := s.buildArchive(ctx, now)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	filename := fmt.Sprintf("archive-%s.zip", now.Format("2006-01-02T15-04-05"))
	path := filepath.Join(s.cfg.Dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write archive file: %w", err)
	}

	artifact := &Artifact{
		Filename: filename,
		Path:     path,
		Location: path,
		Tables:   m.Tables,
	}

	if s.cfg.S3.Enabled() {
		client, err := newS3Client(s.cfg.S3)
		if err != nil {
			return nil, err
		}
		key := archiveObjectKey(s.cfg.S3.Prefix, filename, now)
		if err := uploadArchive(ctx, client, s.cfg.S3.Bucket, key, buf.Bytes()); err != nil {
			return nil, err
		}
		artifact.Location = "s3://" + s.cfg.S3.Bucket + "/" + key
	}

	s.logger.Info("archive created",
		zap.String("location", artifact.Location),
		zap.Int("tables", len(artifact.Tables)))
	return artifact, nil
}

func (s *Service) buildArchive(ctx context.Context, now time.Time) (*bytes.Buffer, *manifest, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	m := &manifest{
		Format:    "bson-zip/1",
		Database:  s.database,
		CreatedAt: now,
	}

	for _, table := range tableNames {
		var rows []map[string]interface{}
		if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
			return nil, nil, fmt.Errorf("dump table %s: %w", table, err)
		}

		var docs bytes.Buffer
		for _, row := range rows {
			doc, err := bson.Marshal(normalizeRow(row))
			if err != nil {
				return nil, nil, fmt.Errorf("encode row of %s: %w", table, err)
			}
			docs.Write(doc)
		}

		f, err := w.Create("db/" + table + ".bson")
		if err != nil {
			return nil, nil, err
		}
		if _, err := f.Write(docs.Bytes()); err != nil {
			return nil, nil, err
		}
		m.Tables = append(m.Tables, manifestTable{Name: table, Rows: len(rows)})
	}

	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	f, err := w.Create("manifest.json")
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Write(manifestJSON); err != nil {
		return nil, nil, err
	}

	if err := w.Close(); err != nil {
		return nil, nil, err
	}
	return buf, m, nil
}

// normalizeRow converts driver byte slices to strings so the BSON dump
// stays readable with standard tooling.
func normalizeRow(row map[string]interface{}) bson.M {
	doc := make(bson.M, len(row))
	for key, value := range row {
		if raw, ok := value.([]byte); ok {
			doc[key] = string(raw)
			continue
		}
		doc[key] = value
	}
	return doc
}

// archiveObjectKey lays uploads out as {prefix}/{YYYY}/{MM}/{filename}.
func archiveObjectKey(prefix, filename string, now time.Time) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return prefix + "/" + now.Format("2006") + "/" + now.Format("01") + "/" + filename
}

// List returns the local archives, newest name last.
func (s *Service) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Artifact{}, nil
		}
		return nil, fmt.Errorf("read archive directory: %w", err)
	}

	items := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		items = append(items, Artifact{
			Filename: entry.Name(),
			Path:     filepath.Join(s.cfg.Dir, entry.Name()),
			Location: filepath.Join(s.cfg.Dir, entry.Name()),
		})
	}
	return items, nil
}
