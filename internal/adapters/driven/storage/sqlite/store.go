package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/claimant-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed claim store. A single database file holds
// pages, chunks, summaries and the ask log.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.ClaimStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.claimant/data/claim.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".claimant", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "claim.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Pages ====================

// SavePage stores or updates a page.
func (s *Store) SavePage(ctx context.Context, page *domain.Page) error {
	partiesJSON, err := json.Marshal(page.Parties)
	if err != nil {
		return fmt.Errorf("marshalling parties: %w", err)
	}

	now := time.Now().UTC()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, number, header, date, parties, type, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			header = excluded.header,
			date = excluded.date,
			parties = excluded.parties,
			type = excluded.type,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, page.ID, page.Number, page.Header, page.Date, string(partiesJSON),
		string(page.Type), page.Content, page.CreatedAt, page.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// GetPage retrieves a page by ID.
func (s *Store) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, number, header, date, parties, type, content, created_at, updated_at
		FROM pages WHERE id = ?
	`, id)

	var page domain.Page
	var partiesJSON, pageType string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&page.ID, &page.Number, &page.Header, &page.Date,
		&partiesJSON, &pageType, &page.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	if err := json.Unmarshal([]byte(partiesJSON), &page.Parties); err != nil {
		return nil, fmt.Errorf("unmarshaling parties: %w", err)
	}

	page.Type = domain.PageType(pageType)
	if createdAt.Valid {
		page.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		page.UpdatedAt = updatedAt.Time
	}

	return &page, nil
}

// ListPages returns all pages ordered by page number.
func (s *Store) ListPages(ctx context.Context) ([]domain.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, header, date, parties, type, content, created_at, updated_at
		FROM pages ORDER BY number
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page //nolint:prealloc // size unknown from query
	for rows.Next() {
		var page domain.Page
		var partiesJSON, pageType string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&page.ID, &page.Number, &page.Header, &page.Date,
			&partiesJSON, &pageType, &page.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if err := json.Unmarshal([]byte(partiesJSON), &page.Parties); err != nil {
			return nil, fmt.Errorf("unmarshaling parties: %w", err)
		}
		page.Type = domain.PageType(pageType)
		if createdAt.Valid {
			page.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			page.UpdatedAt = updatedAt.Time
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	return pages, nil
}

// ==================== Chunks ====================

// SaveChunks stores chunks for a page.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, page_id, page_number, header, date, parties, page_type, content, position, sentence_count, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page_id = excluded.page_id,
			page_number = excluded.page_number,
			header = excluded.header,
			date = excluded.date,
			parties = excluded.parties,
			page_type = excluded.page_type,
			content = excluded.content,
			position = excluded.position,
			sentence_count = excluded.sentence_count,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		partiesJSON, err := json.Marshal(chunk.Parties)
		if err != nil {
			return fmt.Errorf("marshalling chunk parties: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.PageID, chunk.PageNumber,
			chunk.Header, chunk.Date, string(partiesJSON), string(chunk.PageType),
			chunk.Content, chunk.Position, chunk.SentenceCount, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListChunks returns all chunks across all pages.
func (s *Store) ListChunks(ctx context.Context) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, page_number, header, date, parties, page_type, content, position, sentence_count, embedding
		FROM chunks ORDER BY page_number, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var partiesJSON, pageType string
		var embeddingBlob []byte
		if err := rows.Scan(&chunk.ID, &chunk.PageID, &chunk.PageNumber,
			&chunk.Header, &chunk.Date, &partiesJSON, &pageType,
			&chunk.Content, &chunk.Position, &chunk.SentenceCount, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(partiesJSON), &chunk.Parties); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk parties: %w", err)
		}
		chunk.PageType = domain.PageType(pageType)
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ==================== Summaries ====================

// SaveSummary stores or updates the summary for a page.
func (s *Store) SaveSummary(ctx context.Context, summary *domain.Summary) error {
	partiesJSON, err := json.Marshal(summary.Parties)
	if err != nil {
		return fmt.Errorf("marshalling parties: %w", err)
	}

	embeddingBlob := float32SliceToBytes(summary.Embedding)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, page_id, page_number, header, date, parties, type, content, original_length, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page_id = excluded.page_id,
			page_number = excluded.page_number,
			header = excluded.header,
			date = excluded.date,
			parties = excluded.parties,
			type = excluded.type,
			content = excluded.content,
			original_length = excluded.original_length,
			embedding = excluded.embedding
	`, summary.ID, summary.PageID, summary.PageNumber, summary.Header, summary.Date,
		string(partiesJSON), string(summary.Type), summary.Content,
		summary.OriginalLength, embeddingBlob)

	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}

// ListSummaries returns all page summaries.
func (s *Store) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, page_number, header, date, parties, type, content, original_length, embedding
		FROM summaries ORDER BY page_number
	`)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.Summary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var summary domain.Summary
		var partiesJSON, pageType string
		var embeddingBlob []byte
		if err := rows.Scan(&summary.ID, &summary.PageID, &summary.PageNumber,
			&summary.Header, &summary.Date, &partiesJSON, &pageType,
			&summary.Content, &summary.OriginalLength, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		if err := json.Unmarshal([]byte(partiesJSON), &summary.Parties); err != nil {
			return nil, fmt.Errorf("unmarshaling summary parties: %w", err)
		}
		summary.Type = domain.PageType(pageType)
		summary.Embedding = bytesToFloat32Slice(embeddingBlob)
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}

	return summaries, nil
}

// ==================== Exchanges ====================

// SaveExchange appends a question/answer pair to the ask log.
func (s *Store) SaveExchange(ctx context.Context, exchange *domain.Exchange) error {
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, question, intent, answer, chunks_used, pages_merged, summaries_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, exchange.ID, exchange.Question, string(exchange.Intent), exchange.Answer,
		exchange.ChunksUsed, exchange.PagesMerged, exchange.SummariesUsed, exchange.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving exchange: %w", err)
	}
	return nil
}

// ListExchanges returns the most recent exchanges, newest first.
// A limit of 0 returns all.
func (s *Store) ListExchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	query := `
		SELECT id, question, intent, answer, chunks_used, pages_merged, summaries_used, created_at
		FROM exchanges ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []domain.Exchange //nolint:prealloc // size unknown from query
	for rows.Next() {
		var exchange domain.Exchange
		var intent string
		var createdAt sql.NullTime
		if err := rows.Scan(&exchange.ID, &exchange.Question, &intent, &exchange.Answer,
			&exchange.ChunksUsed, &exchange.PagesMerged, &exchange.SummariesUsed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		exchange.Intent = domain.RouteIntent(intent)
		if createdAt.Valid {
			exchange.CreatedAt = createdAt.Time
		}
		exchanges = append(exchanges, exchange)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
