package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS raw_posts (
	post_id TEXT PRIMARY KEY,
	author_id TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL,
	like_count INTEGER NOT NULL DEFAULT 0,
	repost_count INTEGER NOT NULL DEFAULT 0,
	reply_count INTEGER NOT NULL DEFAULT 0,
	quote_count INTEGER NOT NULL DEFAULT 0,
	author_created_at TEXT,
	author_followers INTEGER,
	author_location TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS analyzed_posts (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	post_id TEXT NOT NULL,
	record TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	post_count INTEGER NOT NULL,
	hostile_count INTEGER NOT NULL,
	bot_stage INTEGER NOT NULL,
	geo_stage INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRawPosts inserts or replaces raw posts, keyed by post id.
func (s *sqliteStore) UpsertRawPosts(ctx context.Context, posts []post.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO raw_posts
		(post_id, author_id, text, created_at, like_count, repost_count,
		 reply_count, quote_count, author_created_at, author_followers, author_location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range posts {
		p := &posts[i]
		var createdAt, followers any
		if p.AuthorCreatedAt != nil {
			createdAt = *p.AuthorCreatedAt
		}
		if p.AuthorFollowers != nil {
			followers = *p.AuthorFollowers
		}
		_, err := stmt.ExecContext(ctx,
			p.ID, p.AuthorID, p.Text, p.CreatedAt.UTC().Format(time.RFC3339),
			p.LikeCount, p.RepostCount, p.ReplyCount, p.QuoteCount,
			createdAt, followers, p.AuthorLocation)
		if err != nil {
			return fmt.Errorf("upsert raw post %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetRawPosts returns all raw posts ordered by creation time then id.
func (s *sqliteStore) GetRawPosts(ctx context.Context) ([]post.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, author_id, text, created_at, like_count, repost_count,
		       reply_count, quote_count, author_created_at, author_followers, author_location
		FROM raw_posts ORDER BY created_at, post_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		var p post.Post
		var createdAt string
		var authorCreated sql.NullString
		var followers sql.NullInt64
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Text, &createdAt,
			&p.LikeCount, &p.RepostCount, &p.ReplyCount, &p.QuoteCount,
			&authorCreated, &followers, &p.AuthorLocation); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = t
		}
		if authorCreated.Valid {
			v := authorCreated.String
			p.AuthorCreatedAt = &v
		}
		if followers.Valid {
			v := followers.Int64
			p.AuthorFollowers = &v
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PutAnalyzedPosts stores the enriched output of one run, preserving
// the engine's output order. Records are stored as JSON; the analyzed
// column set changes with the engine, the schema does not.
func (s *sqliteStore) PutAnalyzedPosts(ctx context.Context, runID string, posts []post.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO analyzed_posts (run_id, position, post_id, record)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range posts {
		record, err := json.Marshal(&posts[i])
		if err != nil {
			return fmt.Errorf("marshal analyzed post %s: %w", posts[i].ID, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, posts[i].ID, string(record)); err != nil {
			return fmt.Errorf("insert analyzed post %s: %w", posts[i].ID, err)
		}
	}

	return tx.Commit()
}

// GetAnalyzedPosts returns one run's enriched posts in output order.
func (s *sqliteStore) GetAnalyzedPosts(ctx context.Context, runID string) ([]post.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM analyzed_posts WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var p post.Post
		if err := json.Unmarshal([]byte(record), &p); err != nil {
			return nil, fmt.Errorf("unmarshal analyzed post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PutRun records run metadata.
func (s *sqliteStore) PutRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
		(id, started_at, finished_at, post_count, hostile_count, bot_stage, geo_stage)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
		r.PostCount, r.HostileCount, boolToInt(r.BotStageRan), boolToInt(r.GeoStageRan))
	return err
}

// LatestRun returns the most recently started run, if any.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, post_count, hostile_count, bot_stage, geo_stage
		FROM runs ORDER BY started_at DESC LIMIT 1`)

	var r store.Run
	var started, finished string
	var botStage, geoStage int
	err := row.Scan(&r.ID, &started, &finished, &r.PostCount, &r.HostileCount, &botStage, &geoStage)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	r.BotStageRan = botStage != 0
	r.GeoStageRan = geoStage != 0
	return r, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
