package repo

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("assessor not found")

// Repository stores assessor accounts. Calculations are never persisted.
type Repository interface {
	CreateAssessor(ctx context.Context, login, email, passwordHash string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

type PostgresAssessorRepository struct {
	db *sql.DB
}

func NewPostgresAssessorDB(db *sql.DB) *PostgresAssessorRepository {
	return &PostgresAssessorRepository{db: db}
}

// Open connects to Postgres, requiring TLS unless the DSN says otherwise.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(dsn, "sslmode=") {
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			dsn += "?sslmode=require"
		} else {
			dsn += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `CREATE TABLE IF NOT EXISTS assessors (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *PostgresAssessorRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	if err == nil {
		log.Println("assessors table ready")
	}
	return err
}

func (r *PostgresAssessorRepository) CreateAssessor(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO assessors (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	return id, err
}

func (r *PostgresAssessorRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	query := "SELECT id, password FROM assessors WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}
