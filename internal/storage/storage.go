package storage

import (
	"embed"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"meter-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sqlx.DB }

func New(path string) (*DB, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, &models.StorageError{Op: "open", Err: err}
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sqlx.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return &models.StorageError{Op: "migrate", Err: err}
	}
	if _, err = db.Exec(string(b)); err != nil {
		return &models.StorageError{Op: "migrate", Err: err}
	}
	return nil
}
