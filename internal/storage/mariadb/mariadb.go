// Package mariadb is the relational catalog backend. It maps the domain
// aggregates onto MySQL/MariaDB tables through gorm.
//
// Every mutating call runs in its own transaction that is either committed or
// rolled back before the call returns. Reads assemble complete aggregates and
// keep them in the current session's identity map, so one session hands out
// exactly one object per game and per user, just like the in-memory backend.
// A session belongs to a single request; rotate it with ResetSession.
package mariadb

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"games_catalog/internal/config"
	"games_catalog/internal/storage"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	db   *gorm.DB
	log  *slog.Logger
	sess *session
}

var (
	_ storage.Repository    = (*Repository)(nil)
	_ storage.SessionScoped = (*Repository)(nil)
)

func New(cfg config.Database, log *slog.Logger) (*Repository, error) {
	const op = "storage.mariadb.New"

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db, log), nil
}

// NewWithDB wraps an already opened gorm connection.
func NewWithDB(db *gorm.DB, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{db: db, log: log}
}

func (r *Repository) Close() error {
	r.CloseSession()

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *Repository) Migrate() error {
	const op = "storage.mariadb.Migrate"

	err := r.db.AutoMigrate(
		&publisherRow{},
		&genreRow{},
		&gameRow{},
		&gameGenreRow{},
		&userRow{},
		&reviewRow{},
		&favouriteRow{},
		&wishlistGameRow{},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ResetSession drops the current session and starts a new one. Call it at
// the start of each request.
func (r *Repository) ResetSession() {
	r.CloseSession()
	r.sess = newSession(r.db)
}

// CloseSession forgets every aggregate loaded by the current session. The
// next call opens a fresh session.
func (r *Repository) CloseSession() {
	if r.sess != nil {
		r.sess.close()
		r.sess = nil
	}
}

func (r *Repository) session() *session {
	if r.sess == nil {
		r.sess = newSession(r.db)
	}
	return r.sess
}

// withTx runs fn as one unit of work on the current session.
func (r *Repository) withTx(op string, fn func(tx *gorm.DB) error) error {
	tx := r.session().db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("%s: %w", op, tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			r.log.Error("rollback failed",
				slog.String("operation", op),
				slog.String("error", rbErr.Error()))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
