package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sifan077/GifBoard/internal/app/model"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var (
	// ErrGifNotFound signals that the requested gif does not exist.
	ErrGifNotFound = errors.New("gif not found")
	// ErrDuplicateName signals that the unique index on gifs.name rejected the row.
	ErrDuplicateName = errors.New("gif name already taken")
)

// GifRepository defines the data access contract for gifs.
type GifRepository interface {
	Create(ctx context.Context, gif *model.Gif) error
	GetByID(ctx context.Context, id uint) (*model.Gif, error)
	List(ctx context.Context) ([]model.Gif, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListNames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type gifRepository struct {
	db *gorm.DB
}

// NewGifRepository returns a GORM-backed GifRepository.
func NewGifRepository(db *gorm.DB) GifRepository {
	return &gifRepository{db: db}
}

func (r *gifRepository) Create(ctx context.Context, gif *model.Gif) error {
	if err := r.db.WithContext(ctx).Create(gif).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *gifRepository) GetByID(ctx context.Context, id uint) (*model.Gif, error) {
	var gif model.Gif
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gif).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGifNotFound
		}
		return nil, err
	}
	return &gif, nil
}

// List returns every gif, most liked first. Ties keep insertion order.
func (r *gifRepository) List(ctx context.Context) ([]model.Gif, error) {
	result := make([]model.Gif, 0)
	if err := r.db.WithContext(ctx).
		Order("likes DESC").
		Order("id ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *gifRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Gif{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gifRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&model.Gif{}).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *gifRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Gif{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
