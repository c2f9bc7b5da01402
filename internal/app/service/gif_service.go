package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sifan077/GifBoard/internal/app/model"
	"github.com/sifan077/GifBoard/internal/app/repository"
	"go.uber.org/zap"
)

// GifService defines behaviour-level operations on gifs.
type GifService interface {
	ListGifs(ctx context.Context) ([]model.Gif, error)
	CreateGif(ctx context.Context, input CreateGifInput) (*model.Gif, error)
	GetGif(ctx context.Context, id uint) (*model.Gif, error)
}

// CreateGifInput captures data required to create a gif. A nil Likes means
// the caller did not supply one and the stored default applies.
type CreateGifInput struct {
	Name  string
	URL   string
	Likes *int
}

// ListCache stores list snapshots per generation. Invalidate starts a new
// generation; a snapshot is only ever served for the generation it was
// stored under.
type ListCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64) ([]model.Gif, bool, error)
	Set(ctx context.Context, version int64, gifs []model.Gif) error
	Invalidate(ctx context.Context) error
}

// EventPublisher announces created gifs to other replicas.
type EventPublisher interface {
	PublishCreated(ctx context.Context, gif *model.Gif) error
}

// Recorder counts store outcomes.
type Recorder interface {
	GifCreated()
	ValidationFailed(field string)
}

type nopRecorder struct{}

func (nopRecorder) GifCreated()             {}
func (nopRecorder) ValidationFailed(string) {}

// Option customises a GifService.
type Option func(*gifService)

// WithLogger sets the logger used for non-fatal side effect failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *gifService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListCache enables cache-aside reads for ListGifs.
func WithListCache(cache ListCache) Option {
	return func(s *gifService) { s.cache = cache }
}

// WithPublisher announces every created gif.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *gifService) { s.publisher = publisher }
}

// WithNameFilter lets CreateGif skip the existence query for unseen names.
func WithNameFilter(filter *NameFilter) Option {
	return func(s *gifService) { s.names = filter }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *gifService) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

type gifService struct {
	repo      repository.GifRepository
	logger    *zap.Logger
	cache     ListCache
	publisher EventPublisher
	names     *NameFilter
	recorder  Recorder
}

// NewGifService returns a service implementation backed by the given repository.
func NewGifService(repo repository.GifRepository, opts ...Option) GifService {
	s := &gifService{
		repo:     repo,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gifService) ListGifs(ctx context.Context) ([]model.Gif, error) {
	var (
		version  int64
		useCache bool
	)
	if s.cache != nil {
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.logger.Warn("gif list cache version read failed", zap.Error(err))
		} else {
			version, useCache = v, true
			gifs, ok, err := s.cache.Get(ctx, version)
			if err != nil {
				s.logger.Warn("gif list cache read failed", zap.Error(err))
			} else if ok {
				return gifs, nil
			}
		}
	}

	gifs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gifs: %w", err)
	}

	// version was read before the query, so a create that commits in
	// between leaves this snapshot under a generation nobody reads
	if useCache {
		if err := s.cache.Set(ctx, version, gifs); err != nil {
			s.logger.Warn("gif list cache write failed", zap.Error(err))
		}
	}
	return gifs, nil
}

func (s *gifService) CreateGif(ctx context.Context, input CreateGifInput) (*model.Gif, error) {
	gif := &model.Gif{
		Name:  strings.TrimSpace(input.Name),
		URL:   strings.TrimSpace(input.URL),
		Likes: model.DefaultLikes,
	}
	if input.Likes != nil {
		gif.Likes = *input.Likes
	}

	verr := &ValidationError{}
	if gif.Name == "" {
		verr.add("name", "can't be blank")
	}
	if gif.URL == "" {
		verr.add("url", "can't be blank")
	}
	if gif.Likes < 0 {
		verr.add("likes", "must be greater than or equal to 0")
	}

	if gif.Name != "" && s.mayBeTaken(gif.Name) {
		taken, err := s.repo.ExistsByName(ctx, gif.Name)
		if err != nil {
			return nil, fmt.Errorf("check gif name: %w", err)
		}
		if taken {
			verr.add("name", "has already been taken")
		}
	}

	if !verr.empty() {
		return nil, s.rejected(verr)
	}

	if err := s.repo.Create(ctx, gif); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			verr.add("name", "has already been taken")
			return nil, s.rejected(verr)
		}
		return nil, fmt.Errorf("create gif: %w", err)
	}

	s.recorder.GifCreated()
	if s.names != nil {
		s.names.Add(gif.Name)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("gif list cache invalidation failed", zap.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishCreated(ctx, gif); err != nil {
			s.logger.Error("failed to publish gif created event",
				zap.Uint("gif_id", gif.ID), zap.Error(err))
		}
	}

	return gif, nil
}

func (s *gifService) GetGif(ctx context.Context, id uint) (*model.Gif, error) {
	gif, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get gif: %w", err)
	}
	return gif, nil
}

// mayBeTaken is true unless the filter proves the name was never stored.
func (s *gifService) mayBeTaken(name string) bool {
	if s.names == nil {
		return true
	}
	return s.names.MayContain(name)
}

func (s *gifService) rejected(verr *ValidationError) error {
	for _, f := range verr.Fields {
		s.recorder.ValidationFailed(f.Field)
	}
	return verr
}
