package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/school-enrollment-api/internal/models"
)

const (
	gradesCacheKey = "catalog:grades"
	levelsCacheKey = "catalog:levels"
)

func sectionsCacheKey(gradeID int64) string {
	return fmt.Sprintf("catalog:sections:%d", gradeID)
}

// cachedCatalog performs a read-through lookup. Cache failures fall back to load.
func cachedCatalog[T any](ctx context.Context, cache *CacheService, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if hit, err := cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	_ = cache.Set(ctx, key, value, ttl)
	return value, nil
}

type cachedGradeRepository struct {
	next  gradeRepository
	cache *CacheService
	ttl   time.Duration
}

// NewCachedGradeRepository wraps repo with a read-through cache. A disabled cache
// returns repo unchanged.
func NewCachedGradeRepository(repo gradeRepository, cache *CacheService, ttl time.Duration) gradeRepository {
	if !cache.Enabled() {
		return repo
	}
	return &cachedGradeRepository{next: repo, cache: cache, ttl: ttl}
}

func (r *cachedGradeRepository) FindAll(ctx context.Context) ([]models.Grade, error) {
	return cachedCatalog(ctx, r.cache, gradesCacheKey, r.ttl, r.next.FindAll)
}

type cachedSectionRepository struct {
	next  sectionRepository
	cache *CacheService
	ttl   time.Duration
}

// NewCachedSectionRepository caches the section list of each grade.
func NewCachedSectionRepository(repo sectionRepository, cache *CacheService, ttl time.Duration) sectionRepository {
	if !cache.Enabled() {
		return repo
	}
	return &cachedSectionRepository{next: repo, cache: cache, ttl: ttl}
}

func (r *cachedSectionRepository) FindByGradeID(ctx context.Context, gradeID int64) ([]models.Section, error) {
	return cachedCatalog(ctx, r.cache, sectionsCacheKey(gradeID), r.ttl, func(ctx context.Context) ([]models.Section, error) {
		return r.next.FindByGradeID(ctx, gradeID)
	})
}

type cachedLevelRepository struct {
	next  levelRepository
	cache *CacheService
	ttl   time.Duration
}

// NewCachedLevelRepository caches the educational level catalog.
func NewCachedLevelRepository(repo levelRepository, cache *CacheService, ttl time.Duration) levelRepository {
	if !cache.Enabled() {
		return repo
	}
	return &cachedLevelRepository{next: repo, cache: cache, ttl: ttl}
}

func (r *cachedLevelRepository) FindAll(ctx context.Context) ([]models.EducationalLevel, error) {
	return cachedCatalog(ctx, r.cache, levelsCacheKey, r.ttl, r.next.FindAll)
}

type sectionCacheInvalidator struct {
	studentRepository
	cache *CacheService
}

// NewSectionCacheInvalidator drops the cached sections of a grade after a
// student is created in it, since the section counters changed.
func NewSectionCacheInvalidator(repo studentRepository, cache *CacheService) studentRepository {
	if !cache.Enabled() {
		return repo
	}
	return &sectionCacheInvalidator{studentRepository: repo, cache: cache}
}

func (r *sectionCacheInvalidator) Create(ctx context.Context, student *models.Student) error {
	if err := r.studentRepository.Create(ctx, student); err != nil {
		return err
	}
	_ = r.cache.Invalidate(ctx, sectionsCacheKey(student.GradeID))
	return nil
}
