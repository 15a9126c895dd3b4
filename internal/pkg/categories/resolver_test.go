package categories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
)

// stubCategoryRepo satisfies repository.CategoryRepository; only GetBySlug
// matters here.
type stubCategoryRepo struct {
	bySlug map[string]*models.Category
	err    error
	calls  int
}

func (s *stubCategoryRepo) Create(category *models.Category) error { return nil }
func (s *stubCategoryRepo) GetByID(id uint) (*models.Category, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCategoryRepo) GetActive() ([]models.Category, error)   { return nil, nil }
func (s *stubCategoryRepo) Update(category *models.Category) error  { return nil }
func (s *stubCategoryRepo) Delete(id uint) error                    { return nil }
func (s *stubCategoryRepo) SlugExists(slug string) (bool, error)    { return false, nil }
func (s *stubCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.bySlug[slug]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestResolveSlugKnown(t *testing.T) {
	repo := &stubCategoryRepo{bySlug: map[string]*models.Category{
		"industrial-pumps": {ID: 12, Name: "Industrial Pumps", Slug: "industrial-pumps"},
	}}
	r := NewResolver(repo)

	id, ok := r.ResolveSlug("industrial-pumps")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)
}

func TestResolveSlugUnknown(t *testing.T) {
	r := NewResolver(&stubCategoryRepo{})

	id, ok := r.ResolveSlug("does-not-exist")
	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
}

func TestResolveSlugEmpty(t *testing.T) {
	repo := &stubCategoryRepo{}
	r := NewResolver(repo)

	_, ok := r.ResolveSlug("")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.calls, "empty slug must not reach the repository")
}

func TestResolveSlugLookupErrorIsUnknown(t *testing.T) {
	r := NewResolver(&stubCategoryRepo{err: errors.New("connection reset")})

	_, ok := r.ResolveSlug("never-cached-slug")
	assert.False(t, ok, "a failing lookup degrades to unknown instead of erroring")
}
