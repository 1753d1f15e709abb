package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/database"
	"portfolio_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn := database.NewConnector(config.Database{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "repo.db"),
	})
	t.Cleanup(func() { _ = conn.Close() })

	db, err := conn.DB(context.Background())
	require.NoError(t, err)
	return db
}

func newSkillRepo() ResourceRepository[models.Skill, *models.Skill] {
	return NewResourceRepository[models.Skill, *models.Skill]("skills", NewCounterRepository())
}

func TestResourceRepository_SequentialIDs(t *testing.T) {
	db := openTestDB(t)
	repo := newSkillRepo()

	for i, name := range []string{"Go", "SQL", "Docker"} {
		skill := &models.Skill{Name: name, Level: 50}
		require.NoError(t, repo.Create(db, skill))
		assert.Equal(t, i+1, skill.ID)
	}

	all, err := repo.FindAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Go", all[0].Name)
	assert.Equal(t, 3, all[2].ID)
}

func TestResourceRepository_CounterSeededFromExistingRows(t *testing.T) {
	db := openTestDB(t)
	repo := newSkillRepo()

	// Импортированные данные со своими id
	require.NoError(t, db.Create(&models.Skill{Identity: models.Identity{ID: 41}, Name: "Legacy", Level: 10}).Error)

	skill := &models.Skill{Name: "New", Level: 20}
	require.NoError(t, repo.Create(db, skill))
	assert.Equal(t, 42, skill.ID)
}

func TestResourceRepository_IDsNotReusedAfterDelete(t *testing.T) {
	db := openTestDB(t)
	repo := newSkillRepo()

	first := &models.Skill{Name: "A", Level: 1}
	second := &models.Skill{Name: "B", Level: 2}
	require.NoError(t, repo.Create(db, first))
	require.NoError(t, repo.Create(db, second))
	require.NoError(t, repo.Delete(db, second.ID))

	third := &models.Skill{Name: "C", Level: 3}
	require.NoError(t, repo.Create(db, third))
	assert.Equal(t, 3, third.ID)
}

func TestResourceRepository_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	db := openTestDB(t)
	repo := newSkillRepo()

	const n = 10
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			skill := &models.Skill{Name: "x", Level: 1}
			if assert.NoError(t, repo.Create(db, skill)) {
				ids <- skill.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestResourceRepository_FindByIDAndDeleteNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := newSkillRepo()

	_, err := repo.FindByID(db, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(db, 7), ErrNotFound)
}

func TestResourceRepository_UpdateOnlyGivenColumns(t *testing.T) {
	db := openTestDB(t)
	repo := NewResourceRepository[models.Project, *models.Project]("projects", NewCounterRepository())

	project := &models.Project{Title: "T", Description: "D", URL: "http://u"}
	require.NoError(t, repo.Create(db, project))

	require.NoError(t, repo.Update(db, project.ID, map[string]interface{}{"title": "T2"}))
	require.NoError(t, repo.Update(db, project.ID, map[string]interface{}{}))

	got, err := repo.FindByID(db, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "D", got.Description)
	assert.Equal(t, "http://u", got.URL)
}

func TestResourceRepository_FindWhere(t *testing.T) {
	db := openTestDB(t)
	repo := NewResourceRepository[models.Artwork, *models.Artwork]("artworks", NewCounterRepository())

	require.NoError(t, repo.Create(db, &models.Artwork{Title: "a", Category: models.CategoryCharcoal}))
	require.NoError(t, repo.Create(db, &models.Artwork{Title: "b", Category: models.CategoryPainting}))
	require.NoError(t, repo.Create(db, &models.Artwork{Title: "c", Category: models.CategoryCharcoal}))

	charcoal, err := repo.FindWhere(db, "category", models.CategoryCharcoal)
	require.NoError(t, err)
	require.Len(t, charcoal, 2)
	assert.Equal(t, "a", charcoal[0].Title)
	assert.Equal(t, "c", charcoal[1].Title)

	none, err := repo.FindWhere(db, "category", "Sculpture")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository()

	_, err := repo.FindResume(db)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.FirstOrCreateResume(db, models.ResumeSettings{Filename: "resume.pdf", DisplayName: "Resume"})
	require.NoError(t, err)
	assert.Equal(t, "Resume", got.DisplayName)

	// Второй вызов не перетирает существующую строку
	got, err = repo.FirstOrCreateResume(db, models.ResumeSettings{Filename: "other.pdf", DisplayName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", got.Filename)

	require.NoError(t, repo.SaveResume(db, &models.ResumeSettings{
		Filename:    "resume-1.pdf",
		DisplayName: "CV",
		LastUpdated: "2024-01-02",
		FileURL:     "https://cdn/portfolio-resume/resume-1.pdf",
	}))

	got, err = repo.FindResume(db)
	require.NoError(t, err)
	assert.Equal(t, "CV", got.DisplayName)
	assert.Equal(t, "resume-1.pdf", got.Filename)

	var count int64
	require.NoError(t, db.Model(&models.ResumeSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
