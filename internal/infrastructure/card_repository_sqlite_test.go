package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

func setupTestRepo(t *testing.T) (*SQLiteCardRepository, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "card-repo-test-*")
	require.NoError(t, err)

	repo, err := NewSQLiteCardRepository(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func newCard(session, title string) *domain.Card {
	return &domain.Card{
		SessionID: session,
		Platform:  domain.PlatformTikTok,
		Title:     title,
		Rows: []domain.Row{
			{Key: "desc", Value: "dance", DownloadURL: "https://p16.tiktok/cover.jpg"},
			{Key: "views", Value: "2.3m"},
		},
		Media: &domain.Media{
			Kind:        domain.MediaVideo,
			Src:         "https://relay.test/?url=https%3A%2F%2Fv16.tiktok%2Fq0.mp4",
			CrossOrigin: "anonymous",
			Controls:    true,
		},
	}
}

func TestInsert_AssignsIDAndKeepsRows(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	card := newCard("s1", "Post")
	require.NoError(t, repo.Insert(card))
	assert.NotZero(t, card.ID)

	cards, err := repo.FindBySession("s1")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	found := cards[0]
	assert.Equal(t, "Post", found.Title)
	require.Len(t, found.Rows, 2)
	assert.Equal(t, "desc", found.Rows[0].Key)
	assert.True(t, found.Rows[0].IsDownload())
	assert.False(t, found.Rows[1].IsDownload())
	require.NotNil(t, found.Media)
	assert.True(t, found.Media.IsVideo())
	assert.True(t, found.Media.Controls)
}

func TestInsert_RejectsStoredCard(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	card := newCard("s1", "Post")
	require.NoError(t, repo.Insert(card))
	assert.Error(t, repo.Insert(card))
}

func TestFindBySession_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	for _, title := range []string{"Post", "Author", "quality_0"} {
		require.NoError(t, repo.Insert(newCard("s1", title)))
	}
	require.NoError(t, repo.Insert(newCard("s2", "Other")))

	cards, err := repo.FindBySession("s1")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "quality_0", cards[0].Title)
	assert.Equal(t, "Post", cards[2].Title)

	count, err := repo.CountBySession("s2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindBySession_Empty(t *testing.T) {
	repo, err := NewSQLiteCardRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	cards, err := repo.FindBySession("nobody")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestCardWithoutMedia(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	card := newCard("s1", "Music")
	card.Media = nil
	require.NoError(t, repo.Insert(card))

	cards, err := repo.FindBySession("s1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Nil(t, cards[0].Media)
}
