package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenIsEmpty(t *testing.T) {
	store := openStore(t)

	scores, err := store.TopScores("pong", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestStoresAreIndependent(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	_, err := a.SaveScore(ScoreEntry{GameID: "pong", Score: 11})
	require.NoError(t, err)

	high, err := b.HighScore("pong")
	require.NoError(t, err)
	assert.Equal(t, 0, high, "each store is its own in-memory database")
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	for _, s := range []int{100, 50, 200} {
		_, err := store.SaveScore(ScoreEntry{GameID: "invaders", Score: s})
		require.NoError(t, err)
	}
	_, err := store.SaveScore(ScoreEntry{GameID: "pacman", Player: "alice", Score: 500, Level: 2, Won: true})
	require.NoError(t, err)

	scores, err := store.TopScores("invaders", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 200, scores[0].Score)
	assert.Equal(t, 100, scores[1].Score)
	assert.Equal(t, 50, scores[2].Score)
	assert.Equal(t, DefaultPlayer, scores[0].Player)
	assert.False(t, scores[0].CreatedAt.IsZero())

	pac, err := store.TopScores("pacman", 10)
	require.NoError(t, err)
	require.Len(t, pac, 1)
	assert.Equal(t, "alice", pac[0].Player)
	assert.Equal(t, 2, pac[0].Level)
	assert.True(t, pac[0].Won)
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openStore(t)

	tests := []struct {
		player string
		score  int
	}{
		{"a", 300}, {"b", 500}, {"c", 300}, {"d", 100}, {"e", 400},
	}
	for _, tc := range tests {
		_, err := store.SaveScore(ScoreEntry{GameID: "centipede", Player: tc.player, Score: tc.score})
		require.NoError(t, err)
	}

	top, err := store.TopScores("centipede", 4)
	require.NoError(t, err)
	require.Len(t, top, 4)

	var got []string
	for _, e := range top {
		got = append(got, fmt.Sprintf("%s:%d", e.Player, e.Score))
	}
	assert.Equal(t, []string{"b:500", "e:400", "a:300", "c:300"}, got, "ties keep insertion order")

	all, err := store.TopScores("centipede", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit uses the default")
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore("asteroids")
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	for _, s := range []int{100, 300, 200} {
		_, err := store.SaveScore(ScoreEntry{GameID: "asteroids", Score: s})
		require.NoError(t, err)
	}
	high, err = store.HighScore("asteroids")
	require.NoError(t, err)
	assert.Equal(t, 300, high)

	require.NoError(t, store.ClearScores("asteroids"))
	high, err = store.HighScore("asteroids")
	require.NoError(t, err)
	assert.Equal(t, 0, high)
}

func TestStoreRejectsEmptyGame(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore(ScoreEntry{Score: 10})
	assert.Error(t, err)
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)

	entries := []ScoreEntry{
		{GameID: "pong", Score: 11, Won: true},
		{GameID: "pong", Score: 5},
		{GameID: "adventure", Score: 1000, Won: true},
	}
	for _, e := range entries {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, GameStats{GameID: "adventure", Plays: 1, Best: 1000, Average: 1000, Wins: 1}, stats[0])
	assert.Equal(t, "pong", stats[1].GameID)
	assert.Equal(t, 2, stats[1].Plays)
	assert.Equal(t, 11, stats[1].Best)
	assert.InDelta(t, 8.0, stats[1].Average, 1e-9)
	assert.Equal(t, 1, stats[1].Wins)
}

func TestStoreRecentScores(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"pong", "pacman", "pitfall"} {
		_, err := store.SaveScore(ScoreEntry{GameID: id, Score: i, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	recent, err := store.RecentScores(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "pitfall", recent[0].GameID)
	assert.Equal(t, "pacman", recent[1].GameID)
	assert.True(t, recent[1].CreatedAt.Equal(base.Add(time.Minute)))
}

func TestStoreConcurrentWriters(t *testing.T) {
	store := openStore(t)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_, err := store.SaveScore(ScoreEntry{GameID: "defender", Player: fmt.Sprint(w), Score: w*10 + i})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 80, stats[0].Plays)
	assert.Equal(t, 79, stats[0].Best)
}
