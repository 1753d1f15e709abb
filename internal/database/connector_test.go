package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"portfolio_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sqliteConfig(t *testing.T) config.Database {
	t.Helper()
	return config.Database{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "portfolio.db"),
	}
}

func TestConnector_MemoizesHandle(t *testing.T) {
	conn := NewConnector(sqliteConfig(t))
	defer conn.Close()

	ctx := context.Background()
	first, err := conn.DB(ctx)
	require.NoError(t, err)

	second, err := conn.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Migrator().HasTable("skills"))
	assert.True(t, first.Migrator().HasTable("counters"))
}

func TestConnector_ConcurrentFirstCallersShareHandle(t *testing.T) {
	conn := NewConnector(sqliteConfig(t))
	defer conn.Close()

	const callers = 8
	handles := make([]*gorm.DB, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := conn.DB(context.Background())
			assert.NoError(t, err)
			handles[i] = db
		}(i)
	}
	wg.Wait()

	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
}

func TestConnector_CloseIsFinal(t *testing.T) {
	conn := NewConnector(sqliteConfig(t))

	require.NoError(t, conn.Ping(context.Background()))
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, err := conn.DB(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConnector_UnknownDriver(t *testing.T) {
	conn := NewConnector(config.Database{Driver: "oracle", URL: "x"})
	_, err := conn.DB(context.Background())
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@localhost:5432/portfolio?sslmode=disable",
		postgresDSN("postgres://u:p@localhost:5432?sslmode=disable", "portfolio"))
	assert.Equal(t, "postgres://u:p@localhost:5432/other",
		postgresDSN("postgres://u:p@localhost:5432/other", "portfolio"))
	assert.Equal(t, "host=localhost user=u dbname=portfolio",
		postgresDSN("host=localhost user=u", "portfolio"))
}

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(localhost:3306)/portfolio?parseTime=true",
		mysqlDSN("u:p@tcp(localhost:3306)/?parseTime=true", "portfolio"))
	assert.Equal(t, "u:p@tcp(localhost:3306)/other",
		mysqlDSN("u:p@tcp(localhost:3306)/other", "portfolio"))
}
