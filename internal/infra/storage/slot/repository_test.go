package slot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"S2", "S1", "S3"}, uniqueIDs([]string{"S2", "S1", "S2", "S3", "S1"}))
	assert.Empty(t, uniqueIDs(nil))
}

type recordingTxManager struct {
	calls int
}

func (m *recordingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return nil
}

func TestRepository_MarkBookedEmptyIsNoop(t *testing.T) {
	tx := &recordingTxManager{}
	repo := NewRepository(nil, tx)

	require.NoError(t, repo.MarkBooked(context.Background(), nil))
	require.NoError(t, repo.MarkBooked(context.Background(), []string{}))
	assert.Zero(t, tx.calls)
}
