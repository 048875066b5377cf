package nats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStart_PreparesStream(t *testing.T) {
	ctx := context.Background()
	emb, err := Start(ctx, t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, emb.Close()) }()

	info, err := emb.Stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, streamName, info.Config.Name)
	require.Equal(t, []string{AllSubjects}, info.Config.Subjects)

	_, err = emb.JS.Publish(ctx, SubjectForEvent("s1", EventTypeTour), []byte(`{}`))
	require.NoError(t, err)
}

func TestStart_ReusesExistingStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := Start(ctx, dir)
	require.NoError(t, err)
	_, err = first.JS.Publish(ctx, SubjectForEvent("s1", EventTypeShare), []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Start(ctx, dir)
	require.NoError(t, err)
	defer second.Close()

	info, err := second.Stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), info.State.Msgs)
}

func TestSubjects(t *testing.T) {
	require.Equal(t, "celebtour.abc.>", SubjectForSession("abc"))
	require.Equal(t, "celebtour.abc.tour", SubjectForEvent("abc", EventTypeTour))
}

func TestCloseNil(t *testing.T) {
	var e *Embedded
	require.NoError(t, e.Close())
}
