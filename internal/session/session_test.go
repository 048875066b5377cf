package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/nats"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	ns, err := nats.StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err, "failed to start NATS")
	t.Cleanup(ns.Shutdown)

	nc, err := nats.ConnectInProcess(ns)
	require.NoError(t, err, "failed to connect to NATS")
	t.Cleanup(nc.Close)

	js, err := nats.CreateJetStream(nc)
	require.NoError(t, err, "failed to create JetStream")

	stream, err := nats.SetupStream(ctx, js)
	require.NoError(t, err, "failed to setup stream")

	return NewStore(js, stream)
}

func finishTour(t *testing.T, store *Store, sess *Session, cel catalog.Celebrity, car catalog.Car, when time.Time) {
	t.Helper()
	ctx := context.Background()
	events := []Event{
		sess.TourEvent(ActionStart, "", nil),
		sess.TourEvent(ActionAvatar, "me.png", map[string]any{"mime": "image/png"}),
		sess.TourEvent(ActionCelebrity, cel.ID, map[string]any{"name": cel.Name}),
		sess.TourEvent(ActionCar, car.ID, map[string]any{"name": car.Name}),
		sess.TourEvent(ActionVideo, car.Exterior, nil),
	}
	events[len(events)-1].Timestamp = when
	for _, ev := range events {
		require.NoError(t, store.Record(ctx, ev))
	}
}

func TestLoadState(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	cat := catalog.MustDefault()

	sess := New()
	cel, _ := cat.Celebrity("cel2")
	car, _ := cat.Car("car3")
	finishTour(t, store, sess, cel, car, time.Now())

	require.NoError(t, store.Record(ctx, sess.TourEvent(ActionShareURL, "https://celebtour.app/shared-tour/abc", nil)))
	require.NoError(t, store.Record(ctx, sess.ShareEvent(ActionSocial, "Facebook")))
	require.NoError(t, store.Record(ctx, sess.ShareEvent(ActionEmail, "friend@example.com")))
	require.NoError(t, store.Record(ctx, sess.ShareEvent(ActionCopy, "")))
	require.NoError(t, store.Record(ctx, sess.ShareEvent(ActionDownload, "/tmp/x.jpg")))

	state, err := store.LoadState(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.ID, state.Session)
	require.Equal(t, "me.png", state.Avatar)
	require.Equal(t, "cel2", state.CelebrityID)
	require.Equal(t, "James Wilson", state.Celebrity)
	require.Equal(t, "car3", state.CarID)
	require.Equal(t, "Aurora EV", state.Car)
	require.True(t, state.Finished())
	require.Equal(t, "https://celebtour.app/shared-tour/abc", state.ShareURL)
	require.Equal(t, 2, state.Shares)
	require.Equal(t, 1, state.Downloads)
	require.False(t, state.StartedAt.IsZero())
}

func TestLoadState_UnknownSession(t *testing.T) {
	store := setupStore(t)
	state, err := store.LoadState(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, state.Finished())
	require.Equal(t, 0, state.Shares)
}

func TestLoadGallery_OnlyFinishedNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	cat := catalog.MustDefault()

	older := New()
	finishTour(t, store, older, cat.Celebrities[0], cat.Cars[0], time.Now().Add(-time.Hour))

	newer := New()
	finishTour(t, store, newer, cat.Celebrities[1], cat.Cars[1], time.Now())

	abandoned := New()
	require.NoError(t, store.Record(ctx, abandoned.TourEvent(ActionStart, "", nil)))
	require.NoError(t, store.Record(ctx, abandoned.TourEvent(ActionCelebrity, "cel3", map[string]any{"name": "Emma Rodriguez"})))

	gallery, err := store.LoadGallery(ctx)
	require.NoError(t, err)
	require.Len(t, gallery, 2)
	require.Equal(t, newer.ID, gallery[0].Session)
	require.Equal(t, "Velocity GT", gallery[0].Car)
	require.Equal(t, older.ID, gallery[1].Session)
}

func TestLoadGallery_Empty(t *testing.T) {
	gallery, err := setupStore(t).LoadGallery(context.Background())
	require.NoError(t, err)
	require.Empty(t, gallery)
}

func TestStateApply_IgnoresUnknown(t *testing.T) {
	st := &State{}
	st.Apply(Event{Type: "mystery", Action: "x"})
	st.Apply(Event{Type: nats.EventTypeTour, Action: "unknown", Data: "x"})
	st.Apply(Event{Type: nats.EventTypeShare, Action: ActionCopy})
	require.Equal(t, State{}, *st)
}

func TestSession_Pair(t *testing.T) {
	cat := catalog.MustDefault()
	sess := New()

	cel, car := sess.Pair(cat)
	require.Equal(t, "cel1", cel.ID)
	require.Equal(t, "car1", car.ID)
	require.Equal(t, "", sess.CelebrityID())

	c4, _ := cat.Celebrity("cel4")
	sess.SelectCelebrity(c4)
	cel, car = sess.Pair(cat)
	require.Equal(t, "cel4", cel.ID)
	require.Equal(t, "car1", car.ID)
	require.Equal(t, "cel4", sess.CelebrityID())
}

func TestSession_PhotoAndAvatar(t *testing.T) {
	sess := New()
	require.False(t, sess.CreateAvatar())

	sess.SetPhoto(uploadPhoto())
	require.NotNil(t, sess.Photo)
	require.Nil(t, sess.Avatar)

	require.True(t, sess.CreateAvatar())
	require.Equal(t, sess.Photo.Data, sess.Avatar.Data)

	sess.ClearPhoto()
	require.Nil(t, sess.Photo)
	require.Nil(t, sess.Avatar)
}

func TestSession_RestartKeepsAvatar(t *testing.T) {
	cat := catalog.MustDefault()
	sess := New()
	sess.SetPhoto(uploadPhoto())
	sess.CreateAvatar()
	sess.SelectCelebrity(cat.Celebrities[2])
	sess.SelectCar(cat.Cars[2])
	sess.Video = "/img/cars/luxury-car-exterior.jpg"
	sess.ShareURL = "https://x/shared-tour/1"
	sess.ShareCount = 3
	id := sess.ID

	sess.Restart()
	require.NotEqual(t, id, sess.ID)
	require.NotNil(t, sess.Avatar)
	require.Equal(t, "", sess.CelebrityID())
	require.Equal(t, "", sess.CarID())
	require.Equal(t, "", sess.Video)
	require.Equal(t, "", sess.ShareURL)
	require.Equal(t, 0, sess.ShareCount)
}

func TestSession_Vars(t *testing.T) {
	cat := catalog.MustDefault()
	sess := New()
	sess.ShareURL = "https://celebtour.app/shared-tour/zz"
	vars := sess.Vars(cat)
	require.Equal(t, "Elegance S600", vars.Car)
	require.Equal(t, "Alex Morgan", vars.Celebrity)
	require.Equal(t, sess.ShareURL, vars.ShareURL)
}

func TestSession_Events(t *testing.T) {
	sess := New()
	ev := sess.TourEvent(ActionCar, "car2", map[string]any{"name": "Velocity GT"})
	require.Equal(t, sess.ID, ev.Session)
	require.Equal(t, nats.EventTypeTour, ev.Type)
	require.JSONEq(t, `{"name":"Velocity GT"}`, string(ev.Meta))

	share := sess.ShareEvent(ActionSocial, "LinkedIn")
	require.Equal(t, nats.EventTypeShare, share.Type)
	require.Nil(t, share.Meta)
}

func TestStateApply_VideoNamesPairWhenSelectionsSkipped(t *testing.T) {
	sess := New()
	st := &State{Session: sess.ID}
	st.Apply(sess.TourEvent(ActionStart, "", nil))
	st.Apply(sess.TourEvent(ActionVideo, "/cars/aurora.jpg", map[string]any{
		"celebrity":    "Alex Morgan",
		"celebrity_id": "cel1",
		"car":          "Luxury Sedan X",
		"car_id":       "car1",
	}))

	require.True(t, st.Finished())
	require.Equal(t, "cel1", st.CelebrityID)
	require.Equal(t, "Alex Morgan", st.Celebrity)
	require.Equal(t, "car1", st.CarID)
	require.Equal(t, "Luxury Sedan X", st.Car)
}

func TestStateApply_SelectionsWinOverVideoMeta(t *testing.T) {
	sess := New()
	st := &State{Session: sess.ID}
	st.Apply(sess.TourEvent(ActionCelebrity, "cel2", map[string]any{"name": "James Wilson"}))
	st.Apply(sess.TourEvent(ActionVideo, "v.jpg", map[string]any{
		"celebrity":    "Someone Else",
		"celebrity_id": "cel9",
		"car":          "Aurora EV",
		"car_id":       "car3",
	}))

	require.Equal(t, "cel2", st.CelebrityID)
	require.Equal(t, "James Wilson", st.Celebrity)
	require.Equal(t, "car3", st.CarID)
	require.Equal(t, "Aurora EV", st.Car)
}
