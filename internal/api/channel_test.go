package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scouterhq/scouter-host/internal/store"
	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

type stubBroker struct {
	state   models.PermissionState
	granted bool

	sources []models.CaptureSource
	enumErr error

	// When set, EnumerateSources blocks until the channel is closed,
	// standing in for a flow suspended on a user modal.
	enumProceed chan struct{}

	savePath  string
	saveErr   error
	savedData []byte
	savedName string

	shownTitle string
}

func (b *stubBroker) CheckPermission(ctx context.Context) models.PermissionState {
	return b.state
}

func (b *stubBroker) RequestPermission(ctx context.Context) (bool, error) {
	return b.granted, nil
}

func (b *stubBroker) EnumerateSources(ctx context.Context) ([]models.CaptureSource, error) {
	if b.enumProceed != nil {
		select {
		case <-b.enumProceed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return b.sources, b.enumErr
}

func (b *stubBroker) ResolveSource(ctx context.Context, sourceID string) (string, error) {
	return sourceID, nil
}

func (b *stubBroker) SaveRecording(ctx context.Context, data []byte, suggestedName string) (string, error) {
	b.savedData = data
	b.savedName = suggestedName
	return b.savePath, b.saveErr
}

func (b *stubBroker) ShowError(title, message string) {
	b.shownTitle = title
}

func newTestServer(broker *stubBroker) *Server {
	mockStore := store.NewMockStore(models.PlatformInfo{Platform: "web", IsWeb: true}, nil, zerolog.Nop())
	return NewServer(ServerConfig{
		Broker: broker,
		Store:  mockStore,
		Logger: zerolog.Nop(),
	})
}

func request(t *testing.T, op string, payload any) models.ChannelRequest {
	t.Helper()

	req := models.ChannelRequest{ID: "req-1", Op: op}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req.Payload = raw
	}
	return req
}

func TestDispatchEnumerateSources(t *testing.T) {
	broker := &stubBroker{sources: []models.CaptureSource{{ID: "screen:0", Name: "Entire Screen"}}}
	s := newTestServer(broker)

	resp := s.dispatch(context.Background(), request(t, models.OpEnumerateSources, nil))

	assert.True(t, resp.OK)
	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, broker.sources, resp.Payload)
}

func TestDispatchEnumerateSourcesDenied(t *testing.T) {
	broker := &stubBroker{enumErr: &shared.CapabilityError{Message: "permission required"}}
	s := newTestServer(broker)

	resp := s.dispatch(context.Background(), request(t, models.OpEnumerateSources, nil))

	assert.False(t, resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrKindCapabilityDenied, resp.Error.Kind)
	assert.Equal(t, "permission required", resp.Error.Message)
}

func TestDispatchResolveSource(t *testing.T) {
	s := newTestServer(&stubBroker{})

	resp := s.dispatch(context.Background(), request(t, models.OpResolveSource, models.ResolveSourceRequest{SourceID: "window:7"}))

	require.True(t, resp.OK)
	payload, ok := resp.Payload.(models.ResolveSourceResponse)
	require.True(t, ok)
	assert.Equal(t, "window:7", payload.SourceID)
}

func TestDispatchPersistRecording(t *testing.T) {
	data := []byte("recorded video")
	broker := &stubBroker{savePath: "/tmp/out.webm"}
	s := newTestServer(broker)

	resp := s.dispatch(context.Background(), request(t, models.OpPersistRecording, models.PersistRecordingRequest{
		Data:          base64.StdEncoding.EncodeToString(data),
		SuggestedName: "out.webm",
	}))

	require.True(t, resp.OK)
	assert.Equal(t, data, broker.savedData, "recording bytes must arrive verbatim")
	assert.Equal(t, "out.webm", broker.savedName)

	payload, ok := resp.Payload.(models.PersistRecordingResponse)
	require.True(t, ok)
	assert.Equal(t, "/tmp/out.webm", payload.Path)
	assert.Equal(t, shared.SHA256Hex(data), payload.SHA256)
}

func TestDispatchPersistRecordingCancelled(t *testing.T) {
	// User cancellation is a null-equivalent result, not an error.
	s := newTestServer(&stubBroker{savePath: ""})

	resp := s.dispatch(context.Background(), request(t, models.OpPersistRecording, models.PersistRecordingRequest{
		Data: base64.StdEncoding.EncodeToString([]byte("x")),
	}))

	require.True(t, resp.OK)
	payload, ok := resp.Payload.(models.PersistRecordingResponse)
	require.True(t, ok)
	assert.Empty(t, payload.Path)
	assert.Empty(t, payload.SHA256)
}

func TestDispatchPersistRecordingBadPayload(t *testing.T) {
	s := newTestServer(&stubBroker{})

	resp := s.dispatch(context.Background(), request(t, models.OpPersistRecording, models.PersistRecordingRequest{
		Data: "not base64!!!",
	}))

	assert.False(t, resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrKindBadRequest, resp.Error.Kind)
}

func TestDispatchShowError(t *testing.T) {
	broker := &stubBroker{}
	s := newTestServer(broker)

	resp := s.dispatch(context.Background(), request(t, models.OpShowError, models.ShowErrorRequest{
		Title:   "Recording failed",
		Message: "no space left",
	}))

	assert.True(t, resp.OK)
	assert.Equal(t, "Recording failed", broker.shownTitle)
}

func TestDispatchCheckPermission(t *testing.T) {
	broker := &stubBroker{state: models.PermissionState{HasPermission: true}}
	s := newTestServer(broker)

	resp := s.dispatch(context.Background(), request(t, models.OpCheckPermission, nil))

	require.True(t, resp.OK)
	state, ok := resp.Payload.(models.PermissionState)
	require.True(t, ok)
	assert.True(t, state.HasPermission)
}

func TestDispatchRequestPermission(t *testing.T) {
	s := newTestServer(&stubBroker{granted: true})

	resp := s.dispatch(context.Background(), request(t, models.OpRequestPermission, nil))

	require.True(t, resp.OK)
	payload, ok := resp.Payload.(models.RequestPermissionResponse)
	require.True(t, ok)
	assert.True(t, payload.Granted)
}

func TestChannelRequestsAreIndependent(t *testing.T) {
	broker := &stubBroker{
		state:       models.PermissionState{HasPermission: true},
		enumProceed: make(chan struct{}),
	}
	s := newTestServer(broker)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/channel"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(models.ChannelRequest{ID: "enum", Op: models.OpEnumerateSources}))
	require.NoError(t, conn.WriteJSON(models.ChannelRequest{ID: "check", Op: models.OpCheckPermission}))

	// The permission check must answer while enumeration is still suspended
	// waiting on the user.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var resp models.ChannelResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "check", resp.ID)
	assert.True(t, resp.OK)

	close(broker.enumProceed)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "enum", resp.ID)
	assert.True(t, resp.OK)
}

func TestDispatchRejectsUnknownOperations(t *testing.T) {
	s := newTestServer(&stubBroker{})

	resp := s.dispatch(context.Background(), request(t, "exec-native-api", nil))

	assert.False(t, resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrKindUnknownOp, resp.Error.Kind)
}
