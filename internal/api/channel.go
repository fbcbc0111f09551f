package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// channelConn serializes writes; responses and pushed notifications share one
// websocket.
type channelConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *channelConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// handleChannel serves the host⇄UI request/response channel. Each request is
// dispatched independently; there is no queuing or deduplication.
func (s *Server) handleChannel(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to upgrade channel connection")
		return
	}
	defer conn.Close()

	cc := &channelConn{conn: conn}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if s.changes != nil {
		go s.pushChanges(ctx, cc)
	}

	for {
		var req models.ChannelRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("channel read failed")
			}
			return
		}

		// Requests are independent: one suspended on a user modal must not
		// hold up later ones on the same connection.
		go func(req models.ChannelRequest) {
			resp := s.dispatch(ctx, req)
			if err := cc.writeJSON(resp); err != nil {
				s.log.Warn().Err(err).Msg("channel write failed")
			}
		}(req)
	}
}

func (s *Server) pushChanges(ctx context.Context, cc *channelConn) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.changes:
			if !ok {
				return
			}
			note := models.ChannelResponse{Op: models.NoteAssetsChanged, OK: true}
			if err := cc.writeJSON(note); err != nil {
				return
			}
		}
	}
}

// dispatch routes one channel request. The operation set is fixed; unknown
// operations are rejected rather than passed through to anything native.
func (s *Server) dispatch(ctx context.Context, req models.ChannelRequest) models.ChannelResponse {
	switch req.Op {
	case models.OpEnumerateSources:
		sources, err := s.broker.EnumerateSources(ctx)
		if err != nil {
			return errResponse(req, "Failed to get sources", err)
		}
		return okResponse(req, sources)

	case models.OpResolveSource:
		var payload models.ResolveSourceRequest
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return badRequest(req, err)
		}
		id, err := s.broker.ResolveSource(ctx, payload.SourceID)
		if err != nil {
			return errResponse(req, "Failed to resolve source", err)
		}
		return okResponse(req, models.ResolveSourceResponse{SourceID: id})

	case models.OpPersistRecording:
		var payload models.PersistRecordingRequest
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return badRequest(req, err)
		}
		data, err := base64.StdEncoding.DecodeString(payload.Data)
		if err != nil {
			return badRequest(req, err)
		}
		path, err := s.broker.SaveRecording(ctx, data, payload.SuggestedName)
		if err != nil {
			return errResponse(req, "Failed to save video", err)
		}
		resp := models.PersistRecordingResponse{Path: path}
		if path != "" {
			resp.SHA256 = shared.SHA256Hex(data)
		}
		return okResponse(req, resp)

	case models.OpShowError:
		var payload models.ShowErrorRequest
		if err := unmarshalPayload(req.Payload, &payload); err != nil {
			return badRequest(req, err)
		}
		s.broker.ShowError(payload.Title, payload.Message)
		return okResponse(req, nil)

	case models.OpCheckPermission:
		return okResponse(req, s.broker.CheckPermission(ctx))

	case models.OpRequestPermission:
		granted, err := s.broker.RequestPermission(ctx)
		if err != nil {
			return errResponse(req, "Failed to request permission", err)
		}
		return okResponse(req, models.RequestPermissionResponse{Granted: granted})

	default:
		return models.ChannelResponse{
			ID: req.ID,
			Op: req.Op,
			Error: &models.ChannelError{
				Kind:    models.ErrKindUnknownOp,
				Message: "operation not supported on this channel",
			},
		}
	}
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return &shared.ValidationError{Field: "payload", Message: "payload is required"}
	}
	return json.Unmarshal(raw, v)
}

func okResponse(req models.ChannelRequest, payload any) models.ChannelResponse {
	return models.ChannelResponse{ID: req.ID, Op: req.Op, OK: true, Payload: payload}
}

func errResponse(req models.ChannelRequest, title string, err error) models.ChannelResponse {
	return models.ChannelResponse{
		ID: req.ID,
		Op: req.Op,
		Error: &models.ChannelError{
			Kind:    errKind(err),
			Title:   title,
			Message: err.Error(),
		},
	}
}

func badRequest(req models.ChannelRequest, err error) models.ChannelResponse {
	return models.ChannelResponse{
		ID: req.ID,
		Op: req.Op,
		Error: &models.ChannelError{
			Kind:    models.ErrKindBadRequest,
			Message: err.Error(),
		},
	}
}

func errKind(err error) string {
	switch {
	case shared.IsCapabilityDenied(err):
		return models.ErrKindCapabilityDenied
	case shared.IsUnsupported(err):
		return models.ErrKindUnsupported
	default:
		return models.ErrKindIOFailure
	}
}
