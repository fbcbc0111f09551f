package api

import (
	"encoding/base64"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scouterhq/scouter-host/pkg/models"
	"github.com/scouterhq/scouter-host/pkg/shared"
)

type persistVideoRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data" binding:"required"` // base64-encoded recording bytes
}

func (s *Server) listVideos(c *gin.Context) {
	assets, err := s.store.ListAssets(c.Request.Context())
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, assets)
}

func (s *Server) persistVideo(c *gin.Context) {
	var req persistVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		c.JSON(400, gin.H{"error": "data must be base64-encoded"})
		return
	}

	path, err := s.store.PersistAsset(c.Request.Context(), data, req.Filename)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"path": path, "sha256": shared.SHA256Hex(data)})
}

func (s *Server) deleteVideo(c *gin.Context) {
	asset, ok := s.findVideo(c)
	if !ok {
		return
	}

	if err := s.store.DeleteAsset(c.Request.Context(), asset); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(204, nil)
}

func (s *Server) shareVideo(c *gin.Context) {
	asset, ok := s.findVideo(c)
	if !ok {
		return
	}

	if err := s.store.ShareAsset(c.Request.Context(), asset); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"status": "shared"})
}

// findVideo resolves the :id route param against the current listing; asset
// ids are only meaningful within one store snapshot.
func (s *Server) findVideo(c *gin.Context) (models.VideoAsset, bool) {
	id := c.Param("id")

	assets, err := s.store.ListAssets(c.Request.Context())
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return models.VideoAsset{}, false
	}

	for _, asset := range assets {
		if asset.ID == id {
			return asset, true
		}
	}

	c.JSON(404, gin.H{"error": "video not found"})
	return models.VideoAsset{}, false
}

func errStatus(err error) int {
	var ve *shared.ValidationError

	switch {
	case shared.IsUnsupported(err):
		return 400
	case shared.IsCapabilityDenied(err):
		return 403
	case errors.As(err, &ve):
		return 400
	default:
		return 500
	}
}
