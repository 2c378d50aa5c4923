package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lain-corp/lain-tv/app/auth"
	"github.com/lain-corp/lain-tv/app/catalog"
	"github.com/lain-corp/lain-tv/app/database"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListVideos(c *gin.Context) {
	videos, err := h.service.ListVideos()
	if err != nil {
		slog.Error("Database error", "operation", "list_videos", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list videos"})
		return
	}

	if videos == nil {
		videos = []database.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) GetVideo(c *gin.Context) {
	id := c.Param("id")

	video, err := h.service.GetVideo(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_video", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get video"})
		return
	}
	if video == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "video not found"})
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *Handler) GetVideosByChannel(c *gin.Context) {
	name := c.Param("name")

	videos, err := h.service.GetVideosByChannel(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_videos_by_channel", "channel", name, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get videos"})
		return
	}

	if videos == nil {
		videos = []database.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) AddOrUpdateVideo(c *gin.Context) {
	var video database.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid video payload"})
		return
	}

	if err := h.service.AddOrUpdateVideo(&video); err != nil {
		if errors.Is(err, catalog.ErrMissingID) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		slog.Error("Database error", "operation", "add_or_update_video", "id", video.ID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to store video"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) RemoveVideo(c *gin.Context) {
	id := c.Param("id")

	err := h.service.RemoveVideo(caller(c), id)
	switch {
	case errors.Is(err, auth.ErrAccessDenied):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("Database error", "operation", "remove_video", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to remove video"})
	default:
		c.JSON(http.StatusOK, statusResponse{Status: "ok"})
	}
}

func (h *Handler) ManualPoll(c *gin.Context) {
	count, err := h.service.ManualPoll(c.Request.Context(), caller(c))
	switch {
	case errors.Is(err, auth.ErrAccessDenied):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("Manual poll failed", "error", err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: "poll failed: " + err.Error()})
	default:
		c.JSON(http.StatusOK, pollResponse{Status: "ok", Videos: count})
	}
}

func (h *Handler) GetPollConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetPollConfig())
}

func (h *Handler) SetPollConfig(c *gin.Context) {
	var config database.PollConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid poll config payload"})
		return
	}

	err := h.service.SetPollConfig(caller(c), config)
	switch {
	case errors.Is(err, auth.ErrAccessDenied):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusOK, statusResponse{Status: "ok"})
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Whoami(c *gin.Context) {
	c.JSON(http.StatusOK, whoamiResponse{Caller: h.service.Whoami(caller(c))})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if stats, err := h.service.GetStats(); err == nil {
		health["videos"] = stats.TotalVideos
	}

	c.JSON(http.StatusOK, health)
}
