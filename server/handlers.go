package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/media"
)

type handlers struct {
	streamer *media.Streamer
	metrics  *Metrics
}

// ErrorBody is returned by the listing endpoint when the media directory cannot be read.
type ErrorBody struct {
	Error string `json:"error"`
}

func (h *handlers) root(c *gin.Context) {
	c.String(http.StatusOK, constant.LivenessMessage)
}

func (h *handlers) list(c *gin.Context) {
	ids, err := h.streamer.Library().IDs()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "failed to read media directory"})
		return
	}

	c.JSON(http.StatusOK, media.Paginate(ids, media.ParsePage(c.Query("page"))))
}

func (h *handlers) head(c *gin.Context) {
	_, err := h.streamer.Head(c.Writer, c.Param("id"), c.GetHeader("Range"))
	h.report(c, media.Plan{}, err)
}

func (h *handlers) stream(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.activeStream.Inc()
		defer h.metrics.activeStream.Dec()
	}

	plan, err := h.streamer.Serve(c.Request.Context(), c.Writer, c.Param("id"), c.GetHeader("Range"))
	h.report(c, plan, err)
}

// report records the outcome of a media request. Nothing here writes to the response.
func (h *handlers) report(c *gin.Context, plan media.Plan, err error) {
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.bytesServed.Add(float64(plan.Length))
		}

	case media.IsStreamError(err):
		if h.metrics != nil {
			h.metrics.streamErrors.Inc()
		}
		log.WithFields(logrus.Fields{
			"id":         c.Param("id"),
			"request_id": c.GetString(contextRequestID),
		}).Warn(err)
		c.Abort()

	case errors.Is(err, media.ErrNotFound), errors.Is(err, media.ErrRangeNotSatisfiable):
		log.Debugf("media %s: %v", c.Param("id"), err)

	default:
		_ = c.Error(err)
	}
}
