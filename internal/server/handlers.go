package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidurl/internal/extract"
	"vidurl/internal/media"
)

type extractRequest struct {
	XID *string `json:"xid"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "vidurl is running",
	})
}

func (s *Server) extractGet(c *gin.Context) {
	xid, ok := c.GetQuery("xid")
	if !ok {
		unprocessable(c, "query parameter xid is required")
		return
	}
	s.extract(c, xid)
}

func (s *Server) extractPost(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "invalid request body: "+err.Error())
		return
	}
	if req.XID == nil {
		unprocessable(c, "body field xid is required")
		return
	}
	s.extract(c, *req.XID)
}

// extract runs the pipeline. Outcomes are always 200; callers branch on success.
func (s *Server) extract(c *gin.Context, xid string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.ResolveTimeout)
	defer cancel()

	out := extract.Video(ctx, s.resolver, xid)

	entry := s.log.WithFields(logrus.Fields{"xid": xid, "success": out.OK()})
	switch o := out.(type) {
	case media.Ranked:
		entry.WithField("formats", len(o.AllFormats)).Debug("extracted")
	case media.Failure:
		entry.WithField("reason", o.Message).Warn("extraction failed")
	}

	c.JSON(http.StatusOK, out)
}

func unprocessable(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
}
