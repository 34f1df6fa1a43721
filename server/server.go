package server

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"net/http"
	"plist/job"
	"plist/logger"
	"plist/schedule"
	"strings"
)

type jobRequest struct {
	Name string `json:"name"`
	Cron string `json:"cron"`
}

func (s *server) Create(c *gin.Context) {
	var req jobRequest
	err := c.BindJSON(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := req.Name
	j, err := job.Make(name, req.Cron, func() {
		logger.Info("job fired:", name)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = s.schedule.Queue().Push(j)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": j.JobId,
	})
}

func (s *server) Remove(c *gin.Context) {
	var (
		j  *job.Job
		ok bool
	)
	switch strings.ToUpper(c.DefaultQuery("end", "head")) {
	case "HEAD":
		j, ok = s.schedule.Queue().PopFront()
	case "TAIL":
		j, ok = s.schedule.Queue().PopBack()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be head or tail"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": j.ToMap()})
}

func (s *server) QueueInfo(c *gin.Context) {
	q := s.schedule.Queue()
	c.JSON(http.StatusOK, gin.H{
		"size":  q.Len(),
		"empty": q.IsEmpty(),
	})
}

/**********WS***********/

func (s *server) Watch(c *gin.Context) {
	ws, err := s.upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed:", err)
		return
	}
	defer func(ws *websocket.Conn) {
		_ = ws.Close()
	}(ws)

	events, cancel := s.schedule.Subscribe()
	defer cancel()

	// the reader notices the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := ws.WriteJSON(e); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

/**********************/

type server struct {
	schedule *schedule.Scheduler
	upgrade  websocket.Upgrader
}

func makeServer(s *schedule.Scheduler) *server {
	return &server{
		schedule: s,
		upgrade: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start wires the routes into engine and starts s. The returned func stops it.
func Start(ctx context.Context, s *schedule.Scheduler, engine *gin.Engine) func() {
	ser := makeServer(s)
	ser.RegistryRouting(engine)
	s.Start(ctx)
	return s.Stop
}

func (s *server) RegistryRouting(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		api.POST("/job", s.Create)
		api.DELETE("/job", s.Remove)
		api.GET("/queue", s.QueueInfo)
		api.GET("/watch", s.Watch)
	}
	engine.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
}
