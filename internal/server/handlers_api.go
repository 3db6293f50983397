package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Multiplayer Hangman Backend",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": wordBankCategories(),
	})
}

func (s *Server) handleCategoryWords(c *gin.Context) {
	name := c.Param("name")
	words := wordsByCategory(name)
	if len(words) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": name,
		"words":    words,
	})
}

func (s *Server) handleListRooms(c *gin.Context) {
	summaries := s.store.ListRoomSummaries()
	c.JSON(http.StatusOK, gin.H{
		"rooms": lo.Map(summaries, func(summary RoomSummary, _ int) gin.H {
			return gin.H{
				"room_id": summary.ID,
				"status":  summary.Status,
				"players": summary.Players,
			}
		}),
	})
}
