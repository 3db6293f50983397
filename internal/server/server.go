package server

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"hangman-online/internal/config"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store   *Store
	db      *gorm.DB
	ws      *wsHub
	cfg     config.Config
	limiter *rateLimiter

	rngMu sync.Mutex
	rng   *rand.Rand

	timersMu sync.Mutex
	timers   map[string]*turnTimer

	transitionsMu sync.Mutex
	transitions   map[string]*time.Timer
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:       NewStore(),
		db:          conn,
		ws:          newWSHub(),
		cfg:         cfg,
		limiter:     newRateLimiter(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		timers:      make(map[string]*turnTimer),
		transitions: make(map[string]*time.Timer),
	}
}

// SeedShuffle pins the word permutation to a fixed sequence. Tests use
// this to assert on shuffle outcomes.
func (s *Server) SeedShuffle(seed int64) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedPaths([]string{"/ws"})))

	router.GET("/health", s.handleHealth)
	router.GET("/api/info", s.handleInfo)
	router.GET("/api/categories", s.handleCategories)
	router.GET("/api/categories/:name", s.handleCategoryWords)
	router.GET("/api/rooms", s.handleListRooms)
	router.GET("/ws", s.handleWebsocket)
	return router
}
