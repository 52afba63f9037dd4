package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// consoleBuffer is the number of log messages kept for /api/console
const consoleBuffer = 256

// Server handles web requests for the raytracer
type Server struct {
	port      int
	config    config.Config
	scenesDir string
	echo      *echo.Echo
	console   chan ConsoleMessage
}

// NewServer creates a new web server. XML scenes are listed from scenesDir.
func NewServer(cfg config.Config, scenesDir string) *Server {
	s := &Server{
		port:      cfg.Port,
		config:    cfg,
		scenesDir: scenesDir,
		echo:      echo.New(),
		console:   make(chan ConsoleMessage, consoleBuffer),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	// API endpoints
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/console", s.handleConsole)
	s.echo.POST("/api/render", s.handleRender)
	s.echo.POST("/api/inspect", s.handleInspect)
	s.echo.POST("/api/pick", s.handlePick)

	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the XML scenes on disk
func (s *Server) handleScenes(c echo.Context) error {
	xmlScenes, err := scene.ListXMLScenes(s.scenesDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, append(scene.ListBuiltinScenes(), xmlScenes...))
}

// handleConsole drains the buffered render log messages
func (s *Server) handleConsole(c echo.Context) error {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-s.console:
			messages = append(messages, msg)
		default:
			return c.JSON(http.StatusOK, messages)
		}
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
