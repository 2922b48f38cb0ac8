package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/NewBeeD/NamePlaceAnimalThing/internal/config"
	"github.com/NewBeeD/NamePlaceAnimalThing/internal/game"
	"github.com/NewBeeD/NamePlaceAnimalThing/internal/grading"
	"github.com/NewBeeD/NamePlaceAnimalThing/internal/ws"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`NamePlaceAnimalThing - Real-time word-category party game

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                              Port to listen on (default: 8080)
  OPENAI_API_KEY                    OpenAI API key (unset: manual peer scoring only)
  OPENAI_MODEL                      Grading model (default: gpt-4.1)
  OPENAI_MAX_CONCURRENT_REQUESTS    Max in-flight grading calls (default: 2)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("NamePlaceAnimalThing %s\n", version)
		return
	}

	// Config (loads .env when present)
	cfg := config.FromEnv()

	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	if cfg.OpenAIKey == "" {
		zerologlog.Warn().Msg("OPENAI_API_KEY not set; rounds will fall back to manual peer scoring")
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Socket bootstrap: tells the client where to connect, honoring proxies.
	r.GET("/api/socket", func(c *gin.Context) {
		proto := c.GetHeader("X-Forwarded-Proto")
		if proto == "" {
			proto = "http"
		}
		host := c.GetHeader("X-Forwarded-Host")
		if host == "" {
			host = c.Request.Host
		}
		if host == "" {
			host = "localhost:" + port
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "wsUrl": proto + "://" + host})
	})

	// Socket server + session registry + grading client
	sock := ws.New()
	grader := grading.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.MaxConcurrent)
	reg := game.NewRegistry(sock, grader)
	sock.SetRegistry(reg)
	io := sock.Mount(r)
	defer io.Close()

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
