// Package ws maps socket.io traffic onto the game registry. It owns no game
// state beyond the per-room connection membership needed for forced eviction.
package ws

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/NewBeeD/NamePlaceAnimalThing/internal/game"
)

// conn is the slice of socketio.Conn the handlers need.
type conn interface {
	ID() string
	Join(room string)
	Leave(room string)
	Emit(event string, v ...interface{})
}

type Server struct {
	io       *socketio.Server
	registry *game.Registry

	mu      sync.Mutex
	members map[string]map[string]conn // room code -> socket id -> conn
}

func New() *Server {
	return &Server{members: make(map[string]map[string]conn)}
}

// SetRegistry wires the registry after construction; the registry needs the
// server as its Broadcaster first.
func (srv *Server) SetRegistry(reg *game.Registry) { srv.registry = reg }

// ToRoom implements game.Broadcaster.
func (srv *Server) ToRoom(code, event string, payload any) {
	srv.io.BroadcastToRoom("/", code, event, payload)
}

// CloseRoom implements game.Broadcaster: every connection is kicked out of
// the room's broadcast group.
func (srv *Server) CloseRoom(code string) {
	srv.mu.Lock()
	conns := srv.members[code]
	delete(srv.members, code)
	srv.mu.Unlock()
	for _, c := range conns {
		c.Leave(code)
	}
}

func (srv *Server) addMember(code string, c conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.members[code] == nil {
		srv.members[code] = make(map[string]conn)
	}
	srv.members[code][c.ID()] = c
}

func (srv *Server) removeMember(code string, c conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m := srv.members[code]; m != nil {
		delete(m, c.ID())
	}
}

func ack(err error) map[string]any {
	if err != nil {
		return map[string]any{"ok": false, "message": err.Error()}
	}
	return map[string]any{"ok": true}
}

type joinPayload struct {
	Code     string         `json:"code"`
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	Settings *game.Settings `json:"settings"`
}

// handleJoin puts the connection into the room's broadcast group before the
// registry runs, so the joiner receives its own user-joined and room-state
// snapshot. A rejected join backs the membership out again.
func (srv *Server) handleJoin(s conn, payload joinPayload) map[string]any {
	payload.Code = strings.TrimSpace(payload.Code)

	s.Join(payload.Code)
	srv.addMember(payload.Code, s)

	if err := srv.registry.Join(s.ID(), payload.Code, payload.UserID, payload.Username, payload.Settings); err != nil {
		s.Leave(payload.Code)
		srv.removeMember(payload.Code, s)
		return ack(err)
	}
	log.Info().Str("sid", s.ID()).Str("code", payload.Code).Str("userId", payload.UserID).Msg("join-room")
	return ack(nil)
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)
	srv.io = io

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	io.OnEvent("/", "join-room", func(s socketio.Conn, payload joinPayload) map[string]any {
		return srv.handleJoin(s, payload)
	})

	io.OnEvent("/", "start-game", func(s socketio.Conn, payload struct {
		Code string `json:"code"`
	}) {
		if err := srv.registry.Start(s.ID(), payload.Code); err != nil {
			log.Debug().Err(err).Str("sid", s.ID()).Str("code", payload.Code).Msg("start-game rejected")
			return
		}
		log.Info().Str("code", payload.Code).Msg("start-game")
	})

	io.OnEvent("/", "draft-response", func(s socketio.Conn, payload struct {
		Code    string            `json:"code"`
		UserID  string            `json:"userId"`
		Answers map[string]string `json:"answers"`
	}) {
		srv.registry.Draft(s.ID(), payload.Code, payload.UserID, payload.Answers)
	})

	io.OnEvent("/", "submit-response", func(s socketio.Conn, payload struct {
		Code    string            `json:"code"`
		UserID  string            `json:"userId"`
		Answers map[string]string `json:"answers"`
	}) {
		err := srv.registry.Submit(s.ID(), payload.Code, payload.UserID, payload.Answers)
		if errors.Is(err, game.ErrIncompleteAnswers) {
			s.Emit("submit-error", map[string]any{"message": err.Error()})
			return
		}
		if err != nil {
			log.Debug().Err(err).Str("sid", s.ID()).Str("code", payload.Code).Msg("submit-response rejected")
		}
	})

	io.OnEvent("/", "submit-scores", func(s socketio.Conn, payload struct {
		Code   string                        `json:"code"`
		UserID string                        `json:"userId"`
		Scores map[string]map[string]float64 `json:"scores"`
	}) map[string]any {
		return ack(srv.registry.SubmitScores(s.ID(), payload.Code, payload.UserID, payload.Scores))
	})

	io.OnEvent("/", "next-stage", func(s socketio.Conn, payload struct {
		Code string `json:"code"`
	}) map[string]any {
		return ack(srv.registry.Advance(s.ID(), payload.Code))
	})

	io.OnEvent("/", "leave-room", func(s socketio.Conn, payload struct {
		Code   string `json:"code"`
		UserID string `json:"userId"`
	}) map[string]any {
		err := srv.registry.Leave(s.ID(), payload.Code, payload.UserID)
		if err == nil {
			s.Leave(payload.Code)
			srv.removeMember(payload.Code, s)
			log.Info().Str("sid", s.ID()).Str("code", payload.Code).Msg("leave-room")
		}
		return ack(err)
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})

	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.registry.Disconnect(s.ID())
		srv.mu.Lock()
		for _, conns := range srv.members {
			delete(conns, s.ID())
		}
		srv.mu.Unlock()
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}
