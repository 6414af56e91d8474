package http

import (
	"net/http"

	"github.com/dkeye/Meetme/internal/app/meetme"
	"github.com/dkeye/Meetme/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RoomDirectory is the part of meetme.Control the admin API needs.
type RoomDirectory interface {
	IsMeetmeInstalled() bool
	Rooms() []meetme.RoomInfo
	Room(number domain.RoomNumber) (*meetme.Room, bool)
	ForceHangup(room *meetme.Room)
}

type HealthResponse struct {
	MeetmeInstalled bool `json:"meetme_installed"`
}

type RoomsResponse struct {
	Rooms []meetme.RoomInfo `json:"rooms"`
}

type handlers struct {
	rooms   RoomDirectory
	hangups *RoomRateLimiter
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{MeetmeInstalled: h.rooms.IsMeetmeInstalled()})
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomsResponse{Rooms: h.rooms.Rooms()})
}

func (h *handlers) getRoom(c *gin.Context) {
	room, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, room.Info())
}

func (h *handlers) hangupRoom(c *gin.Context) {
	room, ok := h.lookup(c)
	if !ok {
		return
	}
	if !h.hangups.Allow(room.Number()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many hangup requests for this room"})
		return
	}
	log.Info().
		Str("module", "adapters.http").
		Str("request_id", c.GetString("request_id")).
		Str("room", room.Number().String()).
		Msg("force hangup requested")
	h.rooms.ForceHangup(room)
	c.JSON(http.StatusAccepted, room.Info())
}

func (h *handlers) lookup(c *gin.Context) (*meetme.Room, bool) {
	number := domain.RoomNumber(c.Param("number"))
	room, ok := h.rooms.Room(number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil, false
	}
	return room, true
}
