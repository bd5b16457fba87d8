package handler

import (
	"net/http"

	"menucraft/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// WSHandlerはキッチンのリアルタイム接続を受ける
type WSHandler struct {
	hub      *realtime.Hub
	verify   realtime.TokenVerifier
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, verify realtime.TokenVerifier, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		verify: verify,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			//originはJWTで縛っているのでここでは絞らない
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.serve)
}

func (h *WSHandler) serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		//Upgradeが失敗レスポンスを書いている
		return nil
	}

	s := realtime.NewSession(h.hub, conn, h.verify, h.log)
	s.Run()
	return nil
}
