package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/frame"
	"github.com/Faultbox/diorama/internal/loop"
	"github.com/Faultbox/diorama/pkg/diorama"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Pointer events queued between two frames.
	inputBuffer = 64

	// Viewport assumed until the client reports its own.
	defaultWidth  = 1280
	defaultHeight = 720
)

// Message types sent over /ws.
const (
	MessageScene    = "scene"
	MessageFrame    = "frame"
	MessageViewport = "viewport" // client -> server
	MessageOrbit    = "orbit"    // client -> server
	MessageZoom     = "zoom"     // client -> server
)

// SceneMessage carries the full scene. It is sent on connect and after
// every regeneration.
type SceneMessage struct {
	Type    string           `json:"type"`
	Version uint64           `json:"version"`
	Scene   diorama.Snapshot `json:"scene"`
}

// FrameMessage carries the camera for one tick.
type FrameMessage struct {
	Type     string            `json:"type"`
	Tick     uint64            `json:"tick"`
	Version  uint64            `json:"version"`
	Viewport frame.Viewport    `json:"viewport"`
	Camera   frame.CameraState `json:"camera"`
}

// ClientMessage is what the browser may send: a viewport size, a pointer
// drag in pixels (orbit) or a wheel step (zoom, positive zooms in).
type ClientMessage struct {
	Type   string  `json:"type"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	DX     float32 `json:"dx,omitempty"`
	DY     float32 `json:"dy,omitempty"`
	Delta  float32 `json:"delta,omitempty"`
}

// safeConn serializes writes; gorilla connections allow one concurrent
// writer.
type safeConn struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

func (c *safeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setDeadline()
	return c.conn.WriteJSON(v)
}

func (c *safeConn) WriteControl(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline := time.Now().Add(time.Second)
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	return c.conn.WriteControl(messageType, data, deadline)
}

func (c *safeConn) setDeadline() {
	if c.timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	} else {
		_ = c.conn.SetWriteDeadline(time.Time{})
	}
}

// stream upgrades to a websocket, sends the scene and then one frame per
// tick of an orbit camera until either side goes away. The camera turns on
// its own until the browser sends orbit or zoom input.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	conn := &safeConn{conn: ws, timeout: s.cfg.WriteTimeout}
	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Info("stream opened")

	ctx, cancel := context.WithCancel(s.streams)
	defer cancel()

	viewports := make(chan frame.Viewport, 1)
	inputs := make(chan ClientMessage, inputBuffer)
	go s.readClient(ctx, cancel, ws, viewports, inputs, log)
	go s.ping(ctx, conn)

	st := &streamState{viewport: frame.Viewport{Width: defaultWidth, Height: defaultHeight}}
	err = loop.New(s.cfg.FrameInterval).Run(ctx, func(_ context.Context, t loop.Tick) error {
		select {
		case vp := <-viewports:
			st.resize(vp)
		default:
		}
		return s.streamStep(conn, st, inputs, t)
	})
	if err != nil {
		log.Debug("stream write failed", zap.Error(err))
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	log.Info("stream closed")
}

// streamState is one connection's view: the scene version it last sent and
// its own camera.
type streamState struct {
	version  uint64
	camera   *camera.OrbitCamera
	viewport frame.Viewport
}

// steer feeds one orbit or zoom message to the camera. Once the user
// steers, auto-rotation stops for the rest of the stream.
func (st *streamState) steer(msg ClientMessage) {
	if st.camera == nil {
		return
	}
	switch msg.Type {
	case MessageOrbit:
		st.camera.HandleDrag(msg.DX, msg.DY)
	case MessageZoom:
		st.camera.HandleZoom(msg.Delta)
	default:
		return
	}
	st.camera.AutoRotate = 0
}

func (st *streamState) resize(vp frame.Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	st.viewport = vp
	if st.camera != nil {
		st.camera.Resize(vp.Width, vp.Height)
	}
}

func (s *Server) streamStep(conn *safeConn, st *streamState, inputs <-chan ClientMessage, t loop.Tick) error {
	scene, version := s.store.Current()
	if version != st.version {
		st.version = version
		// A regenerated scene keeps the view the user orbited to.
		if st.camera == nil {
			st.camera = s.newCamera(scene.Environment().Camera, st.viewport)
		}

		if err := conn.WriteJSON(SceneMessage{Type: MessageScene, Version: version, Scene: scene.Snapshot()}); err != nil {
			return err
		}
	}

	for drained := false; !drained; {
		select {
		case msg := <-inputs:
			st.steer(msg)
		default:
			drained = true
		}
	}

	// The browser owns the meshes; only the camera travels per tick.
	st.camera.Update()
	return conn.WriteJSON(FrameMessage{
		Type:     MessageFrame,
		Tick:     t.N,
		Version:  st.version,
		Viewport: st.viewport,
		Camera:   frame.CameraStateOf(st.camera),
	})
}

// newCamera tunes a stream camera with the viewer's controls. The server's
// own auto-rotate rate wins until the user steers.
func (s *Server) newCamera(view diorama.CameraView, vp frame.Viewport) *camera.OrbitCamera {
	cam := camera.New(view, vp.Width, vp.Height)
	cam.Apply(camera.Controls(s.controls))
	cam.AutoRotate = s.cfg.AutoRotate
	return cam
}

// readClient handles client messages and cancels the stream when the
// connection fails.
func (s *Server) readClient(ctx context.Context, cancel context.CancelFunc, ws *websocket.Conn, viewports chan frame.Viewport, inputs chan<- ClientMessage, log *zap.Logger) {
	defer cancel()

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("stream read failed", zap.Error(err))
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("malformed client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case MessageViewport:
			vp := frame.Viewport{Width: msg.Width, Height: msg.Height}
			// Keep only the latest size.
			select {
			case <-viewports:
			default:
			}
			select {
			case viewports <- vp:
			case <-ctx.Done():
				return
			}
		case MessageOrbit, MessageZoom:
			select {
			case inputs <- msg:
			case <-ctx.Done():
				return
			}
		default:
			log.Debug("unknown client message", zap.String("type", msg.Type))
		}
	}
}

func (s *Server) ping(ctx context.Context, conn *safeConn) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
