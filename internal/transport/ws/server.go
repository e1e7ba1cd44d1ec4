package ws

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"voxelchunks/internal/commands"
	"voxelchunks/internal/protocol"
	"voxelchunks/internal/selection"
	"voxelchunks/internal/world/chunk"
)

// Server bridges a host application to the chunk commands. The host owns
// players, selections and permissions; it forwards each command with the
// data it needs and shows the PRINT reply to the player.
type Server struct {
	cmds *commands.ChunkCommands
	log  *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(cmds *commands.ChunkCommands, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		cmds: cmds,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		host, ok := s.handshake(conn)
		if !ok {
			return
		}
		s.log.Printf("host connected: %s (%s)", host, r.RemoteAddr)

		for {
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			reply := s.dispatch(msg)
			if err := writeJSON(conn, reply); err != nil {
				break
			}
		}
		s.log.Printf("host disconnected: %s", host)
	}
}

func (s *Server) handshake(conn *websocket.Conn) (string, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", false
	}
	if strings.TrimSpace(hello.HostName) == "" {
		hello.HostName = "host"
	}

	cfg := s.cmds.Config()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       uuid.NewString(),
		ShellSaveType:   cfg.ShellSaveType,
		PageSize:        cfg.PageSize,
	}
	if err := writeJSON(conn, welcome); err != nil {
		return "", false
	}
	return hello.HostName, true
}

// dispatch runs one command and always produces a PRINT reply.
func (s *Server) dispatch(msg []byte) protocol.PrintMsg {
	out := &bufferActor{}
	reply := protocol.PrintMsg{Type: protocol.TypePrint, ProtocolVersion: protocol.Version}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.ProtocolVersion != protocol.Version {
		reply.Code = protocol.ErrProtoBadRequest
		reply.Lines = []protocol.PrintLine{{Text: "bad request", Error: true}}
		return reply
	}

	var cmdErr error
	switch base.Type {
	case protocol.TypeChunkInfo:
		var m protocol.ChunkInfoMsg
		if cmdErr = json.Unmarshal(msg, &m); cmdErr == nil {
			reply.ReqID = m.ReqID
			if err := chunk.CheckBlock(m.Pos[0], m.Pos[2]); err != nil {
				reply.Code = protocol.ErrBadRequest
				reply.Lines = []protocol.PrintLine{{Text: "bad request: " + err.Error(), Error: true}}
				return reply
			}
			out.name = m.Player
			s.cmds.ChunkInfo(&bufferPlayer{bufferActor: out, pos: m.Pos})
		}
	case protocol.TypeListChunks:
		var m protocol.ListChunksMsg
		if cmdErr = json.Unmarshal(msg, &m); cmdErr == nil {
			reply.ReqID = m.ReqID
			out.name = m.Player
			page := m.Page
			if page == 0 {
				page = 1
			}
			cmdErr = s.cmds.ListChunks(out, toSelection(m.Chunks), page)
		}
	case protocol.TypeDelChunks:
		var m protocol.DelChunksMsg
		if cmdErr = json.Unmarshal(msg, &m); cmdErr == nil {
			reply.ReqID = m.ReqID
			out.name = m.Player
			_, cmdErr = s.cmds.DeleteChunks(out, toSelection(m.Chunks))
		}
	default:
		reply.Code = protocol.ErrBadRequest
		reply.Lines = []protocol.PrintLine{{Text: "unknown command: " + base.Type, Error: true}}
		return reply
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(cmdErr, &syntaxErr) || errors.As(cmdErr, &typeErr) {
		reply.Code = protocol.ErrBadRequest
		reply.Lines = []protocol.PrintLine{{Text: "bad request: " + cmdErr.Error(), Error: true}}
		return reply
	}
	reply.Code = commands.Code(cmdErr)
	reply.Lines = out.lines
	return reply
}

// toSelection treats a missing chunk list as "no selection".
func toSelection(raw [][2]int32) selection.Selection {
	if raw == nil {
		return nil
	}
	l := make(selection.ChunkList, 0, len(raw))
	for _, c := range raw {
		l = append(l, chunk.At(c[0], c[1]))
	}
	return l
}

type bufferActor struct {
	name  string
	lines []protocol.PrintLine
}

func (a *bufferActor) Name() string {
	if a.name == "" {
		return "host"
	}
	return a.name
}
func (a *bufferActor) Print(msg string) { a.lines = append(a.lines, protocol.PrintLine{Text: msg}) }
func (a *bufferActor) PrintError(msg string) {
	a.lines = append(a.lines, protocol.PrintLine{Text: msg, Error: true})
}

type bufferPlayer struct {
	*bufferActor
	pos [3]int
}

func (p *bufferPlayer) BlockPosition() (int, int, int) { return p.pos[0], p.pos[1], p.pos[2] }

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
