package ws

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"voxelchunks/internal/commands"
	"voxelchunks/internal/config"
	"voxelchunks/internal/protocol"
)

func startServer(t *testing.T, shellType string) (*websocket.Conn, string) {
	t.Helper()
	cfg := config.Defaults()
	cfg.ShellSaveType = shellType
	cfg.OutputDir = t.TempDir()
	srv := NewServer(commands.New(cfg, nil), nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, HostName: "test-host"}); err != nil {
		t.Fatalf("write hello: %v", err)
	}
	var welcome protocol.WelcomeMsg
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != protocol.TypeWelcome || welcome.SessionID == "" || welcome.PageSize != 8 {
		t.Fatalf("unexpected welcome: %+v", welcome)
	}
	return conn, cfg.OutputDir
}

func roundTrip(t *testing.T, conn *websocket.Conn, req any) protocol.PrintMsg {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply protocol.PrintMsg
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Type != protocol.TypePrint {
		t.Fatalf("unexpected reply type %q", reply.Type)
	}
	return reply
}

func TestServer_ChunkInfo(t *testing.T) {
	conn, _ := startServer(t, "")
	reply := roundTrip(t, conn, protocol.ChunkInfoMsg{
		Type: protocol.TypeChunkInfo, ProtocolVersion: protocol.Version, ReqID: "r1", Player: "alex", Pos: [3]int{-1, 70, -1},
	})
	if reply.ReqID != "r1" || reply.Code != "" || len(reply.Lines) != 3 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.Lines[0].Text != "Chunk: -1, -1" || reply.Lines[1].Text != "Old format: 1r/1r/c.-1.-1.dat" {
		t.Fatalf("unexpected lines: %+v", reply.Lines)
	}
}

func TestServer_ListChunksWithoutSelection(t *testing.T) {
	conn, _ := startServer(t, "")
	reply := roundTrip(t, conn, protocol.ListChunksMsg{
		Type: protocol.TypeListChunks, ProtocolVersion: protocol.Version, ReqID: "r2", Player: "alex",
	})
	if reply.Code != protocol.ErrNoSelection || len(reply.Lines) != 1 || !reply.Lines[0].Error {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestServer_DelChunksWritesScript(t *testing.T) {
	conn, dir := startServer(t, "bash")
	reply := roundTrip(t, conn, protocol.DelChunksMsg{
		Type: protocol.TypeDelChunks, ProtocolVersion: protocol.Version, ReqID: "r3", Player: "alex",
		Chunks: [][2]int32{{0, 0}, {0, 1}, {1, 0}},
	})
	if reply.Code != "" {
		t.Fatalf("unexpected code %q: %+v", reply.Code, reply.Lines)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "worldedit-delchunks.sh"))
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if strings.Count(string(raw), "\nrm \"world/") != 3 {
		t.Fatalf("unexpected script:\n%s", raw)
	}
}

func TestServer_DelChunksUnconfigured(t *testing.T) {
	conn, dir := startServer(t, "xyz")
	reply := roundTrip(t, conn, protocol.DelChunksMsg{
		Type: protocol.TypeDelChunks, ProtocolVersion: protocol.Version, Chunks: [][2]int32{{0, 0}},
	})
	if reply.Code != protocol.ErrConfig {
		t.Fatalf("code=%q want %q", reply.Code, protocol.ErrConfig)
	}
	if ents, _ := os.ReadDir(dir); len(ents) != 0 {
		t.Fatalf("no script should be written")
	}
}

func TestServer_BadRequests(t *testing.T) {
	conn, _ := startServer(t, "")
	reply := roundTrip(t, conn, map[string]any{"type": "FLY", "protocol_version": protocol.Version})
	if reply.Code != protocol.ErrBadRequest {
		t.Fatalf("unknown type code=%q", reply.Code)
	}
	reply = roundTrip(t, conn, map[string]any{"type": protocol.TypeChunkInfo, "protocol_version": "0.1"})
	if reply.Code != protocol.ErrProtoBadRequest {
		t.Fatalf("bad version code=%q", reply.Code)
	}
	reply = roundTrip(t, conn, map[string]any{"type": protocol.TypeChunkInfo, "protocol_version": protocol.Version, "pos": "here"})
	if reply.Code != protocol.ErrBadRequest {
		t.Fatalf("bad payload code=%q", reply.Code)
	}
}

func TestServer_ChunkInfoRejectsOutOfRangePosition(t *testing.T) {
	conn, _ := startServer(t, "")
	reply := roundTrip(t, conn, protocol.ChunkInfoMsg{
		Type: protocol.TypeChunkInfo, ProtocolVersion: protocol.Version, ReqID: "r4", Player: "alex", Pos: [3]int{1 << 36, 64, 0},
	})
	if reply.ReqID != "r4" || reply.Code != protocol.ErrBadRequest {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	for _, l := range reply.Lines {
		if strings.HasPrefix(l.Text, "Chunk: ") {
			t.Fatalf("chunk info printed for out-of-range position: %+v", reply.Lines)
		}
	}
}
