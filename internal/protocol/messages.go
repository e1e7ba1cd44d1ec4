package protocol

// HELLO (host -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	HostName        string `json:"host_name"`
}

// WELCOME (server -> host)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	ShellSaveType   string `json:"shell_save_type,omitempty"`
	PageSize        int    `json:"page_size"`
}

// CHUNKINFO (host -> server): the player's block position.
type ChunkInfoMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
	Player          string `json:"player"`
	Pos             [3]int `json:"pos"`
}

// LISTCHUNKS (host -> server). A nil Chunks means the player has no selection.
type ListChunksMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	ReqID           string     `json:"req_id"`
	Player          string     `json:"player"`
	Chunks          [][2]int32 `json:"chunks"`
	Page            int        `json:"page,omitempty"`
}

// DELCHUNKS (host -> server).
type DelChunksMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	ReqID           string     `json:"req_id"`
	Player          string     `json:"player"`
	Chunks          [][2]int32 `json:"chunks"`
}

// PRINT (server -> host): lines to show the player, one reply per request.
type PrintMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	ReqID           string      `json:"req_id"`
	Lines           []PrintLine `json:"lines"`
	Code            string      `json:"code,omitempty"`
}

type PrintLine struct {
	Text  string `json:"text"`
	Error bool   `json:"error,omitempty"`
}
