package websocket

type ConnectParams struct {
	Token string `form:"token"` // jwt token; the transport has no per-message header channel
}
