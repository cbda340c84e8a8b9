package http

import (
	"encoding/json"
	"net"
	"net/http"

	"livequiz-coordinator/internal/app"
)

// ServerInfoHandler serves connectivity diagnostics so clients on the same
// network can display the address to share. Not part of the coordination
// protocol proper.
type ServerInfoHandler struct {
	host        string
	port        string
	coordinator *app.Coordinator
}

func NewServerInfoHandler(host, port string, coordinator *app.Coordinator) *ServerInfoHandler {
	return &ServerInfoHandler{host: host, port: port, coordinator: coordinator}
}

type serverInfo struct {
	IP           string `json:"ip"`
	Port         string `json:"port"`
	Participants int    `json:"participants"`
}

func (h *ServerInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := h.host
	if ip == "" {
		ip = localIPAddress()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(serverInfo{
		IP:           ip,
		Port:         h.port,
		Participants: h.coordinator.ParticipantCount(),
	})
}

// localIPAddress returns the first non-loopback IPv4 address, falling back
// to loopback when none is found.
func localIPAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "127.0.0.1"
}
