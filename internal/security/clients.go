package security

import "crypto/subtle"

// Client is an API caller allowed to exchange its secret for a token.
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.place"}
	Enabled bool
}

// Clients is the registry of known clients, keyed by id. It is loaded from
// config at startup.
type Clients map[string]Client

func NewClients(list []Client) Clients {
	out := make(Clients, len(list))
	for _, c := range list {
		if c.ID == "" {
			continue
		}
		out[c.ID] = c
	}
	return out
}

// Authenticate returns the enabled client matching id and secret.
func (r Clients) Authenticate(id, secret string) (Client, bool) {
	cl, ok := r[id]
	if !ok || !cl.Enabled {
		return Client{}, false
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(cl.Secret)) != 1 {
		return Client{}, false
	}
	return cl, true
}
