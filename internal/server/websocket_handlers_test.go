package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocket_DeliversPointsAwarded(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "owner")
	rater := env.signup(t, "rater")
	recipeID := env.createRecipe(t, owner, "Pea Soup")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, env.srv.hub.StartWiring(ctx, env.srv.notifier))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.ShutdownWithTimeout(time.Second) })

	var ticket struct {
		Ticket string `json:"ticket"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/ws/ticket", owner, nil, &ticket))

	url := "ws://" + ln.Addr().String() + "/api/ws?ticket=" + ticket.Ticket
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return env.srv.hub.IsOnline("owner") },
		2*time.Second, 10*time.Millisecond)

	status := env.do(t, http.MethodPost, "/api/recipes/"+itoa(recipeID)+"/reviews", rater,
		map[string]int{"rating": 5}, nil)
	require.Equal(t, http.StatusCreated, status)

	var event struct {
		Type    string `json:"type"`
		Payload struct {
			RecipeID uint   `json:"recipe_id"`
			Rater    string `json:"rater"`
			Points   int    `json:"points"`
		} `json:"payload"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "points_awarded", event.Type)
	assert.Equal(t, recipeID, event.Payload.RecipeID)
	assert.Equal(t, "rater", event.Payload.Rater)
	assert.Equal(t, 100, event.Payload.Points)

	// Tickets are single use.
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebsocket_RejectedRegistrationSendsJSONError(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "owner")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.ShutdownWithTimeout(time.Second) })

	// A shut down hub refuses every registration.
	require.NoError(t, env.srv.hub.Shutdown(context.Background()))

	var ticket struct {
		Ticket string `json:"ticket"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/ws/ticket", owner, nil, &ticket))

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/ws?ticket="+ticket.Ticket, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	var frame map[string]string
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "server connection limit reached", frame["error"])
	assert.False(t, env.srv.hub.IsOnline("owner"))
}
