package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// setupFeedServer membuka endpoint websocket yang mengirim frames ke setiap
// client yang tersambung.
func setupFeedServer(t *testing.T, frames []string, gotToken chan<- string) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/kds", func(c *gin.Context) {
		gotToken <- c.Query("token")

		conn, err := testUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Tahan koneksi supaya client tidak langsung reconnect
		time.Sleep(200 * time.Millisecond)
	})
	return httptest.NewServer(router)
}

func TestWSSubscriberDispatch(t *testing.T) {
	frames := []string{
		`{"event":"restaurant:kot_update","data":{"kot_id":"K-1","status":"Ready"}}`,
		`not a json frame`,
		`{"event":"restaurant:waiter_call","data":{"table_number":"5"}}`,
		`{"event":"restaurant:kot_update","data":{"kot_id":"K-2"}}`,
	}

	gotToken := make(chan string, 4)
	server := setupFeedServer(t, frames, gotToken)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/kds"
	sub := NewWSSubscriber(wsURL, "chef-token")
	defer sub.Close()

	kotEvents := make(chan string, 4)
	sub.Subscribe(EventKOTUpdate, func(payload json.RawMessage) {
		var evt struct {
			KotID string `json:"kot_id"`
		}
		assert.NoError(t, json.Unmarshal(payload, &evt))
		kotEvents <- evt.KotID
	})

	waiterEvents := make(chan struct{}, 4)
	sub.Subscribe(EventWaiterCall, func(json.RawMessage) {
		waiterEvents <- struct{}{}
	})

	sub.Start()

	// Token dikirim sebagai query param, seperti yang dibaca server
	assert.Equal(t, "chef-token", <-gotToken)

	assert.Equal(t, "K-1", receiveOrFail(t, kotEvents))
	assert.Equal(t, "K-2", receiveOrFail(t, kotEvents))

	select {
	case <-waiterEvents:
	case <-time.After(time.Second):
		t.Fatal("waiter call event was not dispatched")
	}
}

func receiveOrFail(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}
