package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

var streamUpgrader = websocket.Upgrader{}

func startTestProposalServer(t *testing.T, proposals []wireProposal) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := streamUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, p := range proposals {
			if err := conn.WriteJSON(p); err != nil {
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	srv.Config.Handler = mux
	return srv
}

func TestStreamClient(t *testing.T) {
	Convey("Given a websocket proposal server", t, func() {
		srv := startTestProposalServer(t, []wireProposal{
			{S: []int8{1, -1}, LnQ: -1.5},
			{S: []int8{-1, 1}, LnQ: -2.5},
		})
		defer srv.Close()
		url := "ws" + strings.TrimPrefix(srv.URL, "http")

		Convey("When a StreamClient dials it", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			sc, err := DialStreamClient(ctx, url, 4, false)
			So(err, ShouldBeNil)
			defer sc.Close()

			Convey("Then it yields both proposals in order", func() {
				p1, err := sc.Next()
				So(err, ShouldBeNil)
				So(p1.LnQ, ShouldEqual, -1.5)

				p2, err := sc.Next()
				So(err, ShouldBeNil)
				So(p2.LnQ, ShouldEqual, -2.5)

				_, err = sc.Next()
				So(err, ShouldEqual, ErrExhausted)
			})
		})
	})
}
