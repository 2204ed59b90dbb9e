package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"isingmcmc/spin"
)

// StreamClient is a Source backed by a live neural-generator process
// reachable over websocket, for the case where proposals are produced
// on-the-fly rather than loaded whole from a checkpoint (spec §6's "pull-
// based iterator backed by on-demand neural inference", spec §5). It keeps
// a read-ahead buffer and refills it in the background so Next rarely
// blocks on the network.
//
// Adapted from the teacher's single-direction publish-to-browser client:
// here the data flows the other way, server-to-chain, and liveness is
// still a ping/pong pair running under the same errgroup.
type StreamClient struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	buf  chan Proposal
	errc chan error
}

const (
	clientWriteWait  = 2 * time.Second
	clientPingPeriod = 5 * time.Second
	clientPongWait   = clientPingPeriod * 3
)

// wireProposal is the JSON shape read off the wire; S arrives as {0,1} or
// {-1,+1} ints depending on the generator, so Dial requires the caller to
// say which convention applies via binaryWire.
type wireProposal struct {
	S   []int8  `json:"s"`
	LnQ float64 `json:"lnq"`
}

// DialStreamClient opens a websocket connection to a neural proposal
// server and starts its background pump. bufSize bounds how many proposals
// are buffered ahead of consumption. If binaryWire is true, incoming S
// vectors are read in {0,1} convention and converted with spin.FromBinary.
func DialStreamClient(ctx context.Context, url string, bufSize int, binaryWire bool) (*StreamClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle: dial %s: %w", url, err)
	}

	cctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(cctx)

	sc := &StreamClient{
		conn:   conn,
		ctx:    cctx,
		cancel: cancel,
		group:  group,
		buf:    make(chan Proposal, bufSize),
		errc:   make(chan error, 1),
	}

	group.Go(func() error { return sc.pump(gctx, binaryWire) })
	group.Go(func() error { return sc.pingLoop(gctx) })

	return sc, nil
}

// pump reads proposal messages off the socket and forwards them to buf
// until the context is cancelled or the socket errors.
func (sc *StreamClient) pump(ctx context.Context, binaryWire bool) error {
	defer close(sc.buf)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var wp wireProposal
		if err := sc.conn.ReadJSON(&wp); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("oracle: stream read: %w", err)
		}

		s := spin.Configuration(wp.S)
		if binaryWire {
			s = spin.FromBinary(wp.S)
		}

		select {
		case sc.buf <- Proposal{S: s, LnQ: wp.LnQ}:
		case <-ctx.Done():
			return nil
		}
	}
}

// pingLoop keeps the connection alive, mirroring the teacher's
// fastview.client pingPong loop but as the dialing side.
func (sc *StreamClient) pingLoop(ctx context.Context) error {
	ticks := channerics.NewTicker(ctx.Done(), clientPingPeriod)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if err := sc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(clientWriteWait)); err != nil {
				return fmt.Errorf("oracle: ping: %w", err)
			}
		}
	}
}

// Next returns the next buffered proposal, blocking briefly for the pump to
// refill if the buffer is momentarily empty, or ErrExhausted once the
// stream has closed and the buffer has drained.
func (sc *StreamClient) Next() (Proposal, error) {
	select {
	case err := <-sc.errc:
		return Proposal{}, err
	case p, ok := <-sc.buf:
		if !ok {
			return Proposal{}, ErrExhausted
		}
		return p, nil
	}
}

// Prefetch is a no-op for StreamClient: the background pump already reads
// ahead continuously, bounded by the channel's buffer size.
func (sc *StreamClient) Prefetch(n int) error {
	return nil
}

// Close tears down the pump and ping loops and closes the socket.
func (sc *StreamClient) Close() error {
	sc.cancel()
	err := sc.group.Wait()
	closeErr := sc.conn.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return closeErr
}
