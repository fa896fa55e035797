package calculator

import (
	"context"
	"io"

	"github.com/charithe/scicalc/pkg/v1pb"
	"go.uber.org/multierr"
	"google.golang.org/grpc"
)

// Client implements the RPC client for the Calculator service
type Client struct {
	conn   *grpc.ClientConn
	client v1pb.CalculatorClient
}

func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{
		conn:   conn,
		client: v1pb.NewCalculatorClient(conn),
	}
}

// Evaluate computes a complete expression on the server.
func (c *Client) Evaluate(ctx context.Context, expression string) (*v1pb.EvaluateResponse, error) {
	return c.client.Evaluate(ctx, &v1pb.EvaluateRequest{Expression: expression})
}

// EvaluateStream sends every key read from keys and returns the display once
// the channel is closed. The producer must close keys; on failure the
// remaining keys are read and discarded so the producer never blocks.
func (c *Client) EvaluateStream(keys <-chan string) (*v1pb.DisplayUpdate, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := c.client.EvaluateStream(ctx)
	if err != nil {
		drain(keys)
		return nil, err
	}

	for key := range keys {
		ev, err := ParseKey(key)
		if err != nil {
			drain(keys)
			return nil, err
		}

		if err := stream.Send(ev); err != nil {
			drain(keys)
			return nil, err
		}
	}

	return stream.CloseAndRecv()
}

func drain(keys <-chan string) {
	for range keys {
	}
}

// Session opens a stream on which every key press is answered with the new display.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	stream, err := c.client.Session(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{stream: stream}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Session is an open key event stream. It must be used by a single goroutine.
type Session struct {
	stream v1pb.Calculator_SessionClient
}

// Press sends a key and waits for the resulting display.
func (s *Session) Press(key string) (*v1pb.DisplayUpdate, error) {
	ev, err := ParseKey(key)
	if err != nil {
		return nil, err
	}

	if err := s.stream.Send(ev); err != nil {
		return nil, err
	}

	return s.stream.Recv()
}

// Close ends the stream and waits for the server to finish it.
func (s *Session) Close() error {
	err := s.stream.CloseSend()
	for {
		if _, recvErr := s.stream.Recv(); recvErr != nil {
			if recvErr != io.EOF {
				err = multierr.Append(err, recvErr)
			}
			return err
		}
	}
}
