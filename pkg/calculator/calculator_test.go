package calculator

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charithe/scicalc/pkg/v1pb"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCalculator(t *testing.T) {
	svc := NewService(WithMaxExpressionLength(64))
	addr, destroyFunc := startServer(t, svc)
	defer destroyFunc()

	client := createClient(t, addr)
	defer client.Close()

	t.Run("evaluate", func(t *testing.T) {
		testCases := []struct {
			name        string
			expression  string
			wantDisplay string
			wantResult  float64
			wantErrKind v1pb.ErrorKind
		}{
			{name: "precedence", expression: "2+3*4", wantDisplay: "14", wantResult: 14},
			{name: "functions", expression: "√(9)+|3-5|", wantDisplay: "5", wantResult: 5},
			{name: "mathError", expression: "1/0", wantDisplay: MathErrorText, wantErrKind: v1pb.MATH},
			{name: "syntaxError", expression: "2+", wantDisplay: SyntaxErrorText, wantErrKind: v1pb.SYNTAX},
			{name: "empty", expression: "", wantDisplay: SyntaxErrorText, wantErrKind: v1pb.SYNTAX},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				resp, err := client.Evaluate(context.Background(), tc.expression)
				require.NoError(t, err)
				require.Equal(t, tc.wantDisplay, resp.Display)
				require.Equal(t, tc.wantResult, resp.Result)
				require.Equal(t, tc.wantErrKind, resp.Error)
			})
		}

		_, err := client.Evaluate(context.Background(), strings.Repeat("1+", 40)+"1")
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	keyCases := []struct {
		name        string
		keys        []string
		wantDisplay string
		wantErrKind v1pb.ErrorKind
	}{
		{name: "implicitMultiplication", keys: []string{"5", "π", "="}, wantDisplay: "15.707963267948966"},
		{name: "roundTrip", keys: []string{"2", "+", "2", "=", "+", "1", "="}, wantDisplay: "5"},
		{name: "unevaluated", keys: []string{"1", "2", "DEL", "sin("}, wantDisplay: "1sin("},
		{name: "mathError", keys: []string{"log(", "0", ")", "="}, wantDisplay: MathErrorText, wantErrKind: v1pb.MATH},
		{name: "deleteAfterError", keys: []string{"2", "+", "=", "DEL"}, wantDisplay: ""},
		{name: "noKeys", keys: nil, wantDisplay: ""},
	}

	t.Run("stream", func(t *testing.T) {
		for _, tc := range keyCases {
			t.Run(tc.name, func(t *testing.T) {
				keyChan := make(chan string)
				go func(keys []string) {
					for _, k := range keys {
						keyChan <- k
					}
					close(keyChan)
				}(tc.keys)

				update, err := client.EvaluateStream(keyChan)
				require.NoError(t, err)
				require.Equal(t, tc.wantDisplay, update.Display)
				require.Equal(t, tc.wantErrKind, update.Error)
			})
		}
	})

	t.Run("session", func(t *testing.T) {
		for _, tc := range keyCases {
			t.Run(tc.name, func(t *testing.T) {
				sess, err := client.Session(context.Background())
				require.NoError(t, err)

				update := &v1pb.DisplayUpdate{}
				for _, k := range tc.keys {
					update, err = sess.Press(k)
					require.NoError(t, err)
				}

				require.Equal(t, tc.wantDisplay, update.Display)
				require.Equal(t, tc.wantErrKind, update.Error)
				require.NoError(t, sess.Close())
			})
		}
	})

	t.Run("sessionShowsEveryKey", func(t *testing.T) {
		sess, err := client.Session(context.Background())
		require.NoError(t, err)
		defer sess.Close()

		var displays []string
		for _, k := range []string{"5", "(", "1", ")", "="} {
			update, err := sess.Press(k)
			require.NoError(t, err)
			displays = append(displays, update.Display)
		}

		require.Equal(t, []string{"5", "5*(", "5*(1", "5*(1)", "5"}, displays)
	})

	t.Run("invalidKey", func(t *testing.T) {
		keyChan := make(chan string, 1)
		keyChan <- "%"
		close(keyChan)

		_, err := client.EvaluateStream(keyChan)
		require.Error(t, err)
	})

	t.Run("invalidKeyDoesNotBlockProducer", func(t *testing.T) {
		keyChan := make(chan string)
		producerDone := make(chan struct{})
		go func() {
			defer close(producerDone)
			for _, k := range []string{"%", "1", "+", "2"} {
				keyChan <- k
			}
			close(keyChan)
		}()

		_, err := client.EvaluateStream(keyChan)
		require.Error(t, err)

		select {
		case <-producerDone:
		case <-time.After(5 * time.Second):
			t.Fatal("producer still blocked after EvaluateStream returned")
		}
	})

	t.Run("invalidTokenRejectedByServer", func(t *testing.T) {
		stream, err := client.client.Session(context.Background())
		require.NoError(t, err)

		require.NoError(t, stream.Send(&v1pb.KeyEvent{Action: v1pb.APPEND, Token: "Math.PI"}))
		_, err = stream.Recv()
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func startServer(t *testing.T, service *Service) (string, func()) {
	t.Helper()

	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatal(err)
	}

	addr := lis.Addr().String()
	srv := grpc.NewServer()
	v1pb.RegisterCalculatorServer(srv, service)

	go func() {
		if err := srv.Serve(lis); err != nil {
			panic(err)
		}
	}()

	destroyFunc := func() {
		srv.GracefulStop()
		lis.Close()
	}

	return addr, destroyFunc
}

func createClient(t *testing.T, addr string) *Client {
	t.Helper()

	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		t.Fatal(err)
	}

	return NewClient(conn)
}
