package calculator

import (
	"context"
	"io"
	"unicode/utf8"

	"github.com/charithe/scicalc/pkg/expr"
	"github.com/charithe/scicalc/pkg/v1pb"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/status"
)

// DefaultMaxExpressionLength is the longest expression, in bytes, accepted by Evaluate.
const DefaultMaxExpressionLength = 1024

// Option configures a Service.
type Option func(*Service)

// WithDisplayWidth sets the width of the buffers backing streams.
func WithDisplayWidth(width int) Option {
	return func(s *Service) {
		s.displayWidth = width
	}
}

// WithMaxExpressionLength sets the longest expression accepted by Evaluate.
func WithMaxExpressionLength(n int) Option {
	return func(s *Service) {
		s.maxExprLen = n
	}
}

// Service implements the RPC interface of the calculator
type Service struct {
	*health.Server
	displayWidth   int
	maxExprLen     int
	activeSessions *atomic.Int64
}

func NewService(opts ...Option) *Service {
	s := &Service{
		Server:         health.NewServer(),
		displayWidth:   MaxCharacters,
		maxExprLen:     DefaultMaxExpressionLength,
		activeSessions: atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ActiveSessions returns the number of open key event streams.
func (s *Service) ActiveSessions() int64 {
	return s.activeSessions.Load()
}

func (s *Service) Evaluate(ctx context.Context, req *v1pb.EvaluateRequest) (*v1pb.EvaluateResponse, error) {
	// if the context has already expired, we can avoid unnecessary work
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := req.GetExpression()
	if len(src) > s.maxExprLen {
		return nil, status.Errorf(codes.InvalidArgument, "expression longer than %d bytes", s.maxExprLen)
	}

	v, err := expr.Evaluate(src)
	kind := expr.KindOf(err)
	recordEvaluation(ctx, "Evaluate", utf8.RuneCountInString(src), kind)

	if err != nil {
		zap.S().Debugw("Evaluation failed", "expression", src, "error", err)
		resp := &v1pb.EvaluateResponse{Display: SyntaxErrorText, Error: errorKindToPB(kind)}
		if kind == expr.Math {
			resp.Display = MathErrorText
		}
		return resp, nil
	}

	return &v1pb.EvaluateResponse{Display: expr.Format(v), Result: v}, nil
}

func (s *Service) EvaluateStream(stream v1pb.Calculator_EvaluateStreamServer) error {
	s.activeSessions.Inc()
	defer s.activeSessions.Dec()

	buf := NewBuffer(s.displayWidth)

	for {
		ev, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				// end of the client-side stream so send the final display
				if err := stream.SendAndClose(displayUpdate(buf)); err != nil {
					zap.S().Errorw("Failed to send response", "error", err)
					return err
				}

				return nil
			}

			zap.S().Warnw("Failed to receive request from stream", "error", err)
			return err
		}

		if err := s.apply(stream.Context(), "EvaluateStream", buf, ev); err != nil {
			return err
		}
	}
}

func (s *Service) Session(stream v1pb.Calculator_SessionServer) error {
	s.activeSessions.Inc()
	defer s.activeSessions.Dec()

	buf := NewBuffer(s.displayWidth)

	for {
		ev, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				return nil
			}

			zap.S().Warnw("Failed to receive request from stream", "error", err)
			return err
		}

		if err := s.apply(stream.Context(), "Session", buf, ev); err != nil {
			return err
		}

		if err := stream.Send(displayUpdate(buf)); err != nil {
			zap.S().Warnw("Failed to send display update", "error", err)
			return err
		}
	}
}

func (s *Service) apply(ctx context.Context, method string, buf *Buffer, ev *v1pb.KeyEvent) error {
	length := buf.Len()
	if err := Apply(buf, ev); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if ev.GetAction() == v1pb.EQUALS {
		recordEvaluation(ctx, method, length, buf.ErrorKind())
	}

	return nil
}
