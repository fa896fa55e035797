package v1pb

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "calculator.v1.Calculator"

// CalculatorClient is the client API for the Calculator service.
type CalculatorClient interface {
	Evaluate(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error)
	EvaluateStream(ctx context.Context, opts ...grpc.CallOption) (Calculator_EvaluateStreamClient, error)
	Session(ctx context.Context, opts ...grpc.CallOption) (Calculator_SessionClient, error)
}

type calculatorClient struct {
	cc *grpc.ClientConn
}

func NewCalculatorClient(cc *grpc.ClientConn) CalculatorClient {
	return &calculatorClient{cc}
}

func (c *calculatorClient) Evaluate(ctx context.Context, in *EvaluateRequest, opts ...grpc.CallOption) (*EvaluateResponse, error) {
	out := new(EvaluateResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Evaluate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calculatorClient) EvaluateStream(ctx context.Context, opts ...grpc.CallOption) (Calculator_EvaluateStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &calculatorServiceDesc.Streams[0], "/"+serviceName+"/EvaluateStream", opts...)
	if err != nil {
		return nil, err
	}
	return &calculatorEvaluateStreamClient{stream}, nil
}

type Calculator_EvaluateStreamClient interface {
	Send(*KeyEvent) error
	CloseAndRecv() (*DisplayUpdate, error)
	grpc.ClientStream
}

type calculatorEvaluateStreamClient struct {
	grpc.ClientStream
}

func (x *calculatorEvaluateStreamClient) Send(m *KeyEvent) error {
	return x.ClientStream.SendMsg(m)
}

func (x *calculatorEvaluateStreamClient) CloseAndRecv() (*DisplayUpdate, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(DisplayUpdate)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *calculatorClient) Session(ctx context.Context, opts ...grpc.CallOption) (Calculator_SessionClient, error) {
	stream, err := c.cc.NewStream(ctx, &calculatorServiceDesc.Streams[1], "/"+serviceName+"/Session", opts...)
	if err != nil {
		return nil, err
	}
	return &calculatorSessionClient{stream}, nil
}

type Calculator_SessionClient interface {
	Send(*KeyEvent) error
	Recv() (*DisplayUpdate, error)
	grpc.ClientStream
}

type calculatorSessionClient struct {
	grpc.ClientStream
}

func (x *calculatorSessionClient) Send(m *KeyEvent) error {
	return x.ClientStream.SendMsg(m)
}

func (x *calculatorSessionClient) Recv() (*DisplayUpdate, error) {
	m := new(DisplayUpdate)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CalculatorServer is the server API for the Calculator service.
type CalculatorServer interface {
	Evaluate(context.Context, *EvaluateRequest) (*EvaluateResponse, error)
	EvaluateStream(Calculator_EvaluateStreamServer) error
	Session(Calculator_SessionServer) error
}

func RegisterCalculatorServer(s *grpc.Server, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Evaluate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Evaluate(ctx, req.(*EvaluateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func evaluateStreamHandler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(CalculatorServer).EvaluateStream(&calculatorEvaluateStreamServer{stream})
}

type Calculator_EvaluateStreamServer interface {
	SendAndClose(*DisplayUpdate) error
	Recv() (*KeyEvent, error)
	grpc.ServerStream
}

type calculatorEvaluateStreamServer struct {
	grpc.ServerStream
}

func (x *calculatorEvaluateStreamServer) SendAndClose(m *DisplayUpdate) error {
	return x.ServerStream.SendMsg(m)
}

func (x *calculatorEvaluateStreamServer) Recv() (*KeyEvent, error) {
	m := new(KeyEvent)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func sessionHandler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(CalculatorServer).Session(&calculatorSessionServer{stream})
}

type Calculator_SessionServer interface {
	Send(*DisplayUpdate) error
	Recv() (*KeyEvent, error)
	grpc.ServerStream
}

type calculatorSessionServer struct {
	grpc.ServerStream
}

func (x *calculatorSessionServer) Send(m *DisplayUpdate) error {
	return x.ServerStream.SendMsg(m)
}

func (x *calculatorSessionServer) Recv() (*KeyEvent, error) {
	m := new(KeyEvent)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "EvaluateStream",
			Handler:       evaluateStreamHandler,
			ClientStreams: true,
		},
		{
			StreamName:    "Session",
			Handler:       sessionHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "calculator.proto",
}
