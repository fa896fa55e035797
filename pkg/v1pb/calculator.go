package v1pb

import (
	proto "github.com/gogo/protobuf/proto"
)

type ErrorKind int32

const (
	NONE   ErrorKind = 0
	SYNTAX ErrorKind = 1
	MATH   ErrorKind = 2
)

var ErrorKind_name = map[int32]string{
	0: "NONE",
	1: "SYNTAX",
	2: "MATH",
}

var ErrorKind_value = map[string]int32{
	"NONE":   0,
	"SYNTAX": 1,
	"MATH":   2,
}

func (x ErrorKind) String() string {
	return proto.EnumName(ErrorKind_name, int32(x))
}

type KeyAction int32

const (
	APPEND KeyAction = 0
	DELETE KeyAction = 1
	CLEAR  KeyAction = 2
	EQUALS KeyAction = 3
)

var KeyAction_name = map[int32]string{
	0: "APPEND",
	1: "DELETE",
	2: "CLEAR",
	3: "EQUALS",
}

var KeyAction_value = map[string]int32{
	"APPEND": 0,
	"DELETE": 1,
	"CLEAR":  2,
	"EQUALS": 3,
}

func (x KeyAction) String() string {
	return proto.EnumName(KeyAction_name, int32(x))
}

type EvaluateRequest struct {
	Expression string `protobuf:"bytes,1,opt,name=expression,proto3" json:"expression,omitempty"`
}

func (m *EvaluateRequest) Reset()         { *m = EvaluateRequest{} }
func (m *EvaluateRequest) String() string { return proto.CompactTextString(m) }
func (*EvaluateRequest) ProtoMessage()    {}

func (m *EvaluateRequest) GetExpression() string {
	if m != nil {
		return m.Expression
	}
	return ""
}

type EvaluateResponse struct {
	Display string    `protobuf:"bytes,1,opt,name=display,proto3" json:"display,omitempty"`
	Result  float64   `protobuf:"fixed64,2,opt,name=result,proto3" json:"result,omitempty"`
	Error   ErrorKind `protobuf:"varint,3,opt,name=error,proto3,enum=calculator.v1.ErrorKind" json:"error,omitempty"`
}

func (m *EvaluateResponse) Reset()         { *m = EvaluateResponse{} }
func (m *EvaluateResponse) String() string { return proto.CompactTextString(m) }
func (*EvaluateResponse) ProtoMessage()    {}

func (m *EvaluateResponse) GetDisplay() string {
	if m != nil {
		return m.Display
	}
	return ""
}

func (m *EvaluateResponse) GetResult() float64 {
	if m != nil {
		return m.Result
	}
	return 0
}

func (m *EvaluateResponse) GetError() ErrorKind {
	if m != nil {
		return m.Error
	}
	return NONE
}

type KeyEvent struct {
	Action KeyAction `protobuf:"varint,1,opt,name=action,proto3,enum=calculator.v1.KeyAction" json:"action,omitempty"`
	Token  string    `protobuf:"bytes,2,opt,name=token,proto3" json:"token,omitempty"`
}

func (m *KeyEvent) Reset()         { *m = KeyEvent{} }
func (m *KeyEvent) String() string { return proto.CompactTextString(m) }
func (*KeyEvent) ProtoMessage()    {}

func (m *KeyEvent) GetAction() KeyAction {
	if m != nil {
		return m.Action
	}
	return APPEND
}

func (m *KeyEvent) GetToken() string {
	if m != nil {
		return m.Token
	}
	return ""
}

type DisplayUpdate struct {
	Display string    `protobuf:"bytes,1,opt,name=display,proto3" json:"display,omitempty"`
	Error   ErrorKind `protobuf:"varint,2,opt,name=error,proto3,enum=calculator.v1.ErrorKind" json:"error,omitempty"`
}

func (m *DisplayUpdate) Reset()         { *m = DisplayUpdate{} }
func (m *DisplayUpdate) String() string { return proto.CompactTextString(m) }
func (*DisplayUpdate) ProtoMessage()    {}

func (m *DisplayUpdate) GetDisplay() string {
	if m != nil {
		return m.Display
	}
	return ""
}

func (m *DisplayUpdate) GetError() ErrorKind {
	if m != nil {
		return m.Error
	}
	return NONE
}

func init() {
	proto.RegisterEnum("calculator.v1.ErrorKind", ErrorKind_name, ErrorKind_value)
	proto.RegisterEnum("calculator.v1.KeyAction", KeyAction_name, KeyAction_value)
	proto.RegisterType((*EvaluateRequest)(nil), "calculator.v1.EvaluateRequest")
	proto.RegisterType((*EvaluateResponse)(nil), "calculator.v1.EvaluateResponse")
	proto.RegisterType((*KeyEvent)(nil), "calculator.v1.KeyEvent")
	proto.RegisterType((*DisplayUpdate)(nil), "calculator.v1.DisplayUpdate")
}
