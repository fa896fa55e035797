// Package v1pb holds the Go bindings for calculator.proto.
//
// The bindings follow the layout protoc-gen-go produces for proto3 messages
// without oneofs, so the default gRPC codec marshals them through their struct
// tags. Keep them in sync with calculator.proto by hand.
//
// No file descriptor is registered, so server reflection cannot describe
// calculator.v1.Calculator; it only lists the health and channelz services.
// Clients need calculator.proto to call the service.
package v1pb
