// Package rpc exposes the inference kernel's constraint model over a
// gRPC "solve as a service" endpoint: a caller posts a sandwich bound
// as a pair of type names, the service tightens a fresh free variable
// against them and returns the resulting bound. Any name other than
// Never or Obj is taken as a nullary Nominal; there is no catalog of
// known names.
//
// The service wires google.golang.org/grpc directly (a plain
// *grpc.Server, manual connection/service lifecycle) but deliberately
// without a dynamic .proto-descriptor dependency: instead of loading a
// .proto descriptor at runtime, this service is defined against
// google.golang.org/protobuf's structpb.Struct, which already
// implements proto.Message and so round-trips through grpc's default
// codec without any protoc-generated stubs.
package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vinelang/vinec/internal/types"
)

// EncodeConstraint renders a Sandwiched bound as a structpb.Struct
// suitable for a SolveResponse, using the same debug-form text the
// rest of this module prints for a Constraint (internal/types/print.go)
// rather than inventing a second serialization for the same data.
func EncodeConstraint(c types.Constraint) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"rendered": types.DebugConstraint(c),
	})
}

// DecodeSandwichRequest extracts the "sub" and "sup" nominal type
// names a SolveRequest names and returns them as Types; Server.Solve
// builds the fresh open cell. Only nullary Nominal names are accepted
// over the wire;
// a richer wire schema belongs to a real .proto contract, out of
// scope for this narrow demonstration endpoint.
func DecodeSandwichRequest(req *structpb.Struct) (sub, sup types.Type, err error) {
	fields := req.GetFields()
	subName, ok := fields["sub"]
	if !ok {
		return nil, nil, fmt.Errorf("rpc: request missing %q field", "sub")
	}
	supName, ok := fields["sup"]
	if !ok {
		return nil, nil, fmt.Errorf("rpc: request missing %q field", "sup")
	}
	return nominalFromWire(subName.GetStringValue()), nominalFromWire(supName.GetStringValue()), nil
}

func nominalFromWire(name string) types.Type {
	switch name {
	case "Never":
		return types.Never{}
	case "Obj":
		return types.Obj{}
	default:
		return types.Nominal{Name: name}
	}
}
