package rpc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/vinelang/vinec/internal/config"
	"github.com/vinelang/vinec/internal/types"
)

// ServerConfig is vinecd's on-disk configuration, loaded with
// gopkg.in/yaml.v3.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	CachePath  string `yaml:"cache_path"`
}

// LoadServerConfig reads and parses a vinecd.yaml file.
func LoadServerConfig(data []byte) (*ServerConfig, error) {
	cfg := &ServerConfig{ListenAddr: ":7777", CachePath: ":memory:"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("rpc: parsing server config: %w", err)
	}
	return cfg, nil
}

// Server answers SolveRequests by tightening a sandwich bound through
// the kernel's unifier and returning the resulting Constraint.
type Server struct {
	cache *Cache
}

// NewServer builds a Server backed by cache.
func NewServer(cache *Cache) *Server {
	return &Server{cache: cache}
}

// Solve is the RPC handler: given {sub, sup} nominal names, it unifies
// a fresh free variable against them and returns the resulting
// Sandwiched bound, rendered as a structpb.Struct. Every request
// carries (or is assigned) a google/uuid correlation ID; a repeated
// ID short-circuits to the cached rendering rather than re-solving.
func (s *Server) Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	requestID := req.GetFields()["request_id"].GetStringValue()
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if cached, ok, err := s.cache.Lookup(ctx, requestID); err != nil {
		return nil, err
	} else if ok {
		return structpb.NewStruct(map[string]any{"request_id": requestID, "rendered": cached})
	}

	sub, sup, err := DecodeSandwichRequest(req)
	if err != nil {
		return nil, err
	}

	cell := types.NewUnbound[types.Type](0, types.NewSandwiched(types.Never{}, types.Obj{}))
	if err := types.Unify(types.FreeVar{Cell: cell}, sup); err != nil {
		return nil, fmt.Errorf("rpc: solving sup bound: %w", err)
	}
	if err := types.Unify(sub, types.FreeVar{Cell: cell}); err != nil {
		return nil, fmt.Errorf("rpc: solving sub bound: %w", err)
	}

	rendered := types.DebugConstraint(cell.Constraint())
	if err := s.cache.Store(ctx, requestID, rendered); err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{"request_id": requestID, "rendered": rendered})
}

// solveHandler adapts Server.Solve to the grpc.methodHandler shape
// grpc.ServiceDesc expects. Defined by hand rather than via protoc
// codegen, the way this whole service is — see the package doc.
func solveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := &structpb.Struct{}
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).Solve(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/vinec.Solver/Solve"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Server).Solve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, req, info, handler)
}

// ServiceDesc is the hand-written grpc.ServiceDesc for the Solver
// service, in place of a generated *_grpc.pb.go.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "vinec.Solver",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: solveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vinec/solver.proto",
}

// Register attaches the Solver service to srv.
func Register(srv *grpc.Server, impl *Server) {
	srv.RegisterService(&ServiceDesc, impl)
}

// Version is surfaced over the wire so clients can detect a stale
// server (config.Version is the single source of truth, same value
// the rest of this module reports).
var Version = config.Version
