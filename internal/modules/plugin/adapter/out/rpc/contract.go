package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey       = "projects"
	serviceName        = "folio.plugin.v1.ProjectSource"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodListProjects = "/" + serviceName + "/ListProjects"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FOLIO_PLUGIN",
	MagicCookieValue: "folio",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type Project struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	DescriptionSerious string   `json:"description_serious"`
	DescriptionPlayful string   `json:"description_playful"`
	Tech               []string `json:"tech"`
	GitHubURL          string   `json:"github_url"`
	LiveURL            string   `json:"live_url"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type ProjectSourceServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListProjects(ctx context.Context, in *Empty) (*ListProjectsResponse, error)
}

type ProjectSourceClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListProjects(ctx context.Context) (*ListProjectsResponse, error)
}

type projectSourceClient struct {
	conn *grpc.ClientConn
}

func NewProjectSourceClient(conn *grpc.ClientConn) ProjectSourceClient {
	return &projectSourceClient{conn: conn}
}

func (c *projectSourceClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *projectSourceClient) ListProjects(ctx context.Context) (*ListProjectsResponse, error) {
	out := &ListProjectsResponse{}
	if err := c.conn.Invoke(ctx, methodListProjects, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a no-argument server method to a grpc handler.
func unary[T any](fullMethod string, call func(context.Context, *Empty) (T, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &Empty{}
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			empty, ok := req.(*Empty)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, empty)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterProjectSourceServer(server grpc.ServiceRegistrar, impl ProjectSourceServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ProjectSourceServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "ListProjects", Handler: unary(methodListProjects, impl.ListProjects)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "folio/plugin/v1/project_source.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ProjectSourceServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterProjectSourceServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewProjectSourceClient(conn), nil
}

func PluginMap(impl ProjectSourceServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
