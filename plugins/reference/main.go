package main

import (
	"context"

	"github.com/hashicorp/go-plugin"

	pluginrpc "folio/internal/modules/plugin/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"projects"},
	}, nil
}

func (s *server) ListProjects(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListProjectsResponse, error) {
	return &pluginrpc.ListProjectsResponse{Projects: []pluginrpc.Project{
		{
			ID:                 "folio",
			Name:               "folio",
			DescriptionSerious: "Terminal portfolio with a serious and a playful side.",
			DescriptionPlayful: "Drag the line. Pick a reality. No refunds.",
			Tech:               []string{"Go", "Bubble Tea"},
			LiveURL:            "ssh://folio.example.com",
		},
	}}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
