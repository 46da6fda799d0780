package main

import (
	"context"
	"fmt"

	pluginrpc "etut/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"insight"},
	}, nil
}

func (s *server) GenerateInsights(_ context.Context, in *pluginrpc.GenerateInsightsRequest) (*pluginrpc.GenerateInsightsResponse, error) {
	var insights []pluginrpc.Insight

	if in.Streak > 0 && in.Streak%7 == 0 {
		insights = append(insights, pluginrpc.Insight{
			Category: "positive",
			Message:  fmt.Sprintf("Tam %d haftadır seri bozulmadı!", in.Streak/7),
		})
	}
	if len(in.Subjects) == 1 {
		insights = append(insights, pluginrpc.Insight{
			Category: "neutral",
			Message:  fmt.Sprintf("Şimdiye kadar yalnızca %s çalıştın, diğer derslere de göz at.", in.Subjects[0].Name),
		})
	}

	return &pluginrpc.GenerateInsightsResponse{Insights: insights}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
