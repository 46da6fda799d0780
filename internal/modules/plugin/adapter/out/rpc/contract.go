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
	PluginMapKey           = "etut"
	serviceName            = "etut.plugin.v1.EtutPlugin"
	jsonCodecName          = "json"
	methodGetMetadata      = "/" + serviceName + "/GetMetadata"
	methodGenerateInsights = "/" + serviceName + "/GenerateInsights"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ETUT_PLUGIN",
	MagicCookieValue: "etut",
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

type SubjectStat struct {
	Name      string  `json:"name"`
	Questions int     `json:"questions"`
	Accuracy  float64 `json:"accuracy"`
}

type LocationStat struct {
	Name      string  `json:"name"`
	Questions int     `json:"questions"`
	QPM       float64 `json:"qpm"`
}

type GenerateInsightsRequest struct {
	Streak         int            `json:"streak"`
	HasHistory     bool           `json:"has_history"`
	GlobalAccuracy float64        `json:"global_accuracy"`
	GlobalQPM      float64        `json:"global_qpm"`
	Subjects       []SubjectStat  `json:"subjects"`
	Locations      []LocationStat `json:"locations"`
}

type Insight struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type GenerateInsightsResponse struct {
	Insights []Insight `json:"insights"`
}

type EtutPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	GenerateInsights(ctx context.Context, in *GenerateInsightsRequest) (*GenerateInsightsResponse, error)
}

type EtutPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	GenerateInsights(ctx context.Context, in *GenerateInsightsRequest) (*GenerateInsightsResponse, error)
}

type etutPluginClient struct {
	conn *grpc.ClientConn
}

func NewEtutPluginClient(conn *grpc.ClientConn) EtutPluginClient {
	return &etutPluginClient{conn: conn}
}

func (c *etutPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *etutPluginClient) GenerateInsights(ctx context.Context, in *GenerateInsightsRequest) (*GenerateInsightsResponse, error) {
	out := &GenerateInsightsResponse{}
	if err := c.conn.Invoke(ctx, methodGenerateInsights, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEtutPluginServer(server grpc.ServiceRegistrar, impl EtutPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EtutPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "GenerateInsights",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &GenerateInsightsRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GenerateInsights(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGenerateInsights}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*GenerateInsightsRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GenerateInsights(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/plugin-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EtutPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEtutPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEtutPluginClient(conn), nil
}

func PluginMap(impl EtutPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
